package wordcloud

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencies(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []Word
	}{
		{
			name: "counts and orders",
			text: "Park park metro, the Metro and MALL park",
			want: []Word{{"park", 3}, {"metro", 2}, {"mall", 1}},
		},
		{
			name:  "limit",
			text:  "bb a-b a-b cc cc cc",
			limit: 2,
			want:  []Word{{"cc", 3}, {"a-b", 2}},
		},
		{
			name: "only stopwords",
			text: "the and of a",
			want: []Word{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Frequencies(tt.text, tt.limit))
		})
	}
}

func TestRenderBase64(t *testing.T) {
	r := NewRenderer(300, 200, 50)

	for _, text := range []string{"", "school hospital school metro park park park"} {
		encoded, err := r.RenderBase64(text)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(0, -1, 0)
	assert.Equal(t, 700, r.Width)
	assert.Equal(t, 500, r.Height)
	assert.Equal(t, 200, r.MaxWords)
}
