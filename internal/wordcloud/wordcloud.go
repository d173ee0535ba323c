package wordcloud

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Placeholder is rendered when there is no text
const Placeholder = "No data available"

const minFontSize = 10

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}'&-]*`)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "have": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"or": true, "that": true, "the": true, "this": true, "to": true, "was": true,
	"with": true, "will": true, "we": true, "you": true, "your": true, "our": true,
}

var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

var (
	fontOnce sync.Once
	fontErr  error
	goFont   *opentype.Font
)

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return goFont, fontErr
}

// Word is a token and its number of occurrences
type Word struct {
	Text  string
	Count int
}

// Frequencies counts the words of text, most frequent first. Stopwords
// and single characters are dropped. At most limit words are returned
// when limit is positive.
func Frequencies(text string, limit int) []Word {
	counts := map[string]int{}
	for _, tok := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		tok = strings.Trim(tok, "'-&")
		if len([]rune(tok)) < 2 || stopwords[tok] {
			continue
		}
		counts[tok]++
	}
	words := make([]Word, 0, len(counts))
	for w, n := range counts {
		words = append(words, Word{Text: w, Count: n})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Text < words[j].Text
	})
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

// Renderer draws word clouds as PNG images
type Renderer struct {
	Width    int
	Height   int
	MaxWords int
}

// NewRenderer creates a renderer. Non-positive sizes take the defaults.
func NewRenderer(width, height, maxWords int) *Renderer {
	if width <= 0 {
		width = 700
	}
	if height <= 0 {
		height = 500
	}
	if maxWords <= 0 {
		maxWords = 200
	}
	return &Renderer{Width: width, Height: height, MaxWords: maxWords}
}

// RenderBase64 renders text and returns the PNG base64 encoded
func (r *Renderer) RenderBase64(text string) (string, error) {
	img, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(img), nil
}

// Render draws the words of text sized by frequency. Blank text is
// replaced by the placeholder.
func (r *Renderer) Render(text string) ([]byte, error) {
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	faces := &faceCache{font: f, faces: map[int]font.Face{}}
	defer faces.close()

	words := Frequencies(text, r.MaxWords)
	if len(words) == 0 {
		for _, tok := range strings.Fields(Placeholder) {
			words = append(words, Word{Text: tok, Count: 1})
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	maxSize := r.Height / 6
	if maxSize < minFontSize {
		maxSize = minFontSize
	}
	maxCount := float64(words[0].Count)

	var placed []image.Rectangle
	drawn := 0
	for i, w := range words {
		size := minFontSize + int(float64(maxSize-minFontSize)*float64(w.Count)/maxCount)
		for ; size >= minFontSize; size -= 2 {
			face, err := faces.get(size)
			if err != nil {
				return nil, err
			}
			box, ok := r.place(face, w.Text, placed)
			if !ok {
				continue
			}
			placed = append(placed, box)
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(palette[i%len(palette)]),
				Face: face,
				Dot:  fixed.P(box.Min.X, box.Min.Y+face.Metrics().Ascent.Ceil()),
			}
			d.DrawString(w.Text)
			drawn++
			break
		}
	}
	log.Debug().Int("words", len(words)).Int("drawn", drawn).Msg("Word cloud rendered")

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// faceCache holds the faces of one rendering
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func (c *faceCache) get(size int) (font.Face, error) {
	if face, ok := c.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	c.faces[size] = face
	return face, nil
}

func (c *faceCache) close() {
	for _, face := range c.faces {
		face.Close()
	}
}

// place walks an Archimedean spiral out from the centre and returns the
// first box that fits inside the image without touching a placed word
func (r *Renderer) place(face font.Face, text string, placed []image.Rectangle) (image.Rectangle, bool) {
	m := face.Metrics()
	w := font.MeasureString(face, text).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w <= 0 || h <= 0 || w > r.Width || h > r.Height {
		return image.Rectangle{}, false
	}

	cx, cy := r.Width/2, r.Height/2
	bounds := image.Rect(0, 0, r.Width, r.Height)
	maxRadius := math.Hypot(float64(r.Width), float64(r.Height)) / 2
	for t := 0.0; ; t += 0.1 {
		radius := 2 * t
		if radius > maxRadius {
			return image.Rectangle{}, false
		}
		x := cx + int(radius*math.Cos(t)) - w/2
		y := cy + int(radius*math.Sin(t)) - h/2
		box := image.Rect(x, y, x+w, y+h)
		if !box.In(bounds) || overlaps(box.Inset(-1), placed) {
			continue
		}
		return box, true
	}
}

func overlaps(box image.Rectangle, placed []image.Rectangle) bool {
	for _, p := range placed {
		if box.Overlaps(p) {
			return true
		}
	}
	return false
}
