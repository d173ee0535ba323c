package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   FormattedPrice
	}{
		{
			name:   "crore",
			amount: 11_400_000,
			want: FormattedPrice{
				Main:  "₹1.14 Cr",
				INR:   "₹11,400,000",
				Lakh:  "114.00 Lakh",
				Crore: "1.14 Cr",
			},
		},
		{
			name:   "lakh",
			amount: 250_000,
			want: FormattedPrice{
				Main:  "₹2.50 Lakh",
				INR:   "₹250,000",
				Lakh:  "2.50 Lakh",
				Crore: "0.03 Cr",
			},
		},
		{
			name:   "plain",
			amount: 5_000,
			want: FormattedPrice{
				Main:  "₹5,000",
				INR:   "₹5,000",
				Lakh:  "0.05 Lakh",
				Crore: "0.00 Cr",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.amount))
		})
	}
}

func TestCroreToINR(t *testing.T) {
	assert.InDelta(t, 11_400_000.0, CroreToINR(1.14), 1e-6)
	assert.Equal(t, FormatPrice(11_400_000).Main, FormatPrice(CroreToINR(1.14)).Main)
}
