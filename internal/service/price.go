package service

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

const (
	rupee = "₹"
	lakh  = 1e5
	crore = 1e7
)

// FormattedPrice is an amount rendered in every denomination. Main uses
// the largest denomination the amount reaches.
type FormattedPrice struct {
	Main  string
	INR   string
	Lakh  string
	Crore string
}

// CroreToINR converts the model's native unit to rupees
func CroreToINR(valueInCrore float64) float64 {
	return valueInCrore * crore
}

// FormatPrice renders an amount given in rupees
func FormatPrice(amount float64) FormattedPrice {
	grouped := rupee + humanize.Comma(int64(math.Round(amount)))

	var main string
	switch {
	case amount >= crore:
		main = fmt.Sprintf("%s%.2f Cr", rupee, amount/crore)
	case amount >= lakh:
		main = fmt.Sprintf("%s%.2f Lakh", rupee, amount/lakh)
	default:
		main = grouped
	}

	return FormattedPrice{
		Main:  main,
		INR:   grouped,
		Lakh:  fmt.Sprintf("%.2f Lakh", amount/lakh),
		Crore: fmt.Sprintf("%.2f Cr", amount/crore),
	}
}
