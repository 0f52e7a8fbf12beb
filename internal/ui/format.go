package ui

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatNumber renders n with thousands separators, e.g. 42,952,072
func FormatNumber(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// FormatTokens renders a token count with K/M suffixes
func FormatTokens(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.2fK", float64(n)/1_000)
	default:
		return FormatNumber(n)
	}
}
