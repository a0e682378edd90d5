package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var weightPrinter = message.NewPrinter(language.English)

// FormatWeight 千分位 + 两位小数，如 9,542.04
func FormatWeight(value float64) string {
	return weightPrinter.Sprintf("%.2f", value)
}
