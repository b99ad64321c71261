package itinerary

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCost renders an amount as grouped Indian Rupees, e.g. "₹4,500".
func FormatCost(amount float64) string {
	return currencyPrinter.Sprintf("₹%.0f", amount)
}
