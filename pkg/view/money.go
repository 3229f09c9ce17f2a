package view

import "fmt"

// MoneyFromCents converts cents to a human-readable currency string.
// E.g., 1000 INR -> "₹10.00"
func MoneyFromCents(cents int, currency string) string {
	major := cents / 100
	remainder := cents % 100
	return fmt.Sprintf("%s%.2f", currencySymbol(currency), float64(major)+float64(remainder)/100)
}

func currencySymbol(code string) string {
	switch code {
	case "INR":
		return "₹"
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	default:
		return code + " "
	}
}
