package model

// DefaultCurrency is used when no preference was given.
const DefaultCurrency = "USD"

// Currency is one entry of the login currency picker.
type Currency struct {
	Code  string
	Label string
}

// SupportedCurrencies lists the currencies offered at login, in display order.
// Any other well-formed three-letter code is still accepted.
var SupportedCurrencies = []Currency{
	{Code: "USD", Label: "US Dollar ($)"},
	{Code: "EUR", Label: "Euro (€)"},
	{Code: "GBP", Label: "British Pound (£)"},
	{Code: "CAD", Label: "Canadian Dollar (C$)"},
	{Code: "AUD", Label: "Australian Dollar (A$)"},
	{Code: "JPY", Label: "Japanese Yen (¥)"},
	{Code: "INR", Label: "Indian Rupee (₹)"},
	{Code: "KES", Label: "Kenyan Shilling (KSh)"},
}

// IsSupportedCurrency reports whether code is in SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return true
		}
	}
	return false
}
