package services

import "strings"

// categoryRule maps a spending category to the keywords that signal it.
// Rules are evaluated in order and the first matching keyword wins, so the
// more specific categories sit above the broader ones.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"grocery", []string{"grocery", "supermarket", "bigbasket", "blinkit", "zepto", "dmart", "kirana"}},
	{"transport", []string{"uber", "ola", "rapido", "metro", "irctc", "fuel", "petrol", "diesel", "parking"}},
	{"shopping", []string{"amazon", "flipkart", "myntra", "ajio", "mall", "store"}},
	{"entertainment", []string{"netflix", "spotify", "hotstar", "prime video", "bookmyshow", "cinema", "movie"}},
	{"utilities", []string{"electricity", "water bill", "gas", "broadband", "recharge", "airtel", "jio", "vodafone", "postpaid"}},
	{"healthcare", []string{"pharmacy", "hospital", "clinic", "apollo", "medplus", "diagnostic", "lab test"}},
	{"education", []string{"school", "college", "university", "course", "udemy", "coursera", "tuition"}},
	{"travel", []string{"flight", "airline", "indigo", "vistara", "hotel", "oyo", "makemytrip", "goibibo", "booking.com"}},
}

// CategorizeCounterparty returns the spending category inferred from the
// counterparty and free-text notes, or "" when nothing matches. Matching is
// case-insensitive substring search over both fields.
func CategorizeCounterparty(counterparty, notes string) string {
	haystack := strings.ToLower(counterparty + " " + notes)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.category
			}
		}
	}
	return ""
}
