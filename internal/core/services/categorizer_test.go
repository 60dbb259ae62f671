package services_test

import (
	"testing"

	"github.com/anujbalmiki/pennywise/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestCategorizeCounterparty(t *testing.T) {
	tests := []struct {
		name         string
		counterparty string
		notes        string
		want         string
	}{
		{"grocery merchant", "BigBasket", "", "grocery"},
		{"transport ride", "Uber India", "", "transport"},
		{"shopping", "AMAZON PAY", "", "shopping"},
		{"entertainment subscription", "Netflix", "", "entertainment"},
		{"utility recharge", "Airtel Prepaid", "", "utilities"},
		{"healthcare", "Apollo Pharmacy", "", "healthcare"},
		{"education", "Coursera Inc", "", "education"},
		{"travel booking", "IndiGo", "", "travel"},
		{"match from notes", "Unknown Merchant", "monthly electricity bill", "utilities"},
		{"case insensitive", "nEtFlIx", "", "entertainment"},
		{"no match", "Sharma General Works", "", ""},
		{"empty input", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.CategorizeCounterparty(tt.counterparty, tt.notes)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategorizeCounterparty_FirstRuleWins(t *testing.T) {
	// "uber" (transport) appears before "store" (shopping) in the rule order.
	got := services.CategorizeCounterparty("Uber Store", "")
	assert.Equal(t, "transport", got)
}
