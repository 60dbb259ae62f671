package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestParseClassification(t *testing.T) {
	raw := "```json\n" + `{
		"is_transaction": true,
		"transaction_type": "spent",
		"amount": 499.5,
		"currency": "INR",
		"merchant": "Amazon",
		"payment_method": "card",
		"confidence": 0.92,
		"reason": "card spend notification"
	}` + "\n```"

	result, err := parseClassification(raw)

	require.NoError(t, err)
	assert.True(t, result.IsTransaction)
	assert.Equal(t, "spent", result.TransactionType)
	require.NotNil(t, result.Amount)
	assert.Equal(t, 499.5, *result.Amount)
	assert.Equal(t, "Amazon", result.Merchant)
	assert.Equal(t, 0.92, result.Confidence)
}

func TestParseClassification_Invalid(t *testing.T) {
	_, err := parseClassification("I could not analyze this message.")
	assert.Error(t, err)
}

func TestParseClassificationList(t *testing.T) {
	raw := `[
		{"transaction_type": "debit", "amount": 500},
		{"transaction_type": "credit", "amount": 2500, "merchant": "Employer"}
	]`

	results, err := parseClassificationList(raw)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "debit", results[0].TransactionType)
	assert.Equal(t, "Employer", results[1].Merchant)
}

func TestParseClassificationList_Empty(t *testing.T) {
	results, err := parseClassificationList("```json\n[]\n```")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBuildClassifyPrompt_ContainsMessage(t *testing.T) {
	prompt := buildClassifyPrompt("HDFCBK", "Rs 500 debited")
	assert.Contains(t, prompt, "HDFCBK")
	assert.Contains(t, prompt, "Rs 500 debited")
	assert.Contains(t, prompt, "is_transaction")
}
