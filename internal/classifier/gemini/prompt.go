package gemini

import "fmt"

// classifyPromptTemplate asks the model to decide transactionality and
// extract the fields in a single pass. The JSON keys mirror
// ports.ClassificationResult exactly; the vocabulary lists are the closed
// sets the normalizer accepts.
const classifyPromptTemplate = `You are a financial SMS analyzer. Analyze the following message and decide whether it describes a financial transaction (money moving in or out of an account).

Sender: %s
Message: %s

Respond with ONLY a JSON object, no markdown, no explanation outside the JSON:
{
  "is_transaction": true or false,
  "transaction_type": one of "credit", "debit", "payment", "transfer", "spent", "received" (empty string if not a transaction),
  "amount": the numeric amount (null if not a transaction or unknown),
  "currency": ISO currency code, e.g. "INR" (empty string if unknown),
  "merchant": merchant or counterparty name (empty string if unknown),
  "transaction_date": date in ISO 8601 format, e.g. "2024-05-01" (empty string if unknown),
  "reference_number": transaction reference, alphanumeric only (empty string if none),
  "account_number": masked account identifier (empty string if none),
  "card_number": masked card identifier, e.g. last 4 digits (empty string if none),
  "payment_method": one of "upi", "card", "neft", "imps", "rtgs", "cash", "wallet" (empty string if unknown),
  "remarks": any remaining useful detail (empty string if none),
  "is_failed": true if the message reports a failed or declined transaction,
  "confidence": your confidence between 0.0 and 1.0,
  "reason": one short sentence explaining your decision
}

Promotional messages, OTPs, balance enquiries and reminders are NOT transactions.`

// batchPromptTemplate asks the model to extract every transaction from a
// statement-file blob. The entry schema matches the single-message contract
// minus the is_transaction flag, which is implied.
const batchPromptTemplate = `You are a financial statement parser. The following is the content of a %s statement file. Extract EVERY financial transaction it contains.

File content:
%s

Respond with ONLY a JSON array, no markdown, no explanation outside the JSON. Each element:
{
  "transaction_type": one of "credit", "debit", "payment", "transfer", "spent", "received",
  "amount": the numeric amount,
  "currency": ISO currency code, e.g. "INR" (empty string if unknown),
  "merchant": merchant or counterparty name (empty string if unknown),
  "transaction_date": date in ISO 8601 format (empty string if unknown),
  "reference_number": transaction reference, alphanumeric only (empty string if none),
  "account_number": masked account identifier (empty string if none),
  "card_number": masked card identifier (empty string if none),
  "payment_method": one of "upi", "card", "neft", "imps", "rtgs", "cash", "wallet" (empty string if unknown),
  "remarks": any remaining useful detail (empty string if none),
  "is_failed": true if the entry reports a failed transaction
}

Return [] if the file contains no transactions.`

func buildClassifyPrompt(sender, body string) string {
	return fmt.Sprintf(classifyPromptTemplate, sender, body)
}

func buildBatchPrompt(content, format string) string {
	return fmt.Sprintf(batchPromptTemplate, format, content)
}
