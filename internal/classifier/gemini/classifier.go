// Package gemini implements the transaction classifier port against Google's
// Gemini generative models.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/ports"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Classifier calls the Gemini API to classify free-text messages and extract
// transactions from statement files. It implements ports.TransactionClassifier.
type Classifier struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// New creates a Gemini-backed classifier. The caller owns the client
// lifecycle via Close.
func New(ctx context.Context, apiKey, modelName string, logger *slog.Logger) (*Classifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Classifier{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (c *Classifier) Close() error {
	return c.client.Close()
}

// Classify sends the message to the model and parses the JSON verdict.
// A response that cannot be parsed is treated as "no transaction found"
// rather than an error; only transport failures are surfaced, wrapped in
// apperrors.ErrClassifierUnavailable.
func (c *Classifier) Classify(ctx context.Context, sender, body string) (*ports.ClassificationResult, error) {
	raw, err := c.generate(ctx, buildClassifyPrompt(sender, body))
	if err != nil {
		return nil, err
	}

	result, err := parseClassification(raw)
	if err != nil {
		c.logger.Warn("Unparsable classifier response, treating as non-transaction", slog.String("sender", sender), slog.String("error", err.Error()))
		return nil, nil
	}
	return result, nil
}

// ClassifyBatch extracts all transactions from a statement-file blob.
// Entries without a usable type or amount are dropped; the remainder is
// returned in file order.
func (c *Classifier) ClassifyBatch(ctx context.Context, content, format string) ([]ports.ClassificationResult, error) {
	raw, err := c.generate(ctx, buildBatchPrompt(content, format))
	if err != nil {
		return nil, err
	}

	results, err := parseClassificationList(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse batch extraction response: %w", err)
	}

	kept := make([]ports.ClassificationResult, 0, len(results))
	for _, r := range results {
		if r.TransactionType == "" || r.Amount == nil {
			continue
		}
		r.IsTransaction = true
		kept = append(kept, r)
	}
	if dropped := len(results) - len(kept); dropped > 0 {
		c.logger.Warn("Dropped incomplete batch entries", slog.Int("dropped", dropped), slog.Int("kept", len(kept)))
	}
	return kept, nil
}

// generate runs one prompt and returns the first candidate's text.
func (c *Classifier) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %v: %w", err, apperrors.ErrClassifierUnavailable)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned an empty response: %w", apperrors.ErrClassifierUnavailable)
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

var _ ports.TransactionClassifier = (*Classifier)(nil)
