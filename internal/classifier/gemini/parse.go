package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anujbalmiki/pennywise/internal/core/ports"
)

// stripCodeFences removes a leading/trailing markdown code fence, which the
// model emits despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func parseClassification(raw string) (*ports.ClassificationResult, error) {
	cleaned := stripCodeFences(raw)
	var result ports.ClassificationResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("model response is not valid classification JSON: %w", err)
	}
	return &result, nil
}

func parseClassificationList(raw string) ([]ports.ClassificationResult, error) {
	cleaned := stripCodeFences(raw)
	var results []ports.ClassificationResult
	if err := json.Unmarshal([]byte(cleaned), &results); err != nil {
		return nil, fmt.Errorf("model response is not a valid classification array: %w", err)
	}
	return results, nil
}
