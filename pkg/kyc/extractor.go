package kyc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"admission-assistant-be/internal/constant"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/retry"
)

// Extractor pulls registration fields out of free-form user messages.
// Users volunteer several fields in one message ("I'm Sara, sara@x.com,
// engineering") so extraction is structured rather than step-by-step.
type Extractor struct {
	llmProvider llm.LLMProvider
	retryPolicy retry.Policy
	log         logger.ILogger
}

func NewExtractor(llmProvider llm.LLMProvider, retryPolicy retry.Policy, log logger.ILogger) *Extractor {
	return &Extractor{
		llmProvider: llmProvider,
		retryPolicy: retryPolicy,
		log:         log,
	}
}

// Extract asks the model for a JSON object of the five fields. A failed
// call or unparseable answer yields an empty extraction; the guidance
// message then re-asks for whatever is still missing.
func (e *Extractor) Extract(ctx context.Context, userMessage string) Extracted {
	if e.llmProvider == nil {
		return Extracted{}
	}

	prompt := fmt.Sprintf(constant.KycExtractionPromptV1,
		"- "+strings.Join(Faculties, "\n- "),
		userMessage,
	)

	raw, err := retry.Do(ctx, e.retryPolicy, func() (string, error) {
		return e.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	})
	if err != nil {
		e.log.Warn("kyc_extractor", "extraction call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return Extracted{}
	}

	extracted, err := ParseExtraction(raw)
	if err != nil {
		e.log.Warn("kyc_extractor", "unparseable extraction response", map[string]interface{}{
			"error":    err.Error(),
			"response": truncate(raw, 200),
		})
		return Extracted{}
	}
	return extracted
}

// ParseExtraction decodes the extraction JSON, tolerating markdown fences.
// JSON null maps to a nil pointer, which Merge treats as "not mentioned".
func ParseExtraction(raw string) (Extracted, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var extracted Extracted
	if err := json.Unmarshal([]byte(cleaned), &extracted); err != nil {
		return Extracted{}, fmt.Errorf("decode extraction: %w", err)
	}
	return extracted, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
