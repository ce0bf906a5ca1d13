package media

import (
	"context"
	"fmt"
	"strings"

	"admission-assistant-be/internal/constant"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/retry"
)

// Tokens whose presence in the model's verdict counts as affirmative.
var affirmativeTokens = []string{"yes", "media", "image", "video"}

// Stop words excluded from keyword extraction. Keep this list short; the
// model output is already keyword-shaped most of the time.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "about": true,
	"yes": true, "no": true, "media": true, "image": true, "images": true,
	"video": true, "videos": true, "show": true, "discussing": true,
	"keywords": true, "would": true, "benefit": true, "this": true,
	"that": true, "user": true, "question": true,
}

// Decider asks the model whether a query would benefit from media and
// extracts search keywords from the free-text verdict. A failed model call
// degrades to "no media" and never fails the turn.
type Decider struct {
	llmProvider llm.LLMProvider
	retryPolicy retry.Policy
	log         logger.ILogger
}

func NewDecider(llmProvider llm.LLMProvider, retryPolicy retry.Policy, log logger.ILogger) *Decider {
	return &Decider{
		llmProvider: llmProvider,
		retryPolicy: retryPolicy,
		log:         log,
	}
}

func (d *Decider) Decide(ctx context.Context, userQuery string) Decision {
	if d.llmProvider == nil {
		return Decision{}
	}

	prompt := fmt.Sprintf(constant.MediaDecisionPromptV1, userQuery)

	raw, err := retry.Do(ctx, d.retryPolicy, func() (string, error) {
		return d.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	})
	if err != nil {
		d.log.Warn("media_decision", "model call failed, skipping media", map[string]interface{}{
			"error": err.Error(),
			"query": truncate(userQuery, 80),
		})
		return Decision{}
	}

	return ParseDecision(raw)
}

// ParseDecision interprets the raw verdict text. The model does not
// reliably follow the structured-output instructions, so two shapes are
// accepted: a "YES ..." style answer with keywords somewhere in the body,
// and a bare comma-separated keyword dump (which implies YES).
func ParseDecision(raw string) Decision {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Decision{}
	}

	// Alternate path: a short bare comma list is itself the keyword set.
	if items, ok := asCommaList(trimmed); ok {
		return Decision{IncludeMedia: true, Keywords: capKeywords(items)}
	}

	firstLine := strings.ToLower(strings.TrimSpace(strings.SplitN(trimmed, "\n", 2)[0]))
	include := false
	if strings.HasPrefix(firstLine, "yes") {
		include = true
	} else if strings.HasPrefix(firstLine, "no") {
		include = false
	} else {
		// No single-token verdict; fall back to body-wide token presence.
		lower := strings.ToLower(trimmed)
		for _, tok := range affirmativeTokens {
			if strings.Contains(lower, tok) {
				include = true
				break
			}
		}
	}

	if !include {
		return Decision{}
	}
	return Decision{IncludeMedia: true, Keywords: extractKeywords(trimmed)}
}

// asCommaList reports whether raw is a single-line comma-separated list of
// at most 6 plain items and returns them.
func asCommaList(raw string) ([]string, bool) {
	if strings.Contains(raw, "\n") || !strings.Contains(raw, ",") {
		return nil, false
	}
	parts := strings.Split(raw, ",")
	if len(parts) > 6 {
		return nil, false
	}
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		item := strings.ToLower(strings.TrimSpace(p))
		if item == "" || strings.ContainsAny(item, ".!?:") {
			return nil, false
		}
		if len(strings.Fields(item)) > 3 {
			return nil, false
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, false
	}
	// A leading verdict token means this is a "YES, ..." answer, not a
	// bare keyword dump.
	if items[0] == "yes" || items[0] == "no" || strings.HasPrefix(items[0], "yes ") || strings.HasPrefix(items[0], "no ") {
		return nil, false
	}
	return items, true
}

// extractKeywords tokenizes the verdict, lowercases, strips punctuation,
// filters short tokens and stop words, and keeps the first 4 unique tokens.
func extractKeywords(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	})

	seen := make(map[string]bool)
	keywords := make([]string, 0, maxKeywords)
	for _, f := range fields {
		token := strings.ToLower(strings.Trim(f, ".,!?:;\"'()[]"))
		if len(token) < 3 || stopWords[token] || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func capKeywords(items []string) []string {
	if len(items) > maxKeywords {
		return items[:maxKeywords]
	}
	return items
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
