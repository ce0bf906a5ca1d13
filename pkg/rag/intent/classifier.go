package intent

import (
	"context"
	"fmt"
	"strings"

	"admission-assistant-be/internal/constant"
	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/retry"
)

// Intent values returned by the classifier. IntentNone means the message
// expresses neither a register nor a login intent.
const (
	IntentRegister = "register"
	IntentLogin    = "login"
	IntentNone     = ""
)

// Login keywords are checked before register keywords: login phrases are
// more specific and must not be shadowed by the broader register match.
var loginKeywords = []string{
	"i want to login", "i want to log in", "login", "log in", "sign in",
	"access my account", "my account", "signin",
}

var registerKeywords = []string{
	"i want to register", "i want to apply", "register", "sign up", "signup",
	"create account", "i want to enroll", "apply now", "start application",
}

// Classifier determines whether a user message expresses a register or
// login intent, by a model call with a keyword fallback. It never fails;
// unclassifiable input yields IntentNone.
type Classifier struct {
	llmProvider llm.LLMProvider
	retryPolicy retry.Policy
}

func NewClassifier(llmProvider llm.LLMProvider, retryPolicy retry.Policy) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		retryPolicy: retryPolicy,
	}
}

func (c *Classifier) Classify(ctx context.Context, userMessage string) string {
	if c.llmProvider != nil {
		prompt := fmt.Sprintf(constant.IntentClassifierPromptV1, userMessage)
		raw, err := retry.Do(ctx, c.retryPolicy, func() (string, error) {
			return c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
		})
		if err == nil {
			switch strings.ToUpper(strings.TrimSpace(raw)) {
			case "REGISTER":
				return IntentRegister
			case "LOGIN":
				return IntentLogin
			case "NONE":
				return IntentNone
			}
			// Any other output falls through to the keyword match.
		}
	}
	return classifyByKeywords(userMessage)
}

func classifyByKeywords(userMessage string) string {
	messageLower := strings.ToLower(strings.TrimSpace(userMessage))

	for _, keyword := range loginKeywords {
		if strings.Contains(messageLower, keyword) {
			return IntentLogin
		}
	}
	for _, keyword := range registerKeywords {
		if strings.Contains(messageLower, keyword) {
			return IntentRegister
		}
	}
	return IntentNone
}
