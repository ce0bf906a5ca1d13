package response

import (
	"context"
	"fmt"
	"strings"

	"admission-assistant-be/internal/constant"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/rag/retriever"
	"admission-assistant-be/pkg/retry"
)

const defaultMaxResponseTokens = 2048

// Input carries everything the generation stage needs for one turn.
type Input struct {
	Query             string
	UserName          string
	UserFaculty       string
	Passages          []retriever.Passage
	ImageDescriptions string
	VideoDescriptions string
	History           []llm.Message
}

// Generator produces the final grounded answer. It is the only pipeline
// stage whose failure surfaces to the user, and even then as a fixed
// apology message rather than an error.
type Generator struct {
	llmProvider llm.LLMProvider
	retryPolicy retry.Policy
	maxTokens   int
	log         logger.ILogger
}

func NewGenerator(llmProvider llm.LLMProvider, retryPolicy retry.Policy, maxTokens int, log logger.ILogger) *Generator {
	if maxTokens <= 0 {
		maxTokens = defaultMaxResponseTokens
	}
	return &Generator{
		llmProvider: llmProvider,
		retryPolicy: retryPolicy,
		maxTokens:   maxTokens,
		log:         log,
	}
}

// Generate builds the grounded prompt and asks the model for an answer.
// Retry exhaustion returns the fixed failure message, never an error.
func (g *Generator) Generate(ctx context.Context, in Input) string {
	if g.llmProvider == nil {
		g.log.Error("response_generator", "no model provider configured", nil)
		return constant.ServiceUnavailableMessage
	}

	promptText := buildGroundedPrompt(in)

	messages := make([]llm.Message, 0, len(in.History)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.ResponsePersonaPromptV1,
	})
	messages = append(messages, in.History...)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: promptText,
	})

	answer, err := retry.Do(ctx, g.retryPolicy, func() (string, error) {
		return g.llmProvider.Chat(ctx, messages,
			llm.WithTemperature(0),
			llm.WithMaxTokens(g.maxTokens),
		)
	})
	if err != nil {
		g.log.Error("response_generator", "generation failed after retries", map[string]interface{}{
			"error": err.Error(),
			"query": truncate(in.Query, 120),
		})
		return constant.GenerationFailureMessage
	}

	if strings.TrimSpace(answer) == "" {
		g.log.Warn("response_generator", "model returned an empty answer", nil)
		return constant.GenerationFailureMessage
	}
	return answer
}

func buildGroundedPrompt(in Input) string {
	var prompt strings.Builder

	prompt.WriteString("CONTEXT:\n")
	if len(in.Passages) == 0 {
		prompt.WriteString("(no knowledge base passages matched this question)\n")
	} else {
		for _, p := range in.Passages {
			prompt.WriteString(fmt.Sprintf("\n--- FROM: %s ---\n", p.DocumentTitle))
			prompt.WriteString(p.Content)
			prompt.WriteString("\n")
		}
	}
	prompt.WriteString("\n")

	if in.ImageDescriptions != "" || in.VideoDescriptions != "" {
		prompt.WriteString("MEDIA RULES:\n")
		prompt.WriteString("Relevant media will be shown alongside your answer. Reference it naturally (for example: \"as you can see in the attached photos\"). Do not include raw URLs in your text.\n")
		if in.ImageDescriptions != "" {
			prompt.WriteString(fmt.Sprintf("IMAGE DESCRIPTIONS: %s\n", in.ImageDescriptions))
		}
		if in.VideoDescriptions != "" {
			prompt.WriteString(fmt.Sprintf("VIDEO DESCRIPTIONS: %s\n", in.VideoDescriptions))
		}
		prompt.WriteString("\n")
	}

	if in.UserName != "" {
		prompt.WriteString(fmt.Sprintf("USER NAME: %s\n", in.UserName))
	}
	if in.UserFaculty != "" && in.UserFaculty != "Unknown" {
		prompt.WriteString(fmt.Sprintf("USER FACULTY OF INTEREST: %s\n", in.UserFaculty))
	}

	prompt.WriteString(fmt.Sprintf("\nQUESTION: %s", in.Query))
	return prompt.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
