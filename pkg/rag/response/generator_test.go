package response

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"admission-assistant-be/internal/constant"
	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/rag/retriever"
	"admission-assistant-be/pkg/retry"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// recordingProvider captures the chat history it was called with.
type recordingProvider struct {
	reply    string
	err      error
	messages []llm.Message
}

func (r *recordingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	r.messages = history
	return r.reply, r.err
}

func (r *recordingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return r.reply, r.err
}

var generatorTestPolicy = retry.Policy{Retries: 2, BaseDelay: time.Millisecond, BackoffFactor: 2}

func TestGenerateMessageShape(t *testing.T) {
	provider := &recordingProvider{reply: "FUE offers six faculties."}
	g := NewGenerator(provider, generatorTestPolicy, 0, nopLogger{})

	answer := g.Generate(context.Background(), Input{
		Query:    "What faculties do you offer?",
		UserName: "Sara",
		History: []llm.Message{
			{Role: constant.ChatMessageRoleUser, Content: "Hi"},
			{Role: "assistant", Content: "Hello! How can I help?"},
		},
		Passages: []retriever.Passage{
			{DocumentTitle: "Faculties Overview", Content: "FUE has six faculties."},
		},
	})

	if answer != "FUE offers six faculties." {
		t.Errorf("answer = %q", answer)
	}
	if len(provider.messages) != 4 {
		t.Fatalf("got %d messages, want persona + 2 history + grounded prompt", len(provider.messages))
	}
	if provider.messages[0].Role != constant.ChatMessageRoleSystem {
		t.Errorf("first message role = %q, want system persona", provider.messages[0].Role)
	}
	last := provider.messages[len(provider.messages)-1]
	if last.Role != constant.ChatMessageRoleUser {
		t.Errorf("last message role = %q", last.Role)
	}
	if !strings.Contains(last.Content, "FROM: Faculties Overview") {
		t.Errorf("grounded prompt missing passage attribution:\n%s", last.Content)
	}
	if !strings.Contains(last.Content, "USER NAME: Sara") {
		t.Errorf("grounded prompt missing user name:\n%s", last.Content)
	}
	if !strings.Contains(last.Content, "QUESTION: What faculties do you offer?") {
		t.Errorf("grounded prompt missing question:\n%s", last.Content)
	}
}

func TestGenerateNoPassages(t *testing.T) {
	provider := &recordingProvider{reply: "I don't have that information."}
	g := NewGenerator(provider, generatorTestPolicy, 0, nopLogger{})

	g.Generate(context.Background(), Input{Query: "Anything?"})

	last := provider.messages[len(provider.messages)-1]
	if !strings.Contains(last.Content, "no knowledge base passages matched") {
		t.Errorf("prompt should state that no passages matched:\n%s", last.Content)
	}
	if strings.Contains(last.Content, "MEDIA RULES") {
		t.Error("media rules should be omitted when no media was selected")
	}
}

func TestGenerateMediaRules(t *testing.T) {
	provider := &recordingProvider{reply: "Here is the campus."}
	g := NewGenerator(provider, generatorTestPolicy, 0, nopLogger{})

	g.Generate(context.Background(), Input{
		Query:             "Show me the campus",
		ImageDescriptions: "Main gate at sunset",
	})

	last := provider.messages[len(provider.messages)-1]
	if !strings.Contains(last.Content, "MEDIA RULES") {
		t.Errorf("prompt should carry media rules:\n%s", last.Content)
	}
	if !strings.Contains(last.Content, "IMAGE DESCRIPTIONS: Main gate at sunset") {
		t.Errorf("prompt missing image descriptions:\n%s", last.Content)
	}
}

func TestGenerateFailureMessage(t *testing.T) {
	provider := &recordingProvider{err: errors.New("model unavailable")}
	g := NewGenerator(provider, generatorTestPolicy, 0, nopLogger{})

	answer := g.Generate(context.Background(), Input{Query: "Hello"})
	if answer != constant.GenerationFailureMessage {
		t.Errorf("answer = %q, want the fixed failure message", answer)
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	g := NewGenerator(nil, generatorTestPolicy, 0, nopLogger{})

	answer := g.Generate(context.Background(), Input{Query: "Hello"})
	if answer != constant.ServiceUnavailableMessage {
		t.Errorf("answer = %q, want the service-unavailable message", answer)
	}
}

func TestGenerateEmptyAnswer(t *testing.T) {
	provider := &recordingProvider{reply: "   \n"}
	g := NewGenerator(provider, generatorTestPolicy, 0, nopLogger{})

	answer := g.Generate(context.Background(), Input{Query: "Hello"})
	if answer != constant.GenerationFailureMessage {
		t.Errorf("answer = %q, want the fixed failure message", answer)
	}
}
