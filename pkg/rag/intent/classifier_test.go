package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/retry"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

var testPolicy = retry.Policy{Retries: 1, BaseDelay: time.Millisecond, BackoffFactor: 2}

func TestClassifyByKeywords(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "explicit register", message: "I want to register", want: IntentRegister},
		{name: "apply phrasing", message: "i want to apply please", want: IntentRegister},
		{name: "sign up", message: "how do I sign up?", want: IntentRegister},
		{name: "explicit login", message: "I want to login to my account", want: IntentLogin},
		{name: "sign in", message: "let me sign in", want: IntentLogin},
		{name: "login beats register keywords", message: "login so I can register later", want: IntentLogin},
		{name: "plain question", message: "What faculties do you have?", want: IntentNone},
		{name: "empty", message: "", want: IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyByKeywords(tt.message); got != tt.want {
				t.Errorf("classifyByKeywords(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestClassifyUsesModelVerdict(t *testing.T) {
	c := NewClassifier(&fakeProvider{reply: "REGISTER"}, testPolicy)
	if got := c.Classify(context.Background(), "some ambiguous text"); got != IntentRegister {
		t.Errorf("Classify = %q, want register", got)
	}

	c = NewClassifier(&fakeProvider{reply: " login \n"}, testPolicy)
	if got := c.Classify(context.Background(), "some ambiguous text"); got != IntentLogin {
		t.Errorf("Classify = %q, want login", got)
	}

	// "How do I apply?" is an informational question, not an intent.
	c = NewClassifier(&fakeProvider{reply: "NONE"}, testPolicy)
	if got := c.Classify(context.Background(), "How do I apply?"); got != IntentNone {
		t.Errorf("Classify = %q, want none", got)
	}
}

func TestClassifyFallsBackOnModelFailure(t *testing.T) {
	c := NewClassifier(&fakeProvider{err: errors.New("quota")}, testPolicy)
	if got := c.Classify(context.Background(), "I want to register"); got != IntentRegister {
		t.Errorf("Classify = %q, want keyword fallback register", got)
	}
}

func TestClassifyFallsBackOnGarbageVerdict(t *testing.T) {
	c := NewClassifier(&fakeProvider{reply: "MAYBE?"}, testPolicy)
	if got := c.Classify(context.Background(), "sign in please"); got != IntentLogin {
		t.Errorf("Classify = %q, want keyword fallback login", got)
	}
}

func TestClassifyNilProvider(t *testing.T) {
	c := NewClassifier(nil, testPolicy)
	if got := c.Classify(context.Background(), "create account"); got != IntentRegister {
		t.Errorf("Classify = %q, want register", got)
	}
}
