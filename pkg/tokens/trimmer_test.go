package tokens

import (
	"strings"
	"testing"

	"admission-assistant-be/pkg/llm"
)

func msg(role, content string) llm.Message {
	return llm.Message{Role: role, Content: content}
}

func TestApproximate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single rune rounds up", text: "a", want: 1},
		{name: "exactly one token", text: "abcd", want: 1},
		{name: "five runes round up", text: "abcde", want: 2},
		{name: "multibyte runes counted once", text: "مرحبا", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Approximate(tt.text); got != tt.want {
				t.Errorf("Approximate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCheckInput(t *testing.T) {
	if err := CheckInput(strings.Repeat("a", 40), 10); err != nil {
		t.Errorf("input at the limit should pass, got %v", err)
	}
	if err := CheckInput(strings.Repeat("a", 41), 10); err == nil {
		t.Error("input over the limit should be rejected")
	}
	if err := CheckInput(strings.Repeat("a", 1000), 0); err != nil {
		t.Errorf("zero limit disables the check, got %v", err)
	}
}

func TestTrimHistoryEmpty(t *testing.T) {
	got := TrimHistory(nil, 100)
	if len(got) != 0 {
		t.Errorf("empty history should trim to empty, got %d messages", len(got))
	}
}

func TestTrimHistoryDropsSystemTurns(t *testing.T) {
	history := []llm.Message{
		msg("system", "persona"),
		msg("user", "hi"),
		msg("assistant", "hello"),
	}
	got := TrimHistory(history, 1000)
	if len(got) != 2 {
		t.Fatalf("want 2 messages, got %d", len(got))
	}
	for _, m := range got {
		if m.Role == "system" {
			t.Error("system turn survived trimming")
		}
	}
}

func TestTrimHistoryShape(t *testing.T) {
	// Result must start with a user turn and end with an assistant turn.
	history := []llm.Message{
		msg("assistant", "welcome"),
		msg("user", "question one"),
		msg("assistant", "answer one"),
		msg("user", "dangling question"),
	}
	got := TrimHistory(history, 1000)
	if len(got) == 0 {
		t.Fatal("expected non-empty result")
	}
	if got[0].Role != "user" {
		t.Errorf("first role = %q, want user", got[0].Role)
	}
	if got[len(got)-1].Role != "assistant" {
		t.Errorf("last role = %q, want assistant", got[len(got)-1].Role)
	}
}

func TestTrimHistoryBudget(t *testing.T) {
	long := strings.Repeat("x", 400) // 100 tokens
	history := []llm.Message{
		msg("user", long),
		msg("assistant", long),
		msg("user", long),
		msg("assistant", long),
	}

	got := TrimHistory(history, 250)
	if len(got) != 2 {
		t.Fatalf("want the last exchange only, got %d messages", len(got))
	}

	total := 0
	for _, m := range got {
		total += Approximate(m.Content)
	}
	if total > 250 {
		t.Errorf("trimmed history uses %d tokens, budget is 250", total)
	}
}

func TestTrimHistoryNothingFits(t *testing.T) {
	history := []llm.Message{
		msg("user", strings.Repeat("x", 4000)),
		msg("assistant", strings.Repeat("x", 4000)),
	}
	got := TrimHistory(history, 10)
	if len(got) != 0 {
		t.Errorf("want empty result when nothing fits, got %d messages", len(got))
	}
}

func TestLastTurnsFallback(t *testing.T) {
	var history []llm.Message
	for i := 0; i < 8; i++ {
		history = append(history, msg("user", "m"))
	}
	got := LastTurnsFallback(history)
	if len(got) != 5 {
		t.Errorf("want 5 turns, got %d", len(got))
	}

	short := history[:3]
	if got := LastTurnsFallback(short); len(got) != 3 {
		t.Errorf("short history should pass through, got %d", len(got))
	}
}
