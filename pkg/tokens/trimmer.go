package tokens

import (
	"admission-assistant-be/pkg/llm"
)

const fallbackTurns = 5

// TrimHistory reduces a transcript to the longest suffix whose approximate
// token total fits budget, such that the result starts with a user turn and
// ends with an assistant turn. System turns are dropped entirely. If no
// suffix satisfies both the budget and the alternation constraint, the
// result is empty. Empty input yields empty output.
//
// The function never fails; a safety valve for internal inconsistencies
// returns the last 5 turns unfiltered rather than blocking the conversation.
func TrimHistory(history []llm.Message, budget int) (result []llm.Message) {
	defer func() {
		if r := recover(); r != nil {
			result = LastTurnsFallback(history)
		}
	}()

	if len(history) == 0 {
		return []llm.Message{}
	}

	filtered := make([]llm.Message, 0, len(history))
	for _, m := range history {
		if m.Role == "system" {
			continue
		}
		filtered = append(filtered, m)
	}
	if len(filtered) == 0 {
		return []llm.Message{}
	}

	// Walk suffix start points from longest to shortest until one fits.
	for start := 0; start < len(filtered); start++ {
		candidate := shapeAlternation(filtered[start:])
		if len(candidate) == 0 {
			continue
		}
		if budget <= 0 || totalTokens(candidate) <= budget {
			return candidate
		}
	}
	return []llm.Message{}
}

// LastTurnsFallback returns the unfiltered last 5 turns of history. Callers
// use it when trimming input is in a state they cannot reason about;
// never blocking the conversation beats strict alternation.
func LastTurnsFallback(history []llm.Message) []llm.Message {
	if len(history) <= fallbackTurns {
		return history
	}
	return history[len(history)-fallbackTurns:]
}

// shapeAlternation drops leading turns until the first user turn and
// trailing turns until the last assistant turn.
func shapeAlternation(msgs []llm.Message) []llm.Message {
	lo := 0
	for lo < len(msgs) && msgs[lo].Role != "user" {
		lo++
	}
	hi := len(msgs)
	for hi > lo && msgs[hi-1].Role != "assistant" {
		hi--
	}
	if hi <= lo {
		return nil
	}
	return msgs[lo:hi]
}

func totalTokens(msgs []llm.Message) int {
	total := 0
	for _, m := range msgs {
		total += Approximate(m.Content)
	}
	return total
}
