package tokens

import (
	"errors"
	"unicode/utf8"
)

// ErrInputTooLong signals that a user message exceeds the configured input
// budget. It is the only pipeline error reported to the user verbatim as a
// deterministic instruction to shorten the message.
var ErrInputTooLong = errors.New("tokens: input exceeds budget")

// charsPerToken is the average observed for the mixed English/Arabic traffic
// this assistant serves. Exactness does not matter; monotonicity and a
// stable ratio do, so trimming behaves predictably.
const charsPerToken = 4

// Approximate estimates the token count of text. It is pure and
// deterministic: rune count divided by charsPerToken, rounded up, never
// zero for non-empty input.
func Approximate(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + charsPerToken - 1) / charsPerToken
}

// CheckInput rejects oversized user input before any model call is made.
func CheckInput(text string, maxTokens int) error {
	if maxTokens > 0 && Approximate(text) > maxTokens {
		return ErrInputTooLong
	}
	return nil
}
