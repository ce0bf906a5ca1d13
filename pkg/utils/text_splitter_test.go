package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short document", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short document" {
		t.Errorf("SplitText() = %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	chunks := SplitText("abcdefghij", 4, 2)
	want := []string{"abcd", "cdef", "efgh", "ghij"}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks %v, want %d", len(chunks), chunks, len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunks[%d] = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplitTextPrefersWordBoundary(t *testing.T) {
	chunks := SplitText("aaaa bbbb cccc dddd", 10, 0)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks %v", len(chunks), chunks)
	}
	if !strings.HasSuffix(chunks[0], " ") {
		t.Errorf("first chunk %q should end at a word boundary", chunks[0])
	}
	if chunks[1] != "cccc dddd" {
		t.Errorf("second chunk = %q", chunks[1])
	}
}

func TestSplitTextNoSpaces(t *testing.T) {
	chunks := SplitText(strings.Repeat("x", 25), 10, 0)
	want := []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunks[%d] = %q, want %q", i, chunks[i], want[i])
		}
	}
}
