package utils

import "unicode"

// SplitText breaks text into chunks of at most chunkSize runes with an
// overlap between consecutive chunks to preserve context at boundaries.
// Chunk ends prefer whitespace near the boundary so words are not cut in
// half.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		end = backUpToSpace(runes, start, end)
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// backUpToSpace moves end left to the nearest whitespace, but at most
// a small fraction of the chunk so pathological inputs (no spaces) still
// make progress.
func backUpToSpace(runes []rune, start, end int) int {
	limit := end - (end-start)/10
	for i := end; i > limit; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
