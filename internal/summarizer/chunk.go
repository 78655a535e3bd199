package summarizer

import "strings"

// Chunk splits content into line-respecting pieces of at most max
// characters. Content within the limit comes back as a single chunk,
// including the empty string. A single line longer than max becomes its
// own oversized chunk; lines are never split. Joining the chunks with
// "\n" reproduces the source content.
func Chunk(content string, max int) []string {
	if len(content) <= max {
		return []string{content}
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, line := range strings.Split(content, "\n") {
		if currentLen+len(line) > max && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = []string{line}
			currentLen = len(line)
			continue
		}
		current = append(current, line)
		currentLen += len(line) + 1
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}
