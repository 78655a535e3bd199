package subtitle

import "strings"

// parseText handles plain transcripts. Content with a double line break
// anywhere is treated as paragraphs (internal newlines collapse to
// spaces); otherwise every non-blank line becomes its own entry.
func parseText(text string) []Entry {
	var entries []Entry

	if strings.Contains(text, "\n\n") {
		for _, para := range strings.Split(text, "\n\n") {
			flat := strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
			if flat == "" {
				continue
			}
			entries = append(entries, Entry{Text: flat})
		}
		return entries
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, Entry{Text: line})
	}
	return entries
}
