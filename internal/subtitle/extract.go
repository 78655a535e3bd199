package subtitle

import (
	"fmt"
	"strings"
)

// Extract flattens a document into a single text blob. Default mode joins
// entry texts with newlines, discarding timing metadata. Full-context mode
// renders each entry as "[start --> end] speaker: text" with absent parts
// omitted, preserving entry order.
func Extract(doc *Document, fullContext bool) string {
	if doc == nil {
		return ""
	}

	var lines []string
	for _, e := range doc.Entries {
		if e.Text == "" {
			continue
		}
		if !fullContext {
			lines = append(lines, e.Text)
			continue
		}

		var parts []string
		if e.StartTime != "" && e.EndTime != "" {
			parts = append(parts, fmt.Sprintf("[%s --> %s]", e.StartTime, e.EndTime))
		}
		if e.Speaker != "" {
			parts = append(parts, e.Speaker+":")
		}
		parts = append(parts, e.Text)
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}
