package subtitle

import (
	"regexp"
	"strings"
)

// parseASS extracts Dialogue lines from the [Events] section. Fields are
// comma-delimited with the text field last; the text field may itself
// contain commas, so the split is capped at 10 fields.
func parseASS(text string) []Entry {
	var entries []Entry
	inEvents := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "[") {
			inEvents = strings.EqualFold(line, "[events]")
			continue
		}
		if !inEvents || !strings.HasPrefix(line, "Dialogue:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "Dialogue:"))
		fields := strings.SplitN(payload, ",", 10)
		if len(fields) < 10 {
			continue
		}

		cleaned := cleanASSText(fields[9])
		if cleaned == "" {
			continue
		}

		entries = append(entries, Entry{
			Text:      cleaned,
			StartTime: strings.TrimSpace(fields[1]),
			EndTime:   strings.TrimSpace(fields[2]),
			Speaker:   strings.TrimSpace(fields[4]),
		})
	}
	return entries
}

var (
	assTagRe = regexp.MustCompile(`(?i)\\[a-z]+`)
	assNumRe = regexp.MustCompile(`\\[0-9]+`)
)

// cleanASSText strips style-override groups and control sequences from a
// Dialogue text field: {...} groups go first (balanced scan), then forced
// line breaks become spaces, then remaining \tag tokens are dropped.
func cleanASSText(s string) string {
	s = stripBraceGroups(s)
	s = strings.ReplaceAll(s, `\N`, " ")
	s = strings.ReplaceAll(s, `\n`, " ")
	s = assTagRe.ReplaceAllString(s, "")
	s = assNumRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// stripBraceGroups removes {...} spans, tracking nesting depth. An
// unmatched closing brace stays literal; an unmatched opening brace
// swallows the rest of the line.
func stripBraceGroups(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			} else {
				b.WriteRune(r)
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
