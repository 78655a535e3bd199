package subtitle

import (
	"strings"

	"github.com/asticode/go-astisub"
)

func parseVTT(text string) []Entry {
	if entries := parseVTTLibrary(text); len(entries) > 0 {
		return entries
	}
	return parseVTTManual(text)
}

func parseVTTLibrary(text string) []Entry {
	subs, err := astisub.ReadFromWebVTT(strings.NewReader(text))
	if err != nil {
		return nil
	}
	return fromAstisub(subs, vttTimestamp)
}

// parseVTTManual scans cue blocks line by line, skipping the WEBVTT
// header and NOTE blocks. Cue text runs until a blank line or the next
// timecode line.
func parseVTTManual(text string) []Entry {
	lines := strings.Split(text, "\n")

	var entries []Entry
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" || isVTTHeader(line) {
			i++
			continue
		}

		if !strings.Contains(line, " --> ") {
			// Cue identifier or stray metadata.
			i++
			continue
		}

		start, end := splitVTTTimecode(line)
		i++

		var texts []string
		for i < len(lines) {
			t := strings.TrimSpace(lines[i])
			if t == "" || strings.Contains(t, " --> ") {
				break
			}
			texts = append(texts, t)
			i++
		}

		joined := strings.Join(texts, " ")
		if joined == "" {
			continue
		}
		entries = append(entries, Entry{
			Text:      joined,
			StartTime: start,
			EndTime:   end,
		})
	}
	return entries
}

func isVTTHeader(line string) bool {
	return line == "WEBVTT" ||
		strings.HasPrefix(line, "WEBVTT ") ||
		strings.HasPrefix(line, "NOTE") ||
		strings.HasPrefix(line, "STYLE") ||
		strings.HasPrefix(line, "REGION")
}

// splitVTTTimecode splits "start --> end settings" and drops any cue
// settings trailing the end timestamp.
func splitVTTTimecode(line string) (string, string) {
	parts := strings.SplitN(line, " --> ", 2)
	start := strings.TrimSpace(parts[0])
	end := ""
	if len(parts) == 2 {
		if fields := strings.Fields(parts[1]); len(fields) > 0 {
			end = fields[0]
		}
	}
	return start, end
}
