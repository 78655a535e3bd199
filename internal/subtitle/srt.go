package subtitle

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

func parseSRT(text string) []Entry {
	if entries := parseSRTLibrary(text); len(entries) > 0 {
		return entries
	}
	return parseSRTManual(text)
}

func parseSRTLibrary(text string) []Entry {
	subs, err := astisub.ReadFromSRT(strings.NewReader(text))
	if err != nil {
		return nil
	}
	return fromAstisub(subs, srtTimestamp)
}

var srtTimecodeRe = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})`)

// parseSRTManual walks index / timecode / text blocks separated by blank
// lines. Used when the library parse rejects the file outright.
func parseSRTManual(text string) []Entry {
	var entries []Entry
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		i := 0
		if isCueIndex(strings.TrimSpace(lines[i])) {
			i++
		}
		if i >= len(lines) {
			continue
		}

		m := srtTimecodeRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		i++

		var texts []string
		for ; i < len(lines); i++ {
			if t := strings.TrimSpace(lines[i]); t != "" {
				texts = append(texts, t)
			}
		}
		joined := strings.Join(texts, " ")
		if joined == "" {
			continue
		}

		entries = append(entries, Entry{
			Text:      joined,
			StartTime: m[1],
			EndTime:   m[2],
		})
	}
	return entries
}

func isCueIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// fromAstisub converts library items into entries, formatting durations
// back into the timestamp style of the source format.
func fromAstisub(subs *astisub.Subtitles, formatTS func(time.Duration) string) []Entry {
	var entries []Entry
	for _, item := range subs.Items {
		text := strings.TrimSpace(item.String())
		if text == "" {
			continue
		}

		e := Entry{
			Text:      text,
			StartTime: formatTS(item.StartAt),
			EndTime:   formatTS(item.EndAt),
		}
		for _, line := range item.Lines {
			if line.VoiceName != "" {
				e.Speaker = line.VoiceName
				break
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func srtTimestamp(d time.Duration) string { return formatTimestamp(d, ",") }
func vttTimestamp(d time.Duration) string { return formatTimestamp(d, ".") }

func formatTimestamp(d time.Duration, msSep string) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	ms := (d - s*time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, msSep, ms)
}
