package summarizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxStripPasses caps the tag-stripping loop. Nesting deeper than this
// is left as-is rather than looping forever.
const maxStripPasses = 6

// tagRules strip reasoning markup in order: paired tags first, then an
// unclosed opening tag swallowing the rest of the text, then dangling
// closing tags on their own.
var tagRules = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<think>.*?</think>`),
	regexp.MustCompile(`(?is)<redacted_reasoning[^>]*>.*?</redacted_reasoning[^>]*>`),
	regexp.MustCompile(`(?is)<redacted_reasoning[^>]*>.*`),
	regexp.MustCompile(`(?is)<thinking\s*[^>]*>.*?</thinking\s*>`),
	regexp.MustCompile(`(?is)<thinking\s*[^>]*>.*`),
	regexp.MustCompile(`(?is)<reasoning\s*[^>]*>.*?</reasoning\s*>`),
	regexp.MustCompile(`(?is)<reasoning\s*[^>]*>.*`),
	regexp.MustCompile(`(?i)</think>`),
	regexp.MustCompile(`(?i)</thinking\s*>`),
	regexp.MustCompile(`(?i)</reasoning\s*>`),
	regexp.MustCompile(`(?i)</redacted_reasoning\s*>`),
}

var (
	commentRe       = regexp.MustCompile(`(?is)<!--\s*thinking.*?-->`)
	thinkingStartRe = regexp.MustCompile(`(?i)^(Okay|Let me|I need to|I should|First|Let's|I'll|I will)\b`)
	placeholderRe   = regexp.MustCompile(`(?i)^\s*(space|thinking|reasoning|\.\.\.|\.)\s*$`)
	blankRunsRe     = regexp.MustCompile(`\n{3,}`)
)

// Sanitize removes reasoning/meta-commentary artifacts from an LLM
// response: thinking-style tags, HTML-comment thinking blocks, lines that
// read like the model planning its answer, and leftover placeholder
// words. Best effort; it never fails, and re-applying to already clean
// text is a no-op.
func Sanitize(text string) string {
	for pass := 0; pass < maxStripPasses; pass++ {
		before := text
		for _, re := range tagRules {
			text = re.ReplaceAllString(text, "")
		}
		if text == before {
			break
		}
	}

	text = commentRe.ReplaceAllString(text, "")
	text = filterThinkingLines(text)
	text = dropPlaceholderLines(text)
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// filterThinkingLines suppresses lines opening with first-person planning
// phrases unless the line itself mentions the summary or conclusion.
// Suppression carries over following lines until something that looks
// like real content appears: a heading or emphasis marker, or a line
// longer than 50 characters.
func filterThinkingLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	skipping := false

	for _, line := range lines {
		if thinkingStartRe.MatchString(line) {
			lower := strings.ToLower(line)
			if !strings.Contains(lower, "summary") && !strings.Contains(lower, "conclusion") {
				skipping = true
				continue
			}
		}

		trimmed := strings.TrimSpace(line)
		if skipping && (strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "**") ||
			utf8.RuneCountInString(trimmed) > 50) {
			skipping = false
		}

		if !skipping {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func dropPlaceholderLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if placeholderRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
