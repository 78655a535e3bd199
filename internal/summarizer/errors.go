package summarizer

import "fmt"

// ProviderError wraps any failure raised by the LLM provider while
// generating a summary.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("generate summary: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ContentTooLongError rejects input above the configured maximum. It is
// a policy rejection raised before any provider call, not a parse failure.
type ContentTooLongError struct {
	Length int
	Limit  int
	File   string
}

func (e *ContentTooLongError) Error() string {
	msg := fmt.Sprintf("content too long: %d characters exceeds maximum limit of %d characters", e.Length, e.Limit)
	if e.File != "" {
		return fmt.Sprintf("file %q: %s", e.File, msg)
	}
	return msg
}
