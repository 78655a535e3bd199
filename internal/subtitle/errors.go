package subtitle

import "fmt"

type ErrorKind int

const (
	// KindBinary marks binary content behind a subtitle extension.
	KindBinary ErrorKind = iota
	// KindUnsupported marks binary content behind an unknown extension.
	KindUnsupported
	// KindCorrupt marks non-empty content that yields no entries.
	KindCorrupt
	// KindEmpty marks files with no extractable text at all.
	KindEmpty
)

func (k ErrorKind) String() string {
	switch k {
	case KindBinary:
		return "binary content"
	case KindUnsupported:
		return "unsupported format"
	case KindCorrupt:
		return "corrupt structure"
	case KindEmpty:
		return "empty content"
	}
	return "parse failure"
}

// ParseError reports why a file could not be turned into a Document.
type ParseError struct {
	Path   string
	Kind   ErrorKind
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("parse %s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("parse %s: %s: %s", e.Path, e.Kind, e.Reason)
}
