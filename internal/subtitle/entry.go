package subtitle

// Entry is one timed unit of dialogue. Timestamps are kept as the opaque
// strings found in the source file; either may be empty. Entries are
// immutable once parsed.
type Entry struct {
	Text      string
	StartTime string
	EndTime   string
	Speaker   string
}

// Document is the parsed form of one subtitle or transcript file.
type Document struct {
	Path     string
	Encoding string
	Entries  []Entry
}
