package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/caption-digest/pkg/fileutil"
)

// Extensions lists the file extensions handled by format-aware parsers.
var Extensions = []string{".srt", ".vtt", ".ass", ".ssa", ".txt"}

// Options controls parsing behavior.
type Options struct {
	// ForceText routes the file through the plain-text parser
	// regardless of extension or the binary sniff.
	ForceText bool
}

// ParseFile reads and parses the subtitle or transcript file at path.
func ParseFile(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, data, opts)
}

// Parse turns raw file bytes into a Document. The parser is chosen by
// lowercased extension; unknown extensions use the plain-text parser when
// the content passes the binary sniff.
func Parse(path string, data []byte, opts Options) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	known := false
	for _, e := range Extensions {
		if ext == e {
			known = true
			break
		}
	}

	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	if fileutil.IsBinary(sample) && !opts.ForceText {
		kind := KindBinary
		if !known {
			kind = KindUnsupported
		}
		return nil, &ParseError{Path: path, Kind: kind}
	}

	text, enc := Decode(data)
	text = normalizeNewlines(text)

	var entries []Entry
	switch {
	case opts.ForceText:
		entries = parseText(text)
	case ext == ".srt":
		entries = parseSRT(text)
	case ext == ".vtt":
		entries = parseVTT(text)
	case ext == ".ass", ext == ".ssa":
		entries = parseASS(text)
	default:
		entries = parseText(text)
	}

	if len(entries) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil, &ParseError{Path: path, Kind: KindEmpty, Reason: "no text content"}
		}
		return nil, &ParseError{Path: path, Kind: KindCorrupt, Reason: "no subtitle entries found"}
	}

	return &Document{Path: path, Encoding: enc, Entries: entries}, nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
