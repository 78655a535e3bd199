package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const sniffLen = 512

// IsBinary reports whether sample looks like binary data: any null byte,
// or fewer than 70% printable bytes.
func IsBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	printable := 0
	for _, b := range sample {
		if b == 0 {
			return true
		}
		if (b >= 32 && b < 127) || b == '\t' || b == '\n' || b == '\r' {
			printable++
		}
	}

	return float64(printable)/float64(len(sample)) < 0.7
}

// IsBinaryFile sniffs the first 512 bytes of the file at path.
func IsBinaryFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		// Empty files read io.EOF with n == 0 and are not binary.
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	return IsBinary(buf[:n]), nil
}

// Discover expands the given paths into a sorted list of regular files.
// Directories contribute their immediate children whose lowercased
// extension is in exts; explicit file paths are kept regardless of
// extension. Hidden files and subdirectories are skipped.
func Discover(paths []string, exts []string) ([]string, error) {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", p, err)
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if allowed[strings.ToLower(filepath.Ext(e.Name()))] {
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

const maxFileNameStem = 200

var nameSanitizer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeFileName replaces characters that are invalid in file names
// with underscores, trims leading/trailing dots and spaces, and caps the
// stem at 200 characters while keeping the extension.
func SanitizeFileName(name string) string {
	name = strings.Trim(nameSanitizer.Replace(name), ". ")

	if i := strings.LastIndex(name, "."); i >= 0 {
		stem, ext := name[:i], name[i:]
		if len(stem) > maxFileNameStem {
			stem = stem[:maxFileNameStem]
		}
		return stem + ext
	}
	if len(name) > maxFileNameStem {
		name = name[:maxFileNameStem]
	}
	return name
}

// OutputPath derives the artifact path for input: the base name with its
// extension replaced by ext, placed in dir (or next to the input when dir
// is empty).
func OutputPath(input, dir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+ext)
}
