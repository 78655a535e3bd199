package subtitle

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw file bytes into a UTF-8 string and reports the
// charset it decoded from. Detection failures and unknown charsets fall
// back to passing the bytes through as UTF-8; Decode never fails.
func Decode(data []byte) (string, string) {
	if len(data) == 0 {
		return "", "utf-8"
	}

	name := detectCharset(data)
	if name == "utf-8" {
		if utf8.Valid(data) {
			return stripBOM(string(data)), "utf-8"
		}
		// Detected as ASCII-class but not valid UTF-8; Windows-1252
		// keeps the stray high bytes readable.
		if text, err := decodeWith(data, charmap.Windows1252.NewDecoder()); err == nil {
			return stripBOM(text), "windows-1252"
		}
		return stripBOM(string(data)), "utf-8"
	}

	decoder := decoderFor(name)
	if decoder == nil {
		return stripBOM(string(data)), "utf-8"
	}
	text, err := decodeWith(data, decoder)
	if err != nil {
		return stripBOM(string(data)), "utf-8"
	}
	return stripBOM(text), name
}

// detectCharset names the charset of data, coercing ASCII-class results
// (ascii, ISO-8859-1, windows-1252) to UTF-8 since those detections are
// overwhelmingly plain UTF-8 in practice.
func detectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}

	name := strings.ToLower(result.Charset)
	switch name {
	case "ascii", "utf-8", "iso-8859-1", "windows-1252":
		return "utf-8"
	}
	return name
}

func decoderFor(charset string) transform.Transformer {
	switch charset {
	case "iso-8859-2":
		return charmap.ISO8859_2.NewDecoder()
	case "iso-8859-5":
		return charmap.ISO8859_5.NewDecoder()
	case "iso-8859-6":
		return charmap.ISO8859_6.NewDecoder()
	case "iso-8859-7":
		return charmap.ISO8859_7.NewDecoder()
	case "iso-8859-8", "iso-8859-8-i":
		return charmap.ISO8859_8.NewDecoder()
	case "iso-8859-9":
		return charmap.ISO8859_9.NewDecoder()
	case "windows-1251":
		return charmap.Windows1251.NewDecoder()
	case "windows-1256":
		return charmap.Windows1256.NewDecoder()
	case "koi8-r":
		return charmap.KOI8R.NewDecoder()
	case "shift_jis", "shift-jis":
		return japanese.ShiftJIS.NewDecoder()
	case "euc-jp":
		return japanese.EUCJP.NewDecoder()
	case "iso-2022-jp":
		return japanese.ISO2022JP.NewDecoder()
	case "euc-kr":
		return korean.EUCKR.NewDecoder()
	case "gb-18030", "gb18030", "gbk", "gb2312":
		return simplifiedchinese.GB18030.NewDecoder()
	case "big5":
		return traditionalchinese.Big5.NewDecoder()
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	}
	return nil
}

func decodeWith(data []byte, decoder transform.Transformer) (string, error) {
	reader := transform.NewReader(bytes.NewReader(data), decoder)
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
