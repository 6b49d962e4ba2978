// Package validation checks user-supplied document paths and sniffs the
// content type of corpus documents before they are parsed.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Limits on untrusted input.
const (
	// MaxFileSize is the maximum decoded document size (256 MB).
	MaxFileSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// SniffLength is how many leading bytes DetectFileType inspects.
	SniffLength = 512
)

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrNotDocument      = errors.New("not an XML document")
	ErrTooLarge         = errors.New("document too large")
)

// ValidatePath checks a document path for length limits and characters no
// real file name contains.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}

// FileType is the detected encoding of a corpus document.
type FileType string

const (
	FileTypeXZ      FileType = "xz"
	FileTypeXML     FileType = "xml"
	FileTypeUnknown FileType = "unknown"
)

var (
	xzMagic      = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	utf16LEMagic = []byte{0xff, 0xfe}
	utf16BEMagic = []byte{0xfe, 0xff}
)

// HasUTF16BOM reports whether buf starts with a UTF-16 byte order mark.
func HasUTF16BOM(buf []byte) bool {
	return bytes.HasPrefix(buf, utf16LEMagic) || bytes.HasPrefix(buf, utf16BEMagic)
}

// DetectFileType identifies a document from its leading bytes. Content wins
// over the file name: an xz stream named bible.xml is still FileTypeXZ.
// UTF-16 text is XML when it carries a byte order mark. The name only decides
// the error message for binary content.
func DetectFileType(header []byte, filename string) (FileType, error) {
	if bytes.HasPrefix(header, xzMagic) {
		return FileTypeXZ, nil
	}
	if HasUTF16BOM(header) || isLikelyText(header) {
		return FileTypeXML, nil
	}
	if ext := typeFromExtension(filename); ext != FileTypeUnknown {
		return FileTypeUnknown, fmt.Errorf("%w: extension suggests %s but content is binary", ErrNotDocument, ext)
	}
	return FileTypeUnknown, ErrNotDocument
}

func typeFromExtension(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xz":
		return FileTypeXZ
	case ".xml":
		return FileTypeXML
	}
	return FileTypeUnknown
}

// isLikelyText reports whether buf looks like UTF-8 or ASCII text.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}

	// Null bytes are a strong indicator of binary content
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else if b < 0x20 {
			control++
		}
		// UTF-8 lead and continuation bytes are neutral
	}

	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
