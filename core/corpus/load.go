package corpus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"golang.org/x/text/encoding/unicode"

	"github.com/FocuswithJustin/verse/core/errors"
	"github.com/FocuswithJustin/verse/core/xml"
	"github.com/FocuswithJustin/verse/internal/logging"
	"github.com/FocuswithJustin/verse/internal/validation"
)

const format = "XML"

// Element and attribute names of the corpus schema:
//
//	<bible>
//	  <book name="..." abbrev="..." chapters="N">
//	    <c n="1"><v n="1">text</v>...</c>
//	  </book>
//	</bible>
const (
	rootElement = "bible"
	attrName    = "name"
	attrAbbrev  = "abbrev"
	attrCount   = "chapters"
	attrNumber  = "n"
)

var (
	selectBooks    = xml.MustCompile("book")
	selectChapters = xml.MustCompile("c")
	selectVerses   = xml.MustCompile("v")
)

// Load reads the document at path and builds a Corpus. xz-compressed and
// UTF-16 documents are recognized by content and decoded first. Every failure
// is reported as an *errors.LoadError. A book whose declared chapter count
// disagrees with its chapter elements loads anyway and is logged as a warning.
func Load(ctx context.Context, path string) (*Corpus, error) {
	start := time.Now()

	data, err := readSource(path)
	if err != nil {
		return nil, errors.NewLoad(path, err)
	}

	c, err := build(data, path)
	if err != nil {
		return nil, errors.NewLoad(path, err)
	}
	c.Source = path

	for _, b := range c.Books {
		if b.ChapterCount != len(b.Chapters) {
			logging.WarnContext(ctx, "chapter_count_mismatch",
				"path", path,
				"book", b.Name,
				"declared", b.ChapterCount,
				"found", len(b.Chapters),
			)
		}
	}

	logging.DebugContext(ctx, "corpus_loaded",
		"path", path,
		"books", len(c.Books),
		"digest", c.Digest,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c, nil
}

// Parse builds a Corpus from an in-memory document.
func Parse(r io.Reader) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewLoad("", errors.NewIO("read", "", err))
	}
	if validation.HasUTF16BOM(data) {
		if data, err = decodeUTF16(data, ""); err != nil {
			return nil, errors.NewLoad("", err)
		}
	}
	c, err := build(data, "")
	if err != nil {
		return nil, errors.NewLoad("", err)
	}
	return c, nil
}

// Digest returns the hex BLAKE3-256 of data.
func Digest(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

func readSource(path string) ([]byte, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, validation.SniffLength)
	header, err := br.Peek(validation.SniffLength)
	if err != nil && err != io.EOF {
		return nil, errors.NewIO("read", path, err)
	}
	kind, err := validation.DetectFileType(header, path)
	if err != nil {
		return nil, errors.NewParse(format, path, err.Error())
	}

	var r io.Reader = br
	if kind == validation.FileTypeXZ {
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		r = xzr
	}

	data, err := io.ReadAll(io.LimitReader(r, validation.MaxFileSize+1))
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if len(data) > validation.MaxFileSize {
		return nil, errors.NewParse(format, path, validation.ErrTooLarge.Error())
	}
	if validation.HasUTF16BOM(data) {
		return decodeUTF16(data, path)
	}
	return data, nil
}

// utf16Declaration matches a UTF-16 encoding label in the XML declaration.
var utf16Declaration = regexp.MustCompile(`^(\s*<\?xml[^>]*?encoding\s*=\s*["'])(?i:utf-?16(?:le|be)?)(["'])`)

// decodeUTF16 transcodes a BOM-marked UTF-16 document to UTF-8 and relabels
// its declaration to match.
func decodeUTF16(data []byte, path string) ([]byte, error) {
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.NewIO("decode", path, err)
	}
	return utf16Declaration.ReplaceAll(decoded, []byte("${1}UTF-8${2}")), nil
}

func build(data []byte, path string) (*Corpus, error) {
	doc, err := xml.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: format, Path: path, Message: err.Error(), Err: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.NewParse(format, path, "document has no root element")
	}
	if root.Name() != rootElement {
		return nil, errors.NewParse(format, path, fmt.Sprintf("root element must be <%s>, got <%s>", rootElement, root.Name()))
	}

	s := schema{path: path, abbrevs: make(map[string]int)}
	books := root.Select(selectBooks)
	if len(books) == 0 {
		return nil, s.fail("corpus has no <book> elements")
	}

	c := &Corpus{
		Books:  make([]Book, 0, len(books)),
		Digest: Digest(data),
	}
	for i, node := range books {
		b, err := s.book(i, node)
		if err != nil {
			return nil, err
		}
		c.Books = append(c.Books, b)
	}
	return c, nil
}

// schema maps document nodes onto the corpus types, rejecting anything that
// does not match the expected layout.
type schema struct {
	path    string
	abbrevs map[string]int
}

func (s *schema) fail(msg string, args ...any) error {
	return errors.NewParse(format, s.path, fmt.Sprintf(msg, args...))
}

func (s *schema) book(index int, node *xml.Node) (Book, error) {
	name := strings.TrimSpace(node.Attr(attrName))
	if name == "" {
		return Book{}, s.fail("book %d: missing %q attribute", index+1, attrName)
	}
	abbrev := strings.TrimSpace(node.Attr(attrAbbrev))
	if abbrev == "" {
		return Book{}, s.fail("book %q: missing %q attribute", name, attrAbbrev)
	}
	if prev, dup := s.abbrevs[abbrev]; dup {
		return Book{}, s.fail("book %q: abbreviation %q already used by book %d", name, abbrev, prev+1)
	}
	s.abbrevs[abbrev] = index

	nodes := node.Select(selectChapters)
	if len(nodes) == 0 {
		return Book{}, s.fail("book %q has no chapters", name)
	}

	b := Book{
		Name:         name,
		Abbrev:       abbrev,
		ChapterCount: len(nodes),
		Chapters:     make([]Chapter, 0, len(nodes)),
	}
	if raw, ok := node.LookupAttr(attrCount); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return Book{}, s.fail("book %q: %q attribute must be a non-negative integer, got %q", name, attrCount, raw)
		}
		b.ChapterCount = n
	}

	seen := make(map[int]bool, len(nodes))
	for _, cn := range nodes {
		n, err := s.number(cn, "book %q chapter", name)
		if err != nil {
			return Book{}, err
		}
		if seen[n] {
			return Book{}, s.fail("book %q: duplicate chapter %d", name, n)
		}
		seen[n] = true

		ch, err := s.chapter(name, n, cn)
		if err != nil {
			return Book{}, err
		}
		b.Chapters = append(b.Chapters, ch)
	}
	return b, nil
}

func (s *schema) chapter(book string, number int, node *xml.Node) (Chapter, error) {
	nodes := node.Select(selectVerses)
	if len(nodes) == 0 {
		return Chapter{}, s.fail("book %q chapter %d has no verses", book, number)
	}

	ch := Chapter{Number: number, Verses: make([]Verse, 0, len(nodes))}
	seen := make(map[int]bool, len(nodes))
	for _, vn := range nodes {
		n, err := s.number(vn, "book %q chapter %d verse", book, number)
		if err != nil {
			return Chapter{}, err
		}
		if seen[n] {
			return Chapter{}, s.fail("book %q chapter %d: duplicate verse %d", book, number, n)
		}
		seen[n] = true
		ch.Verses = append(ch.Verses, Verse{Number: n, Content: vn.Text()})
	}
	return ch, nil
}

// number reads the positive integer "n" attribute of node. what describes
// the element for error messages.
func (s *schema) number(node *xml.Node, what string, args ...any) (int, error) {
	label := fmt.Sprintf(what, args...)
	raw, ok := node.LookupAttr(attrNumber)
	if !ok {
		return 0, s.fail("%s: missing %q attribute", label, attrNumber)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, s.fail("%s: %q must be a positive integer, got %q", label, attrNumber, raw)
	}
	return n, nil
}
