// Package testutil builds corpus fixtures for tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

// Book indexes into the fixture returned by BibleXML.
const (
	GenesisIndex       = 0
	MatthewIndex       = 39
	JohnIndex          = 40
	CorinthiansIndex   = 41
	FixtureBookCount   = 42
	GenesisShortVerses = 3
)

// FixtureBook describes one book of a generated fixture.
type FixtureBook struct {
	Name     string
	Abbrev   string
	Chapters []int // verse count per chapter, chapters numbered from 1
}

// FixtureBooks returns the books of the standard fixture: 39 leading books
// followed by Matthew, John and 1 Corinthians.
//
// Genesis has a 3-verse chapter 1 and a 5-verse chapter 2. John 3 has 18
// verses and 1 Corinthians 13 has 13 verses.
func FixtureBooks() []FixtureBook {
	books := make([]FixtureBook, 0, FixtureBookCount)
	books = append(books, FixtureBook{Name: "Genesis", Abbrev: "gn", Chapters: []int{GenesisShortVerses, 5}})
	for i := 2; i <= 39; i++ {
		books = append(books, FixtureBook{
			Name:     fmt.Sprintf("Old Book %d", i),
			Abbrev:   fmt.Sprintf("ot%d", i),
			Chapters: []int{2},
		})
	}
	books = append(books,
		FixtureBook{Name: "Matthew", Abbrev: "mt", Chapters: []int{4, 3}},
		FixtureBook{Name: "John", Abbrev: "jn", Chapters: []int{2, 3, 18}},
		FixtureBook{Name: "1 Corinthians", Abbrev: "1co", Chapters: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 13}},
	)
	return books
}

// VerseText is the content generated for a verse.
func VerseText(book string, chapter, verse int) string {
	return fmt.Sprintf("%s %d:%d text", book, chapter, verse)
}

// BibleXML renders the standard fixture.
func BibleXML() string {
	return RenderXML(FixtureBooks())
}

// RenderXML renders books in the corpus schema.
func RenderXML(books []FixtureBook) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<bible>\n")
	for _, b := range books {
		fmt.Fprintf(&sb, "  <book name=%q abbrev=%q chapters=\"%d\">\n", b.Name, b.Abbrev, len(b.Chapters))
		for c, verses := range b.Chapters {
			fmt.Fprintf(&sb, "    <c n=\"%d\">\n", c+1)
			for v := 1; v <= verses; v++ {
				fmt.Fprintf(&sb, "      <v n=\"%d\">%s</v>\n", v, VerseText(b.Name, c+1, v))
			}
			sb.WriteString("    </c>\n")
		}
		sb.WriteString("  </book>\n")
	}
	sb.WriteString("</bible>\n")
	return sb.String()
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// WriteXZ writes content xz-compressed to dir/name and returns the path.
func WriteXZ(t *testing.T, dir, name, content string) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("failed to create xz writer: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("failed to compress fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close xz writer: %v", err)
	}
	return WriteFile(t, dir, name, buf.String())
}

// WriteBible writes the standard fixture to a temp dir and returns its path.
func WriteBible(t *testing.T) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "bible.xml", BibleXML())
}
