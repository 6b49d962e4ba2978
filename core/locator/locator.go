// Package locator parses verse locators.
//
// Two input shapes are accepted and produce the same Locator:
//
//   - compact: "jn:3:16", "1co:13:4-7" (abbreviation:chapter:verses, split
//     on colons; the abbreviation is any non-empty text)
//   - explicit: book name, chapter number and verse spec given separately
//
// A verse spec is either a single verse number ("16") or an inclusive
// range ("16-18").
package locator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/verse/core/errors"
)

// BookField tells the resolver which book attribute to match.
type BookField int

const (
	// ByName matches the book's display name.
	ByName BookField = iota
	// ByAbbrev matches the book's abbreviation.
	ByAbbrev
)

func (f BookField) String() string {
	if f == ByAbbrev {
		return "abbreviation"
	}
	return "name"
}

// Selector picks verses within a chapter: either Single(n) or Range(start, end).
type Selector struct {
	start, end int
	isRange    bool
}

// Single selects verse n.
func Single(n int) Selector {
	return Selector{start: n, end: n}
}

// Range selects verses start..end inclusive.
func Range(start, end int) Selector {
	return Selector{start: start, end: end, isRange: true}
}

// IsRange reports whether s was built with Range.
func (s Selector) IsRange() bool { return s.isRange }

// Start is the first verse selected.
func (s Selector) Start() int { return s.start }

// End is the last verse selected. For Single it equals Start.
func (s Selector) End() int { return s.end }

// Contains reports whether verse n is selected.
func (s Selector) Contains(n int) bool {
	return n >= s.start && n <= s.end
}

func (s Selector) String() string {
	if s.isRange {
		return strconv.Itoa(s.start) + "-" + strconv.Itoa(s.end)
	}
	return strconv.Itoa(s.start)
}

// Locator is a structured reference to verses of one chapter.
type Locator struct {
	Book    string
	Field   BookField
	Chapter int
	Verses  Selector
}

// String renders the locator in the shape it was given.
func (l Locator) String() string {
	if l.Field == ByAbbrev {
		return fmt.Sprintf("%s:%d:%s", l.Book, l.Chapter, l.Verses)
	}
	return fmt.Sprintf("%s %d:%s", l.Book, l.Chapter, l.Verses)
}

// verseSpec is the participle grammar for "n" and "n-m".
//
//nolint:govet // participle grammar tags are not standard struct tags
type verseSpec struct {
	Start int  `@Int`
	End   *int `( "-" @Int )?`
}

// chapterVerses is the participle grammar for the "chapter:verses" tail of a
// compact locator.
//
//nolint:govet // participle grammar tags are not standard struct tags
type chapterVerses struct {
	Chapter int        `@Int ":"`
	Verses  *verseSpec `@@`
}

// numberLexer has no whitespace rule: blanks inside a chapter or verse spec
// are a lexing error.
var numberLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[:\-]`},
})

var (
	chapterParser = participle.MustBuild[chapterVerses](participle.Lexer(numberLexer))
	specParser    = participle.MustBuild[verseSpec](participle.Lexer(numberLexer))
)

// ParseVerseSpec parses "n" or "start-end". Both numbers must be positive.
// Surrounding blanks are trimmed; blanks around the '-' are an error. A range
// with start > end is accepted and simply selects nothing.
func ParseVerseSpec(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}, errors.NewLocator(s, "empty verse spec")
	}
	if strings.Count(s, "-") > 1 {
		return Selector{}, errors.NewLocator(s, "verse range must have exactly one '-'")
	}

	parsed, err := specParser.ParseString("", s)
	if err != nil {
		return Selector{}, &errors.LocatorError{Input: s, Message: "verse spec must be N or N-M", Err: err}
	}
	sel, err := parsed.selector()
	if err != nil {
		return Selector{}, errors.NewLocator(s, err.Error())
	}
	return sel, nil
}

func (v *verseSpec) selector() (Selector, error) {
	if v.Start < 1 {
		return Selector{}, fmt.Errorf("verse must be a positive integer, got %d", v.Start)
	}
	if v.End == nil {
		return Single(v.Start), nil
	}
	if *v.End < 1 {
		return Selector{}, fmt.Errorf("range end must be a positive integer, got %d", *v.End)
	}
	return Range(v.Start, *v.End), nil
}

// ParseCompact parses "book:chapter:verses", e.g. "jn:3:16" or "1co:13:4-7".
// The book is everything before the first colon, taken verbatim; it may hold
// digits or spaces but must not be empty.
func ParseCompact(s string) (Locator, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Locator{}, errors.NewLocator(s, fmt.Sprintf("expected book:chapter:verses, got %d part(s)", len(parts)))
	}
	book := parts[0]
	if book == "" {
		return Locator{}, errors.NewLocator(s, "book abbreviation must not be empty")
	}
	if strings.Count(parts[2], "-") > 1 {
		return Locator{}, errors.NewLocator(s, "verse range must have exactly one '-'")
	}

	parsed, err := chapterParser.ParseString("", parts[1]+":"+parts[2])
	if err != nil {
		return Locator{}, &errors.LocatorError{Input: s, Message: "expected book:chapter:verses with a positive chapter", Err: err}
	}
	if parsed.Chapter < 1 {
		return Locator{}, errors.NewLocator(s, fmt.Sprintf("chapter must be a positive integer, got %d", parsed.Chapter))
	}
	sel, err := parsed.Verses.selector()
	if err != nil {
		return Locator{}, errors.NewLocator(s, err.Error())
	}

	return Locator{
		Book:    book,
		Field:   ByAbbrev,
		Chapter: parsed.Chapter,
		Verses:  sel,
	}, nil
}

// Explicit builds a Locator from a book name, chapter and verse spec given
// as separate arguments.
func Explicit(book string, chapter int, verses string) (Locator, error) {
	if strings.TrimSpace(book) == "" {
		return Locator{}, errors.NewLocator(book, "book name must not be empty")
	}
	if chapter < 1 {
		return Locator{}, errors.NewLocator(strconv.Itoa(chapter), "chapter must be a positive integer")
	}
	sel, err := ParseVerseSpec(verses)
	if err != nil {
		return Locator{}, err
	}
	return Locator{
		Book:    book,
		Field:   ByName,
		Chapter: chapter,
		Verses:  sel,
	}, nil
}
