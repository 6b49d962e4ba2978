// Package lookup resolves locators against a loaded corpus.
package lookup

import (
	"math/rand/v2"
	"strconv"

	"github.com/FocuswithJustin/verse/core/corpus"
	"github.com/FocuswithJustin/verse/core/errors"
	"github.com/FocuswithJustin/verse/core/locator"
)

// Result is either a *Single or a *Range.
type Result interface {
	// Reference is the human-readable location, e.g. "John 3:16" or
	// "1 Corinthians 13:4-7".
	Reference() string

	result()
}

// Single is a result holding exactly one verse.
type Single struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Content string `json:"content"`
}

// Passage is one verse of a Range.
type Passage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Range is a result holding two or more verses in ascending order.
type Range struct {
	Book    string    `json:"book"`
	Chapter int       `json:"chapter"`
	Verses  []Passage `json:"verses"`
}

func (*Single) result() {}
func (*Range) result()  {}

// Reference renders "Book chapter:verse".
func (s *Single) Reference() string {
	return s.Book + " " + strconv.Itoa(s.Chapter) + ":" + strconv.Itoa(s.Verse)
}

// Reference renders "Book chapter:first-last", or "Book chapter" for a
// range without verses.
func (r *Range) Reference() string {
	ref := r.Book + " " + strconv.Itoa(r.Chapter)
	if n := len(r.Verses); n > 0 {
		ref += ":" + strconv.Itoa(r.Verses[0].Number) + "-" + strconv.Itoa(r.Verses[n-1].Number)
	}
	return ref
}

// Resolve looks up loc, matching the book by the field loc was parsed with.
func Resolve(c *corpus.Corpus, loc locator.Locator) (Result, error) {
	if loc.Field == locator.ByAbbrev {
		return ByAbbreviation(c, loc.Book, loc.Chapter, loc.Verses)
	}
	return ByName(c, loc.Book, loc.Chapter, loc.Verses)
}

// ByName finds the first book whose display name is exactly name and returns
// the verses of chapter selected by sel.
func ByName(c *corpus.Corpus, name string, chapter int, sel locator.Selector) (Result, error) {
	book, ok := c.BookByName(name)
	if !ok {
		return nil, errors.NewNotFound("book", name)
	}
	return inChapter(book, chapter, sel)
}

// ByAbbreviation is ByName matching the book's abbreviation instead.
func ByAbbreviation(c *corpus.Corpus, abbrev string, chapter int, sel locator.Selector) (Result, error) {
	book, ok := c.BookByAbbrev(abbrev)
	if !ok {
		return nil, errors.NewNotFound("book", abbrev)
	}
	return inChapter(book, chapter, sel)
}

func inChapter(book *corpus.Book, chapter int, sel locator.Selector) (Result, error) {
	ch, ok := book.Chapter(chapter)
	if !ok {
		return nil, errors.NewNotFound("chapter", book.Name+" "+strconv.Itoa(chapter))
	}

	var verses []corpus.Verse
	for _, v := range ch.Verses {
		if sel.Contains(v.Number) {
			verses = append(verses, v)
		}
	}
	if len(verses) == 0 {
		return nil, errors.NewNotFound("verse", book.Name+" "+strconv.Itoa(chapter)+":"+sel.String())
	}
	return newResult(book.Name, ch.Number, verses), nil
}

// newResult returns a Single for one verse and a Range otherwise.
func newResult(book string, chapter int, verses []corpus.Verse) Result {
	if len(verses) == 1 {
		return &Single{
			Book:    book,
			Chapter: chapter,
			Verse:   verses[0].Number,
			Content: verses[0].Content,
		}
	}
	r := &Range{
		Book:    book,
		Chapter: chapter,
		Verses:  make([]Passage, len(verses)),
	}
	for i, v := range verses {
		r.Verses[i] = Passage{Number: v.Number, Content: v.Content}
	}
	return r
}

// Random picks a book uniformly from the testament partition, a chapter
// uniformly from that book, and returns up to count consecutive verses from
// it. The block starts at a uniformly random verse of the chapter and is cut
// at the chapter's last verse, never padded or wrapped. A chapter with no
// more than count verses is returned whole.
func Random(c *corpus.Corpus, testament corpus.Testament, count int, rng *rand.Rand) (Result, error) {
	if count < 1 {
		return nil, errors.NewValidation("verse-count", "must be at least 1, got "+strconv.Itoa(count))
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	books := c.Partition(testament)
	if len(books) == 0 {
		return nil, errors.NewNotFound("book", testament.String()+" testament")
	}
	book := &books[rng.IntN(len(books))]
	if len(book.Chapters) == 0 {
		return nil, errors.NewNotFound("chapter", book.Name)
	}
	ch := &book.Chapters[rng.IntN(len(book.Chapters))]
	if len(ch.Verses) == 0 {
		return nil, errors.NewNotFound("verse", book.Name+" "+strconv.Itoa(ch.Number))
	}

	start := 0
	if len(ch.Verses) > count {
		start = rng.IntN(len(ch.Verses))
	}
	end := min(start+count, len(ch.Verses))
	return newResult(book.Name, ch.Number, ch.Verses[start:end]), nil
}
