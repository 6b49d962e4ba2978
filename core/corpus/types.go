// Package corpus holds the in-memory scripture tree and the loader that
// builds it from an XML document.
//
// A Corpus is built once and never mutated afterwards; every accessor
// returns values or read-only views into the tree.
package corpus

// OldTestamentBooks is the number of leading books, in canonical order, that
// form the first testament. The split is positional and does not depend on
// any book attribute.
const OldTestamentBooks = 39

// Testament selects a positional partition of the book list.
type Testament int

const (
	// AllBooks is the entire corpus.
	AllBooks Testament = iota
	// OldTestament is the first OldTestamentBooks books.
	OldTestament
	// NewTestament is every book after the first OldTestamentBooks.
	NewTestament
)

func (t Testament) String() string {
	switch t {
	case OldTestament:
		return "old"
	case NewTestament:
		return "new"
	default:
		return "all"
	}
}

// Corpus is the root of a loaded document.
type Corpus struct {
	// Books in canonical order.
	Books []Book `json:"books"`

	// Source is the path the corpus was loaded from, if any.
	Source string `json:"source,omitempty"`

	// Digest is the hex BLAKE3-256 of the (decompressed) document bytes.
	Digest string `json:"digest,omitempty"`
}

// Book is a single book of the corpus.
type Book struct {
	// Name is the display name in the language of the source.
	Name string `json:"name"`

	// Abbrev is the short identifier, unique within the corpus.
	Abbrev string `json:"abbrev"`

	// ChapterCount is the declared chapter count. It falls back to
	// len(Chapters) when the source does not declare one.
	ChapterCount int `json:"chapters"`

	Chapters []Chapter `json:"-"`
}

// Chapter is a numbered chapter of a book.
type Chapter struct {
	Number int     `json:"number"`
	Verses []Verse `json:"verses"`
}

// Verse is a numbered verse with its text.
type Verse struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Partition returns the books of the given testament. Short corpora yield an
// empty partition instead of panicking.
func (c *Corpus) Partition(t Testament) []Book {
	split := min(OldTestamentBooks, len(c.Books))
	switch t {
	case OldTestament:
		return c.Books[:split]
	case NewTestament:
		return c.Books[split:]
	default:
		return c.Books
	}
}

// TestamentOf reports the testament of the book at index i.
func (c *Corpus) TestamentOf(i int) Testament {
	if i < OldTestamentBooks {
		return OldTestament
	}
	return NewTestament
}

// BookByName returns the first book whose display name equals name exactly.
func (c *Corpus) BookByName(name string) (*Book, bool) {
	for i := range c.Books {
		if c.Books[i].Name == name {
			return &c.Books[i], true
		}
	}
	return nil, false
}

// BookByAbbrev returns the first book whose abbreviation equals abbrev exactly.
func (c *Corpus) BookByAbbrev(abbrev string) (*Book, bool) {
	for i := range c.Books {
		if c.Books[i].Abbrev == abbrev {
			return &c.Books[i], true
		}
	}
	return nil, false
}

// Stats summarizes the size of the corpus.
type Stats struct {
	Books        int `json:"books"`
	OldTestament int `json:"old_testament"`
	NewTestament int `json:"new_testament"`
	Chapters     int `json:"chapters"`
	Verses       int `json:"verses"`
}

// Stats counts books, chapters and verses.
func (c *Corpus) Stats() Stats {
	s := Stats{
		Books:        len(c.Books),
		OldTestament: len(c.Partition(OldTestament)),
		NewTestament: len(c.Partition(NewTestament)),
	}
	for _, b := range c.Books {
		s.Chapters += len(b.Chapters)
		for _, ch := range b.Chapters {
			s.Verses += len(ch.Verses)
		}
	}
	return s
}

// Chapter returns the first chapter numbered n.
func (b *Book) Chapter(n int) (*Chapter, bool) {
	for i := range b.Chapters {
		if b.Chapters[i].Number == n {
			return &b.Chapters[i], true
		}
	}
	return nil, false
}
