package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/FocuswithJustin/verse/core/corpus"
)

type bookEntry struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Abbrev    string `json:"abbrev"`
	Chapters  int    `json:"chapters"`
	Testament string `json:"testament"`
}

// WriteBooks lists the books of c in canonical order, restricted to the
// given testament.
func WriteBooks(w io.Writer, c *corpus.Corpus, t corpus.Testament, opts Options) error {
	offset := 0
	if t == corpus.NewTestament {
		offset = len(c.Partition(corpus.OldTestament))
	}

	books := c.Partition(t)
	entries := make([]bookEntry, len(books))
	for i, b := range books {
		entries[i] = bookEntry{
			Index:     offset + i + 1,
			Name:      b.Name,
			Abbrev:    b.Abbrev,
			Chapters:  b.ChapterCount,
			Testament: c.TestamentOf(offset + i).String(),
		}
	}

	if opts.JSON {
		return writeJSON(w, entries)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tABBREV\tNAME\tCHAPTERS\tTESTAMENT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", e.Index, e.Abbrev, e.Name, e.Chapters, e.Testament)
	}
	return tw.Flush()
}

type info struct {
	Source string `json:"source,omitempty"`
	Digest string `json:"digest"`
	corpus.Stats
}

// WriteInfo summarizes c: where it came from, its digest and its size.
func WriteInfo(w io.Writer, c *corpus.Corpus, opts Options) error {
	in := info{Source: c.Source, Digest: c.Digest, Stats: c.Stats()}
	if opts.JSON {
		return writeJSON(w, in)
	}

	fmt.Fprintln(w, opts.style(Heading, "Corpus Summary"))
	fmt.Fprintln(w, "--------------")
	if in.Source != "" {
		fmt.Fprintf(w, "  Source:        %s\n", in.Source)
	}
	fmt.Fprintf(w, "  BLAKE3:        %s\n", in.Digest)
	fmt.Fprintf(w, "  Books:         %d\n", in.Books)
	fmt.Fprintf(w, "  Old Testament: %d\n", in.OldTestament)
	fmt.Fprintf(w, "  New Testament: %d\n", in.NewTestament)
	fmt.Fprintf(w, "  Chapters:      %d\n", in.Chapters)
	_, err := fmt.Fprintf(w, "  Verses:        %d\n", in.Verses)
	return err
}
