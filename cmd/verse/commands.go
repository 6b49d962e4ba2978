package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/FocuswithJustin/verse/core/corpus"
	"github.com/FocuswithJustin/verse/core/errors"
	"github.com/FocuswithJustin/verse/core/locator"
	"github.com/FocuswithJustin/verse/core/lookup"
	"github.com/FocuswithJustin/verse/core/render"
	"github.com/FocuswithJustin/verse/internal/logging"
)

var errMissingFile = errors.NewMissing("--file-path", "pass it, set VERSE_FILE, or set file_path in the configuration file")

// LookupCmd resolves a compact or explicit locator.
type LookupCmd struct {
	Abbreviation string `short:"a" help:"Compact locator abbrev:chapter:verses, e.g. jn:3:16 or 1co:13:4-7"`
	Book         string `short:"b" help:"Book name, e.g. \"1 Corinthians\""`
	Chapter      int    `short:"c" help:"Chapter number"`
	Verses       string `short:"v" help:"Verse or inclusive verse range, e.g. 16 or 4-7"`
}

// locator validates the flag combination and parses it.
func (c *LookupCmd) locator() (locator.Locator, error) {
	var explicit []string
	if c.Book != "" {
		explicit = append(explicit, "--book")
	}
	if c.Chapter != 0 {
		explicit = append(explicit, "--chapter")
	}
	if c.Verses != "" {
		explicit = append(explicit, "--verses")
	}

	if c.Abbreviation != "" {
		if len(explicit) > 0 {
			return locator.Locator{}, errors.NewConflict(append([]string{"--abbreviation"}, explicit...)...)
		}
		return locator.ParseCompact(c.Abbreviation)
	}

	switch {
	case len(explicit) == 0:
		return locator.Locator{}, errors.NewMissing("locator", "pass --abbreviation, or --book, --chapter and --verses")
	case c.Book == "":
		return locator.Locator{}, errors.NewMissing("--book", "explicit lookups need --book, --chapter and --verses")
	case c.Chapter == 0:
		return locator.Locator{}, errors.NewMissing("--chapter", "explicit lookups need --book, --chapter and --verses")
	case c.Verses == "":
		return locator.Locator{}, errors.NewMissing("--verses", "explicit lookups need --book, --chapter and --verses")
	}
	return locator.Explicit(c.Book, c.Chapter, c.Verses)
}

func (c *LookupCmd) Run(s *session) error {
	loc, err := c.locator()
	if err != nil {
		return err
	}
	bible, err := s.corpus()
	if err != nil {
		return err
	}
	logging.DebugContext(s.ctx, "lookup", "locator", loc.String(), "field", loc.Field.String())

	res, err := lookup.Resolve(bible, loc)
	if err != nil {
		return err
	}
	return render.Write(&s.out, res, s.opts)
}

// TestamentFlags restricts a command to one testament.
type TestamentFlags struct {
	NewTestamentOnly bool `name:"new-testament-only" short:"n" help:"Only books of the New Testament"`
	OldTestamentOnly bool `name:"old-testament-only" short:"o" help:"Only books of the Old Testament"`
}

func (f TestamentFlags) testament() (corpus.Testament, error) {
	switch {
	case f.NewTestamentOnly && f.OldTestamentOnly:
		return corpus.AllBooks, errors.NewConflict("--new-testament-only", "--old-testament-only")
	case f.NewTestamentOnly:
		return corpus.NewTestament, nil
	case f.OldTestamentOnly:
		return corpus.OldTestament, nil
	}
	return corpus.AllBooks, nil
}

// RandomCmd prints a random verse or block of consecutive verses.
type RandomCmd struct {
	TestamentFlags

	VerseCount int    `name:"verse-count" short:"c" default:"1" help:"Number of consecutive verses"`
	Seed       uint64 `name:"seed" help:"Seed for a reproducible pick (0 picks one at random)"`
}

func (c *RandomCmd) Run(s *session) error {
	testament, err := c.testament()
	if err != nil {
		return err
	}
	if c.VerseCount < 1 {
		return errors.NewValidation("--verse-count", fmt.Sprintf("must be at least 1, got %d", c.VerseCount))
	}
	bible, err := s.corpus()
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if c.Seed != 0 {
		rng = rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	}
	logging.DebugContext(s.ctx, "random", "testament", testament.String(), "count", c.VerseCount, "seed", c.Seed)

	res, err := lookup.Random(bible, testament, c.VerseCount, rng)
	if err != nil {
		return err
	}
	return render.Write(&s.out, res, s.opts)
}

// BooksCmd lists the books of the document in canonical order.
type BooksCmd struct {
	TestamentFlags
}

func (c *BooksCmd) Run(s *session) error {
	testament, err := c.testament()
	if err != nil {
		return err
	}
	bible, err := s.corpus()
	if err != nil {
		return err
	}
	return render.WriteBooks(&s.out, bible, testament, s.opts)
}

// InfoCmd summarizes the document.
type InfoCmd struct{}

func (c *InfoCmd) Run(s *session) error {
	bible, err := s.corpus()
	if err != nil {
		return err
	}
	return render.WriteInfo(&s.out, bible, s.opts)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(s *session) error {
	fmt.Fprintf(&s.out, "verse version %s\n", version)
	return nil
}
