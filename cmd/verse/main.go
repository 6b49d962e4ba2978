// Command verse looks up Bible verses in an XML corpus document.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/FocuswithJustin/verse/core/corpus"
	"github.com/FocuswithJustin/verse/core/render"
	"github.com/FocuswithJustin/verse/internal/config"
	"github.com/FocuswithJustin/verse/internal/logging"
)

const version = "1.0.0"

// Globals are flags shared by every command.
type Globals struct {
	FilePath  string          `name:"file-path" short:"f" env:"VERSE_FILE" help:"Bible XML document (.xml or .xml.xz)" type:"path"`
	JSON      bool            `name:"json" help:"Write results as JSON"`
	Subscript bool            `name:"subscript" help:"Number range verses with subscript digits"`
	LogLevel  string          `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Log level (${enum})"`
	LogFormat string          `name:"log-format" enum:"text,json" default:"text" help:"Log format (${enum})"`
	Config    kong.ConfigFlag `name:"config" help:"Configuration file"`
}

// CLI defines the command-line interface for verse.
type CLI struct {
	Globals

	Lookup  LookupCmd  `cmd:"" default:"withargs" help:"Look up a verse or verse range (default)"`
	Random  RandomCmd  `cmd:"" help:"Print a random verse or block of verses"`
	Books   BooksCmd   `cmd:"" help:"List the books of the document"`
	Info    InfoCmd    `cmd:"" help:"Summarize the document"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// session carries per-invocation state into command Run methods.
type session struct {
	ctx     context.Context
	globals *Globals
	opts    render.Options
	out     bytes.Buffer
}

// corpus loads the document named by --file-path, VERSE_FILE or the
// configuration file.
func (s *session) corpus() (*corpus.Corpus, error) {
	if s.globals.FilePath == "" {
		return nil, errMissingFile
	}
	return corpus.Load(s.ctx, s.globals.FilePath)
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("verse"),
		kong.Description("Look up Bible verses by locator or at random"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(config.Loader, config.DefaultPaths...),
	}
}

// run parses args, executes the selected command and returns the exit code.
// Output is buffered and written to stdout only when the command succeeds.
func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli, append(options(), kong.Writers(stdout, stderr))...)
	if err != nil {
		fmt.Fprintf(stderr, "verse: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "verse: %v\n", err)
		var perr *kong.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(stderr, "run 'verse --help' for usage")
		}
		return 1
	}

	logging.Init(stderr, logging.ParseLevel(cli.LogLevel), logging.ParseFormat(cli.LogFormat))
	s := &session{
		ctx:     logging.WithInvocationID(context.Background(), logging.NewInvocationID()),
		globals: &cli.Globals,
		opts: render.Options{
			JSON:      cli.JSON,
			Subscript: cli.Subscript,
			Color:     colorEnabled(stdout),
		},
	}

	command := kctx.Command()
	start := time.Now()
	logging.CommandStart(s.ctx, command, "file", cli.FilePath)
	err = kctx.Run(s)
	logging.CommandDone(s.ctx, command, time.Since(start), err)
	if err != nil {
		fmt.Fprintf(stderr, "verse: %v\n", err)
		return 1
	}

	if _, err := s.out.WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "verse: %v\n", err)
		return 1
	}
	return 0
}

// colorEnabled reports whether w is a terminal that should receive styled
// output. NO_COLOR disables styling.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
