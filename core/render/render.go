// Package render writes lookup results and corpus summaries.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/FocuswithJustin/verse/core/lookup"
)

// Options controls output formatting.
type Options struct {
	// JSON selects structured output. Color and Subscript are ignored.
	JSON bool

	// Subscript prefixes range verses with subscript digits ("₁₆ text")
	// instead of "16: text".
	Subscript bool

	// Color enables terminal styling. Only set it when writing to a TTY.
	Color bool
}

var (
	// Heading style for references and titles
	Heading = lipgloss.NewStyle().Bold(true)

	// Muted style for verse numbers and secondary info
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

func (o Options) style(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

// Write renders r to w.
func Write(w io.Writer, r lookup.Result, opts Options) error {
	if opts.JSON {
		return writeJSON(w, envelope(r))
	}

	var sb strings.Builder
	switch v := r.(type) {
	case *lookup.Single:
		sb.WriteString(opts.style(Heading, v.Reference()))
		sb.WriteString("\n")
		sb.WriteString(v.Content)
		sb.WriteString("\n")
	case *lookup.Range:
		sb.WriteString(opts.style(Heading, v.Book+" "+strconv.Itoa(v.Chapter)))
		sb.WriteString("\n")
		for _, p := range v.Verses {
			if opts.Subscript {
				sb.WriteString(opts.style(Muted, Subscript(p.Number)))
				sb.WriteString(" ")
			} else {
				sb.WriteString(opts.style(Muted, strconv.Itoa(p.Number)+":"))
				sb.WriteString(" ")
			}
			sb.WriteString(p.Content)
			sb.WriteString("\n")
		}
	default:
		return fmt.Errorf("unsupported result type %T", r)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// envelope tags a result with its kind for JSON output.
func envelope(r lookup.Result) any {
	switch v := r.(type) {
	case *lookup.Single:
		return struct {
			Kind string `json:"kind"`
			*lookup.Single
		}{"single", v}
	case *lookup.Range:
		return struct {
			Kind string `json:"kind"`
			*lookup.Range
		}{"range", v}
	}
	return r
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

var subscriptDigits = [10]rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}

// Subscript renders n with Unicode subscript digits, e.g. 16 -> "₁₆".
func Subscript(n int) string {
	var sb strings.Builder
	for _, c := range strconv.Itoa(n) {
		if c >= '0' && c <= '9' {
			sb.WriteRune(subscriptDigits[c-'0'])
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
