package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/FocuswithJustin/verse/internal/testutil"
)

// runCLI executes the command line and returns exit code, stdout and stderr.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// unsetFileEnv clears VERSE_FILE for the duration of the test.
func unsetFileEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VERSE_FILE", "")
	os.Unsetenv("VERSE_FILE")
}

func TestLookup(t *testing.T) {
	path := testutil.WriteBible(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "compact single",
			args: []string{"-f", path, "-a", "jn:3:16"},
			want: "John 3:16\n" + testutil.VerseText("John", 3, 16) + "\n",
		},
		{
			name: "compact range",
			args: []string{"-f", path, "lookup", "--abbreviation", "1co:13:4-7"},
			want: "1 Corinthians 13\n" +
				"4: " + testutil.VerseText("1 Corinthians", 13, 4) + "\n" +
				"5: " + testutil.VerseText("1 Corinthians", 13, 5) + "\n" +
				"6: " + testutil.VerseText("1 Corinthians", 13, 6) + "\n" +
				"7: " + testutil.VerseText("1 Corinthians", 13, 7) + "\n",
		},
		{
			name: "explicit single",
			args: []string{"--file-path", path, "-b", "John", "-c", "3", "-v", "16"},
			want: "John 3:16\n" + testutil.VerseText("John", 3, 16) + "\n",
		},
		{
			name: "explicit range with subscript",
			args: []string{"-f", path, "--subscript", "-b", "Genesis", "-c", "2", "-v", "1-2"},
			want: "Genesis 2\n" +
				"₁ " + testutil.VerseText("Genesis", 2, 1) + "\n" +
				"₂ " + testutil.VerseText("Genesis", 2, 2) + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
			if stderr != "" {
				t.Errorf("stderr = %q, want empty", stderr)
			}
		})
	}
}

func TestLookupJSON(t *testing.T) {
	path := testutil.WriteBible(t)

	code, stdout, stderr := runCLI(t, "-f", path, "--json", "-a", "jn:3:16")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var got struct {
		Kind    string `json:"kind"`
		Book    string `json:"book"`
		Chapter int    `json:"chapter"`
		Verse   int    `json:"verse"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if got.Kind != "single" || got.Book != "John" || got.Chapter != 3 || got.Verse != 16 {
		t.Errorf("JSON = %+v", got)
	}
}

func TestErrors(t *testing.T) {
	path := testutil.WriteBible(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"abbreviation with book", []string{"-f", path, "-a", "jn:3:16", "-b", "John"}, "--abbreviation and --book cannot be used together"},
		{"abbreviation with all explicit flags", []string{"-f", path, "-a", "jn:3:16", "-b", "John", "-c", "3", "-v", "16"}, "--abbreviation, --book, --chapter and --verses cannot be used together"},
		{"no locator", []string{"-f", path}, "missing locator"},
		{"explicit without verses", []string{"-f", path, "-b", "John", "-c", "3"}, "missing --verses"},
		{"explicit without book", []string{"-f", path, "-c", "3", "-v", "16"}, "missing --book"},
		{"compact without verses", []string{"-f", path, "-a", "jn:3"}, "invalid locator"},
		{"bad verse spec", []string{"-f", path, "-b", "John", "-c", "3", "-v", "1-2-3"}, "invalid locator"},
		{"unknown book", []string{"-f", path, "-a", "zz:1:1"}, "book not found: zz"},
		{"chapter 999", []string{"-f", path, "-b", "John", "-c", "999", "-v", "1"}, "chapter not found"},
		{"verse past end", []string{"-f", path, "-a", "gn:1:4"}, "verse not found"},
		{"no file path", []string{"-a", "jn:3:16"}, "missing --file-path"},
		{"unreadable file", []string{"-f", filepath.Join(t.TempDir(), "nope.xml"), "-a", "jn:3:16"}, "cannot load document"},
		{"random testament conflict", []string{"-f", path, "random", "-n", "-o"}, "--new-testament-only and --old-testament-only cannot be used together"},
		{"random zero count", []string{"-f", path, "random", "-c", "0"}, "must be at least 1"},
		{"books testament conflict", []string{"-f", path, "books", "-n", "-o"}, "cannot be used together"},
		{"unknown flag", []string{"-f", path, "--colour"}, "verse: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetFileEnv(t)
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if !strings.HasPrefix(stderr, "verse: ") {
				t.Errorf("stderr = %q, want verse: prefix", stderr)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	path := testutil.WriteBible(t)
	newBooks := map[string]bool{"Matthew": true, "John": true, "1 Corinthians": true}

	for seed := 1; seed <= 20; seed++ {
		code, stdout, stderr := runCLI(t, "-f", path, "--json", "random", "-n", "-c", "2", "--seed", strconv.Itoa(seed))
		if code != 0 {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		var got struct {
			Book string `json:"book"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
		}
		if !newBooks[got.Book] {
			t.Errorf("random -n returned %q", got.Book)
		}
	}
}

func TestRandomSeedIsReproducible(t *testing.T) {
	path := testutil.WriteBible(t)

	_, first, _ := runCLI(t, "-f", path, "random", "-c", "3", "--seed", "99")
	_, second, _ := runCLI(t, "-f", path, "random", "-c", "3", "--seed", "99")
	if first == "" || first != second {
		t.Errorf("same seed gave %q and %q", first, second)
	}
}

func TestFilePathSources(t *testing.T) {
	path := testutil.WriteBible(t)
	want := "John 3:16\n" + testutil.VerseText("John", 3, 16) + "\n"

	t.Run("environment", func(t *testing.T) {
		t.Setenv("VERSE_FILE", path)
		code, stdout, stderr := runCLI(t, "-a", "jn:3:16")
		if code != 0 || stdout != want {
			t.Errorf("exit %d, stdout %q, stderr %q", code, stdout, stderr)
		}
	})

	t.Run("config file", func(t *testing.T) {
		unsetFileEnv(t)
		cfg := testutil.WriteFile(t, t.TempDir(), "verse.yaml", "file_path: "+path+"\n")
		code, stdout, stderr := runCLI(t, "--config", cfg, "-a", "jn:3:16")
		if code != 0 || stdout != want {
			t.Errorf("exit %d, stdout %q, stderr %q", code, stdout, stderr)
		}
	})

	t.Run("xz document", func(t *testing.T) {
		xzPath := testutil.WriteXZ(t, t.TempDir(), "bible.xml.xz", testutil.BibleXML())
		code, stdout, stderr := runCLI(t, "-f", xzPath, "-a", "jn:3:16")
		if code != 0 || stdout != want {
			t.Errorf("exit %d, stdout %q, stderr %q", code, stdout, stderr)
		}
	})
}

func TestBooks(t *testing.T) {
	path := testutil.WriteBible(t)

	code, stdout, stderr := runCLI(t, "-f", path, "books", "-o")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 40 {
		t.Fatalf("got %d lines, want header plus 39 books", len(lines))
	}
	if !strings.Contains(lines[1], "Genesis") {
		t.Errorf("first book row = %q", lines[1])
	}
}

func TestInfo(t *testing.T) {
	path := testutil.WriteBible(t)

	code, stdout, stderr := runCLI(t, "-f", path, "info")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"Books:         42", "Old Testament: 39", "New Testament: 3"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("info output missing %q:\n%s", want, stdout)
		}
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "verse version "+version+"\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestDebugLogsGoToStderr(t *testing.T) {
	path := testutil.WriteBible(t)

	code, stdout, stderr := runCLI(t, "-f", path, "--log-level", "debug", "--log-format", "json", "-a", "jn:3:16")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if strings.Contains(stdout, "command_start") {
		t.Errorf("log output leaked to stdout: %s", stdout)
	}
	for _, want := range []string{`"msg":"command_start"`, `"msg":"corpus_loaded"`, `"invocation_id":`} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %s:\n%s", want, stderr)
		}
	}
}
