package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// captureLogOutput runs f with the global logger writing to a buffer.
func captureLogOutput(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	Init(&buf, level, format)
	defer Init(os.Stderr, LevelWarn, FormatText)

	f()
	return buf.String()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelWarn},
		{"verbose", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("json"); got != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, want FormatJSON", got)
	}
	if got := ParseFormat("JSON"); got != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, want FormatJSON", got)
	}
	if got := ParseFormat("text"); got != FormatText {
		t.Errorf("ParseFormat(text) = %v, want FormatText", got)
	}
	if got := ParseFormat("logfmt"); got != FormatText {
		t.Errorf("ParseFormat(logfmt) = %v, want FormatText", got)
	}
}

func TestDefaultLevelIsWarn(t *testing.T) {
	ctx := context.Background()
	output := captureLogOutput(LevelWarn, FormatText, func() {
		DebugContext(ctx, "debug message")
		CommandStart(ctx, "lookup")
		WarnContext(ctx, "warning message")
	})

	if strings.Contains(output, "debug message") || strings.Contains(output, "command_start") {
		t.Errorf("messages below warn were logged: %s", output)
	}
	if !strings.Contains(output, "warning message") {
		t.Errorf("warning was not logged: %s", output)
	}
}

func TestLoggingFunctions(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		fn   func()
		msg  string
	}{
		{"DebugContext", func() { DebugContext(ctx, "debug message", "key", "value") }, "debug message"},
		{"WarnContext", func() { WarnContext(ctx, "warning message", "key", "value") }, "warning message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(LevelDebug, FormatJSON, tt.fn)
			var entry map[string]any
			if err := json.Unmarshal([]byte(output), &entry); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, output)
			}
			if entry["msg"] != tt.msg {
				t.Errorf("msg = %v, want %q", entry["msg"], tt.msg)
			}
			if entry["key"] != "value" {
				t.Errorf("key = %v, want value", entry["key"])
			}
		})
	}
}

func TestInvocationID(t *testing.T) {
	id := NewInvocationID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("NewInvocationID() = %q is not a UUID: %v", id, err)
	}
	if NewInvocationID() == id {
		t.Error("NewInvocationID returned the same id twice")
	}

	ctx := WithInvocationID(context.Background(), id)
	if got := GetInvocationID(ctx); got != id {
		t.Errorf("GetInvocationID() = %q, want %q", got, id)
	}
	if got := GetInvocationID(context.Background()); got != "" {
		t.Errorf("GetInvocationID() on empty context = %q", got)
	}
}

func TestContextLoggingFunctions(t *testing.T) {
	ctx := WithInvocationID(context.Background(), "test-123")

	tests := []struct {
		name string
		fn   func()
	}{
		{"DebugContext", func() { DebugContext(ctx, "debug") }},
		{"WarnContext", func() { WarnContext(ctx, "warn") }},
		{"CommandStart", func() { CommandStart(ctx, "random") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(LevelDebug, FormatJSON, tt.fn)
			if !strings.Contains(output, `"invocation_id":"test-123"`) {
				t.Errorf("output missing invocation id: %s", output)
			}
		})
	}

	output := captureLogOutput(LevelDebug, FormatJSON, func() {
		DebugContext(context.Background(), "no id")
	})
	if strings.Contains(output, "invocation_id") {
		t.Errorf("output has invocation id without one in context: %s", output)
	}
}

func TestCommandLogging(t *testing.T) {
	ctx := WithInvocationID(context.Background(), "cmd-1")

	output := captureLogOutput(LevelDebug, FormatJSON, func() {
		CommandStart(ctx, "lookup", "file", "bible.xml")
		CommandDone(ctx, "lookup", 12*time.Millisecond, nil)
		CommandDone(ctx, "lookup", time.Millisecond, errors.New("boom"))
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, want 3:\n%s", len(lines), output)
	}
	for i, want := range []string{"command_start", "command_done", "command_failed"} {
		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if entry["msg"] != want {
			t.Errorf("line %d msg = %v, want %s", i, entry["msg"], want)
		}
		if entry["command"] != "lookup" {
			t.Errorf("line %d command = %v", i, entry["command"])
		}
	}
	if !strings.Contains(lines[0], `"file":"bible.xml"`) {
		t.Errorf("command_start missing args: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"duration_ms":12`) {
		t.Errorf("command_done missing duration: %s", lines[1])
	}
	if !strings.Contains(lines[2], `"error":"boom"`) {
		t.Errorf("command_failed missing error: %s", lines[2])
	}
}
