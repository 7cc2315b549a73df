package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	log.Debug(ctx, "debug")
	log.Info(ctx, "info")
	log.Warn(ctx, "warn")
	log.Error(ctx, "error")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("levels = %v, %v; want warn, error", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogger_WithCheck(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("info", &buf).WithCheck(CheckMeta{
		Slug:     "core.database_connection",
		Provider: "core",
		Category: "database",
	})

	log.Info(context.Background(), "health check completed", F("status", "good"))

	entry := decodeLines(t, &buf)[0]
	want := map[string]any{
		"msg":            "health check completed",
		"check.slug":     "core.database_connection",
		"check.provider": "core",
		"check.category": "database",
		"status":         "good",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("entry[%q] = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestLogger_WithDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter("info", &buf)
	_ = base.With(F("pass", "a"))

	base.Info(context.Background(), "plain")

	if _, ok := decodeLines(t, &buf)[0]["pass"]; ok {
		t.Error("With mutated the parent logger")
	}
}

func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("debug", &buf)

	fields := make([]Field, 0, len(RedactedFields))
	for _, k := range RedactedFields {
		fields = append(fields, F(k, "s3cr3t"))
	}
	log.Info(context.Background(), "config loaded", fields...)

	entry := decodeLines(t, &buf)[0]
	for _, k := range RedactedFields {
		if entry[k] != "[REDACTED]" {
			t.Errorf("entry[%q] = %v, want [REDACTED]", k, entry[k])
		}
	}
}

func TestLogger_ErrorValues(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("info", &buf)

	log.Warn(context.Background(), "health check faulted", F("error", errors.New("Connection refused")))

	if got := decodeLines(t, &buf)[0]["error"]; got != "Connection refused" {
		t.Errorf("error field = %v, want Connection refused", got)
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("info", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.WithCheck(CheckMeta{Slug: "core.x"}).Info(context.Background(), "line", F("i", i))
		}(i)
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 20 {
		t.Errorf("entries = %d, want 20", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	log := NopLogger().With(F("a", 1)).WithCheck(CheckMeta{Slug: "core.x"})
	log.Error(context.Background(), "ignored")
}
