package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "counts runes",
			input:  "навыки",
			limit:  3,
			expect: "нав...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestBuildWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	logger, err := build(true, false, []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("matching completed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"step":"matching completed"`) {
		t.Fatalf("expected step key in json log, got %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry must be filtered at info level")
	}
}
