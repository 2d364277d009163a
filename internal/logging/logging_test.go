package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Format: HumanFormat,
		Level:  WarnLevel,
		Output: &buf,
	})

	logger.Debug("debug msg", nil)
	logger.Info("info msg", nil)
	logger.Warn("warn msg", nil)
	logger.Error("error msg", nil)

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("messages below warn should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "warn msg") || !strings.Contains(out, "error msg") {
		t.Errorf("warn and error should be logged, got: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Format: JSONFormat,
		Level:  InfoLevel,
		Output: &buf,
	})

	logger.Info("report written", map[string]interface{}{
		"path": "diff.json",
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "report written" {
		t.Errorf("message = %v, want 'report written'", entry["message"])
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok || fields["path"] != "diff.json" {
		t.Errorf("unexpected fields: %v", entry["fields"])
	}
}

func TestHumanFormatFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Format: HumanFormat,
		Level:  DebugLevel,
		Output: &buf,
	})

	logger.Debug("saved", map[string]interface{}{"id": "abc"})

	out := buf.String()
	if !strings.Contains(out, "[debug] saved") {
		t.Errorf("unexpected human output: %s", out)
	}
	if !strings.Contains(out, "id=abc") {
		t.Errorf("fields missing from human output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
