package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/meltforce/fittrack/internal/config"
)

// TestParseLevel verifies each config level name and the info fallback.
func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// TestNewJSON verifies the json format emits one JSON object per record.
func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	log.Info("user added", "user_id", "u1")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "user added" {
		t.Errorf("msg = %v, want %q", rec["msg"], "user added")
	}
	if rec["user_id"] != "u1" {
		t.Errorf("user_id = %v, want %q", rec["user_id"], "u1")
	}
}

// TestNewTextLevel verifies records below the configured level are dropped.
func TestNewTextLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") {
		t.Errorf("warn record missing: %q", out)
	}
}
