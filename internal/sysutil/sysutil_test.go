package sysutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func preserveLogger(t *testing.T) {
	t.Helper()
	origLevel := zerolog.GlobalLevel()
	origLogger := log.Logger
	origTimestamp := zerolog.TimestampFunc
	t.Cleanup(func() {
		zerolog.TimestampFunc = origTimestamp
		zerolog.SetGlobalLevel(origLevel)
		log.Logger = origLogger
	})
}

func TestSetLogLevel_AllVariants(t *testing.T) {
	preserveLogger(t)

	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"  DeBuG  ", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"unknown", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		SetLogLevel(tc.in)
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Fatalf("SetLogLevel(%q) -> %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestSetupLogger_JSON(t *testing.T) {
	preserveLogger(t)
	var buf bytes.Buffer
	SetupLogger("warn", false, &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("integration", "mock_mail").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("json: %v", err)
	}
	if entry["message"] != "kept" || entry["integration"] != "mock_mail" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if ts, _ := entry["time"].(string); !strings.HasSuffix(ts, "Z") {
		t.Fatalf("timestamp should be UTC, got %q", ts)
	}
}

func TestSetupLogger_Pretty(t *testing.T) {
	preserveLogger(t)
	var buf bytes.Buffer
	SetupLogger("info", true, &buf)

	log.Info().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, "hello") || strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console output, got %q", out)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "a", "b"); got != "a" {
		t.Fatalf("got %q want a", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("got %q want empty", got)
	}
	if got := FirstNonEmpty(" ", "\t"); got != "" {
		t.Fatalf("got %q want empty", got)
	}
}
