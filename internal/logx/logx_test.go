package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "api", Config{})
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %s", out)
	}
	if !strings.Contains(out, `"service":"api"`) || !strings.Contains(out, `"message":"shown"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestNewWithWriter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "api", Config{Debug: true})
	logger.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output, got %s", buf.String())
	}
}
