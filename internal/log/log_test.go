package log

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":  LevelDebug,
		" ERROR": LevelError,
		"info":   LevelInfo,
		"":       LevelInfo,
		"trace":  LevelDebug,
		"warn":   LevelInfo,
		"fatal":  LevelError,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestInfoFormat(t *testing.T) {
	buf := capture(t, LevelInfo)
	Info("panel ready", "addr", "0x3d", "w", 128, "dangling")
	line := buf.String()
	if !strings.Contains(line, `level=info msg="panel ready" addr=0x3d w=128`) {
		t.Errorf("line = %q", line)
	}
	if strings.Contains(line, "dangling") {
		t.Errorf("dangling value logged: %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, LevelError)
	Debug("hidden")
	Info("hidden")
	Error("draw failed", errors.New("nack"), "op", "data")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered lines logged: %q", out)
	}
	if !strings.Contains(out, `level=error msg="draw failed" error=nack op=data`) {
		t.Errorf("error line = %q", out)
	}
}

func TestDebugEnabled(t *testing.T) {
	buf := capture(t, LevelDebug)
	Debug("window", "x", 0)
	if !strings.Contains(buf.String(), "level=debug msg=window x=0") {
		t.Errorf("line = %q", buf.String())
	}
}
