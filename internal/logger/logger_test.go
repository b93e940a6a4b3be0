package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestPrettyFormatterSortsFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, logrus.DebugLevel)
	l.SetFormatter(&PrettyFormatter{DisableColors: true})

	l.WithFields(logrus.Fields{"peer": "bob", "addr": "127.0.0.1:5000"}).Info("Message sent")

	line := buf.String()
	if !strings.Contains(line, "INFO  Message sent addr=127.0.0.1:5000 peer=bob") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestNewLoggerWithLevel(t *testing.T) {
	if got := NewLoggerWithLevel(io.Discard, "debug").GetLevel(); got != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", got)
	}
	if got := NewLoggerWithLevel(io.Discard, "nonsense").GetLevel(); got != logrus.InfoLevel {
		t.Errorf("expected fallback to info, got %v", got)
	}

	var buf bytes.Buffer
	l := NewLoggerWithLevel(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected only the warning in %q", buf.String())
	}
}
