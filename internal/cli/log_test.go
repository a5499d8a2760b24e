package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerContextRoundTrip(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, log.DebugLevel)
	ctx := withLogger(context.Background(), l)

	if got := loggerFromContext(ctx); got != l {
		t.Error("loggerFromContext must return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext must fall back to a default logger")
	}
}

func TestProgressLogsDuration(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	p := newProgress(l)
	p.done("Ranked 3 documents")

	out := buf.String()
	if !strings.Contains(out, "Ranked 3 documents") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "(") || !strings.Contains(out, "s)") {
		t.Errorf("output %q missing elapsed duration", out)
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	l.Debug("hidden")
	l.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message must be filtered at info level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("info message must pass at info level")
	}
}
