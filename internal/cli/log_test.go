package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown", "labels", 3)
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "labels=3") {
		t.Errorf("debug output missing after SetLogLevel: %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	time.Sleep(5 * time.Millisecond)
	prog.done("Rendered 4 labels")

	out := buf.String()
	if !strings.Contains(out, "Rendered 4 labels (") || !strings.Contains(out, "ms)") {
		t.Errorf("done() = %q, want message with elapsed time", out)
	}
}
