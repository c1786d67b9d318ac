package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cl := New(&buf, "warn")

	cl.Tracef("trace message")
	cl.Debugf("debug message")
	cl.Infof("info message")
	cl.Warnf("warn message")
	cl.Errorf("error message")

	out := buf.String()
	for _, absent := range []string{"trace message", "debug message", "info message"} {
		if strings.Contains(out, absent) {
			t.Errorf("output contains %q, want it filtered", absent)
		}
	}
	for _, present := range []string{"warn message", "error message"} {
		if !strings.Contains(out, present) {
			t.Errorf("output missing %q", present)
		}
	}
}

func TestDefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	cl := New(&buf, "bogus")

	cl.Debugf("hidden")
	cl.Infof("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug output not filtered at default level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info output missing at default level")
	}
}

func TestFormatting(t *testing.T) {
	var buf bytes.Buffer
	cl := New(&buf, "debug")

	cl.Debugf("matched %d paths in %s", 3, "src")

	line := buf.String()
	if !strings.Contains(line, "[DEBUG] matched 3 paths in src") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("line is not newline-terminated")
	}
}

func TestNilWriter(t *testing.T) {
	cl := New(nil, "info")
	// Must not panic.
	cl.Infof("dropped")
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	cl := New(&buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				cl.Infof("message")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 400 {
		t.Errorf("got %d lines, want 400", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "[INFO] message") {
			t.Errorf("malformed line: %q", line)
			break
		}
	}
}
