package renderer

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultNumWorkers(t *testing.T) {
	if n := DefaultNumWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}

	pool := NewWorkerPool(0, 1, nil)
	if pool.GetNumWorkers() != DefaultNumWorkers() {
		t.Errorf("Expected %d workers, got %d", DefaultNumWorkers(), pool.GetNumWorkers())
	}
}

func TestLogSystemInfo(t *testing.T) {
	var buf bytes.Buffer
	LogSystemInfo(NewWriterLogger(&buf))

	// Either the value or the lookup failure is reported
	if !strings.Contains(buf.String(), "CPU") {
		t.Errorf("Expected a CPU line, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Memory") {
		t.Errorf("Expected a memory line, got %q", buf.String())
	}
}
