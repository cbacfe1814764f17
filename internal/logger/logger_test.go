package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capture redirects output to a buffer and restores defaults afterwards.
func capture(t *testing.T, isVerbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(isVerbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseOnlyLevels(t *testing.T) {
	tests := []struct {
		name    string
		log     func()
		verbose bool
		want    string
	}{
		{"debug verbose", func() { Debug("reading %s", "a.prproj") }, true, "[DEBUG] reading a.prproj\n"},
		{"debug quiet", func() { Debug("reading %s", "a.prproj") }, false, ""},
		{"info verbose", func() { Info("updated %d paths", 3) }, true, "[INFO] updated 3 paths\n"},
		{"info quiet", func() { Info("updated %d paths", 3) }, false, ""},
		{"section verbose", func() { Section("Extracting") }, true, "\n=== Extracting ===\n"},
		{"section quiet", func() { Section("Extracting") }, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)
	Warn("compression failed: %v", "boom")
	assert.Equal(t, "[WARN] compression failed: boom\n", buf.String())
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)
	Error("saving run: %s", "disk full")
	assert.Equal(t, "[ERROR] saving run: disk full\n", buf.String())
}

func TestStage(t *testing.T) {
	buf := capture(t, true)

	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now = func() time.Time {
		tick = tick.Add(2 * time.Millisecond)
		return tick
	}
	t.Cleanup(func() { now = time.Now })

	done := Stage("Rewriting")
	done()

	assert.Equal(t, "\n=== Rewriting ===\n[DEBUG] Rewriting took 2ms\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			Warn("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
