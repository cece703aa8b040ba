package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output for one test and restores defaults afterwards.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
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

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{"debug verbose", true, func() { Debug("strategy %s", "maven") }, "[DEBUG] strategy maven\n"},
		{"debug quiet", false, func() { Debug("strategy %s", "maven") }, ""},
		{"info verbose", true, func() { Info("imported %d modules", 3) }, "[INFO] imported 3 modules\n"},
		{"info quiet", false, func() { Info("imported %d modules", 3) }, ""},
		{"warn verbose", true, func() { Warn("skipped %s", "api") }, "[WARN] skipped api\n"},
		{"warn quiet", false, func() { Warn("skipped %s", "api") }, "[WARN] skipped api\n"},
		{"section verbose", true, func() { Section("Import /ws") }, "\n=== Import /ws ===\n"},
		{"section quiet", false, func() { Section("Import /ws") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestForFolder(t *testing.T) {
	t.Run("tags lines", func(t *testing.T) {
		buf := capture(t, true)
		log := ForFolder("/ws/app")

		log.Debug("trying %s", "maven")
		log.Info("done")
		log.Warn("fell back")

		assert.Equal(t,
			"[DEBUG] /ws/app: trying maven\n[INFO] /ws/app: done\n[WARN] /ws/app: fell back\n",
			buf.String())
	})

	t.Run("quiet keeps warnings", func(t *testing.T) {
		buf := capture(t, false)
		log := ForFolder("/ws/app")

		log.Debug("hidden")
		log.Warn("shown")

		assert.Equal(t, "[WARN] /ws/app: shown\n", buf.String())
	})
}

func TestConcurrentLinesDoNotInterleave(t *testing.T) {
	buf := capture(t, true)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ForFolder("/ws").Info("line %d", i)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[INFO] /ws: line "), line)
	}
}
