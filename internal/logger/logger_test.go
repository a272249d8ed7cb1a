package logger

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_LinesAreStampedAndCopied(t *testing.T) {
	l := NewNop()
	l.Log("cmd shape -name galaxy")
	l.Info("morph target changed", "from", "sphere", "to", "galaxy")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[0], "cmd shape -name galaxy"))
	assert.True(t, strings.HasSuffix(lines[1], "morph target changed from=sphere to=galaxy"))

	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Lines()[0])
}

func TestLogger_HistoryIsBounded(t *testing.T) {
	l := NewNop()
	for i := 0; i < maxLines+10; i++ {
		l.Log(fmt.Sprintf("line %d", i))
	}
	lines := l.Lines()
	require.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[0], "line 10"))
	assert.True(t, strings.HasSuffix(lines[maxLines-1], fmt.Sprintf("line %d", maxLines+9)))
}

func TestLogger_ForwardsToZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := FromZap(zap.New(core))

	l.Error("source failed", errors.New("no camera"), "source", "script")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "source failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "no camera", fields["error"])
	assert.Equal(t, "script", fields["source"])
	assert.Contains(t, l.Lines()[0], "error=no camera")
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "morph.log")
	l := New(path)
	l.Info("hello", "n", 1)
	_ = l.Sync()
	assert.FileExists(t, path)
}
