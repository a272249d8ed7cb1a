package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"particle-morph/internal/logger"
	"particle-morph/internal/scene"
	"particle-morph/internal/shapes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "wave.yaml")
	require.NoError(t, os.WriteFile(script, []byte("steps:\n  - present: true\n    expansion: 0.8\n    repeat: 10\n"), 0644))
	out := filepath.Join(dir, "frame.webp")

	reg := registry(logger.NewNop())
	err := reg.Execute([]string{"render",
		"-config", filepath.Join(dir, "none.yaml"),
		"-script", script, "-ticks", "12", "-count", "300", "-size", "48", "-out", out})
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestRenderCommand_BadInput(t *testing.T) {
	reg := registry(logger.NewNop())
	dir := t.TempDir()
	assert.Error(t, reg.Execute([]string{"render", "-config", filepath.Join(dir, "none.yaml"), "-script", filepath.Join(dir, "missing.yaml")}))
	assert.Error(t, reg.Execute([]string{"trace", "-config", filepath.Join(dir, "none.yaml"), "-ticks", "-1"}))
}

func TestTraceLine(t *testing.T) {
	f := scene.Frame{Tick: 3, Shape: shapes.Galaxy, Expansion: 0.5, Scale: 2, Rotation: 0.25}
	f.Signal.Present = true
	f.Camera.Position[2] = 70
	line := traceLine(f)
	assert.Equal(t, []string{"3", "true", "galaxy", "70.000", "0.5000", "2.0000", "0.2500"}, strings.Split(line, "\t"))
}
