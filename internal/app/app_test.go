package app

import (
	"testing"

	"particle-morph/internal/config"
	"particle-morph/internal/gesture"
	"particle-morph/internal/logger"
	"particle-morph/internal/morph"
	"particle-morph/internal/scene"
	"particle-morph/internal/shapes"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 3
	cfg.Cloud.Count = 400
	cfg.Dust.Count = 20
	return cfg
}

func TestBuild(t *testing.T) {
	log := logger.NewNop()
	ctrl, err := Build(smallConfig(), log)
	require.NoError(t, err)
	f := ctrl.Frame()
	assert.Equal(t, 400, f.Cloud.Len())
	require.NotNil(t, f.Dust)
	assert.Equal(t, 20, f.Dust.Len())
	assert.Equal(t, shapes.Sphere, f.Shape)
	assert.Contains(t, log.Lines()[len(log.Lines())-1], "cloud ready")

	cfg := smallConfig()
	cfg.Dust.Count = 0
	ctrl, err = Build(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, ctrl.Frame().Dust)

	cfg.Cloud.Count = 0
	_, err = Build(cfg, nil)
	assert.True(t, errors.Is(err, morph.ErrInvalidCount))
}

func TestReplay(t *testing.T) {
	ctrl, err := Build(smallConfig(), nil)
	require.NoError(t, err)
	script := &gesture.Script{Steps: []gesture.Step{
		{Repeat: 2},
		{Present: true, Expansion: 1, Repeat: 3},
	}}

	var frames []scene.Frame
	Replay(ctrl, script, 8, nil, func(f scene.Frame) { frames = append(frames, f) })
	require.Len(t, frames, 8)

	assert.Equal(t, shapes.Sphere, frames[1].Shape)
	assert.Equal(t, shapes.Galaxy, frames[2].Shape)
	assert.Equal(t, shapes.Galaxy, frames[4].Shape)
	assert.Equal(t, shapes.Sphere, frames[5].Shape, "holds idle once the script runs out")
	assert.Less(t, frames[4].Camera.Position[2], frames[1].Camera.Position[2])
	assert.Equal(t, uint64(8), frames[7].Tick)
}

func TestReplay_Loops(t *testing.T) {
	ctrl, err := Build(smallConfig(), nil)
	require.NoError(t, err)
	script := &gesture.Script{Loop: true, Steps: []gesture.Step{{Present: true}, {}}}

	var present []bool
	Replay(ctrl, script, 5, nil, func(f scene.Frame) { present = append(present, f.Signal.Present) })
	assert.Equal(t, []bool{true, false, true, false, true}, present)

	Replay(ctrl, nil, 2, nil, nil)
	assert.Equal(t, uint64(7), ctrl.Frame().Tick)
}
