// Package app wires the core packages together for the window and the headless tools.
package app

import (
	"particle-morph/internal/config"
	"particle-morph/internal/dust"
	"particle-morph/internal/gesture"
	"particle-morph/internal/logger"
	"particle-morph/internal/morph"
	"particle-morph/internal/scene"
	"particle-morph/internal/shapes"

	"github.com/pkg/errors"
)

// FixedStep is the tick length used when replaying without a clock.
const FixedStep = float32(1) / 60

// Build creates the generator, the morph engine, the dust field (unless disabled) and the
// controller described by cfg.
func Build(cfg config.Config, log *logger.Logger) (*scene.Controller, error) {
	if log == nil {
		log = logger.NewNop()
	}
	gen := shapes.NewGenerator(cfg.Seed)
	eng, err := morph.New(cfg.Cloud.Count, gen, cfg.MorphOptions(), log)
	if err != nil {
		return nil, errors.Wrap(err, "app: morph engine")
	}
	var bg scene.Background
	if cfg.Dust.Count > 0 {
		field, err := dust.New(gen.Rand(), cfg.Dust.Count, cfg.DustOptions())
		if err != nil {
			return nil, errors.Wrap(err, "app: dust field")
		}
		bg = field
	}
	log.Info("cloud ready", "points", cfg.Cloud.Count, "dust", cfg.Dust.Count, "seed", cfg.Seed)
	return scene.New(eng, bg, cfg.SceneOptions(), log), nil
}

// Replay feeds the script's signals to ctrl one per tick at FixedStep for ticks ticks. Past the
// end of the script it loops when the script does, and otherwise holds Idle. visit, if set, sees
// every frame. Tick errors are logged and do not stop the replay.
func Replay(ctrl *scene.Controller, script *gesture.Script, ticks int, log *logger.Logger, visit func(scene.Frame)) {
	if log == nil {
		log = logger.NewNop()
	}
	var signals []gesture.Signal
	if script != nil {
		signals = script.Signals()
	}
	for i := 0; i < ticks; i++ {
		sig := gesture.Idle()
		switch {
		case i < len(signals):
			sig = signals[i]
		case len(signals) > 0 && script.Loop:
			sig = signals[i%len(signals)]
		}
		if err := ctrl.Update(sig, FixedStep); err != nil {
			log.Error("replay tick failed", err, "tick", i)
		}
		if visit != nil {
			visit(ctrl.Frame())
		}
	}
}
