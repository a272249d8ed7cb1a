package main

import (
	"particle-morph/internal/commands"
	"particle-morph/internal/debug"
	"particle-morph/internal/render"
	"particle-morph/internal/scene"
	"particle-morph/internal/shapes"
)

// console registers the in-window commands:
//
//	cmd shape -name galaxy|sphere   force a shape (the next hand edge still switches)
//	cmd toggle                      flip between the two shapes
//	cmd reset                       snap the camera back to idle
//	cmd fps -on=false               FPS overlay
//	cmd mem -on=true                heap allocation overlay
//	cmd stats -on=true              point count / shape / expansion overlay
//	cmd guide -on=true              axis lines
func console(ctrl *scene.Controller, dbg *debug.Debug, rend *render.Renderer) *commands.Registry {
	reg := commands.NewRegistry()

	shapeFS := commands.NewFlagSet("shape")
	name := shapeFS.String("name", shapes.Galaxy.String(), "galaxy or sphere")
	reg.Register("shape", shapeFS, func() error {
		kind, err := shapes.ParseKind(*name)
		if err != nil {
			return err
		}
		return ctrl.ForceShape(kind)
	})

	reg.Register("toggle", commands.NewFlagSet("toggle"), ctrl.Toggle)

	reg.Register("reset", commands.NewFlagSet("reset"), func() error {
		ctrl.Reset()
		return nil
	})

	fpsFS := commands.NewFlagSet("fps")
	fpsOn := fpsFS.Bool("on", true, "show FPS")
	reg.Register("fps", fpsFS, func() error {
		dbg.SetShowFPS(*fpsOn)
		return nil
	})

	memFS := commands.NewFlagSet("mem")
	memOn := memFS.Bool("on", true, "show heap allocation")
	reg.Register("mem", memFS, func() error {
		dbg.SetShowMemAlloc(*memOn)
		return nil
	})

	statsFS := commands.NewFlagSet("stats")
	statsOn := statsFS.Bool("on", true, "show scene stats")
	reg.Register("stats", statsFS, func() error {
		dbg.SetShowScene(*statsOn)
		return nil
	})

	guideFS := commands.NewFlagSet("guide")
	guideOn := guideFS.Bool("on", true, "show axis lines")
	reg.Register("guide", guideFS, func() error {
		rend.SetGuideVisible(*guideOn)
		return nil
	})
	return reg
}
