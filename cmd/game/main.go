package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"particle-morph/internal/app"
	"particle-morph/internal/config"
	"particle-morph/internal/debug"
	"particle-morph/internal/fonts"
	"particle-morph/internal/gesture"
	"particle-morph/internal/graphics"
	"particle-morph/internal/input"
	"particle-morph/internal/logger"
	"particle-morph/internal/render"
	"particle-morph/internal/terminal"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

func main() {
	var (
		configPath = flag.String("config", config.ConfigPath, "config file")
		scriptPath = flag.String("script", "", "replay a gesture script instead of reading the mouse")
		seed       = flag.Int64("seed", 0, "shape generator seed (0 = time based)")
		count      = flag.Int("count", 0, "point count override")
	)
	flag.Parse()

	cfg, cfgErr := config.Load(*configPath)
	var over config.Config
	over.Seed = *seed
	over.Script = *scriptPath
	over.Cloud.Count = *count
	if err := config.Merge(&cfg, over); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogPath)
	defer log.Sync()
	if cfgErr != nil {
		log.Error("config rejected, using defaults", cfgErr, "path", *configPath)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid settings", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctrl, err := app.Build(cfg, log)
	if err != nil {
		log.Error("startup failed", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var slot gesture.Slot
	var mouse *input.Mouse
	if cfg.Script != "" {
		src := &gesture.ScriptSource{Path: cfg.Script}
		if err := src.Start(ctx, slot.Publish); err != nil {
			if errors.Is(err, gesture.ErrSourceUnavailable) {
				log.Error("gesture script unavailable, falling back to mouse", err)
			} else {
				log.Error("gesture source failed", err)
			}
			mouse = input.NewMouse(slot.Publish)
		} else {
			log.Info("replaying gesture script", "path", cfg.Script)
		}
	} else {
		mouse = input.NewMouse(slot.Publish)
	}

	dbg := debug.New()
	dbg.SetShowFPS(cfg.ShowFPS)
	rend := render.New()
	term := terminal.New(log, console(ctrl, dbg, rend))
	fontLoaded := cfg.Font == ""

	update := func(dt float32) {
		if !fontLoaded {
			// needs the GL context, so it waits for the first frame
			fontLoaded = true
			if font, err := loadFont(cfg.Font); err != nil {
				log.Error("console font unavailable", err, "font", cfg.Font)
			} else {
				term.SetFont(font)
				dbg.SetFont(font)
			}
		}
		term.Update()
		if mouse != nil {
			mouse.Poll(term.IsOpen())
		}
		if err := ctrl.Consume(&slot, dt); err != nil {
			log.Error("tick failed", err)
		}
	}
	draw := func() {
		frame := ctrl.Frame()
		rend.Draw(frame)
		term.Draw()
		dbg.Draw(frame)
	}
	graphics.Run(cfg.Window, update, draw)
}

func loadFont(name string) (rl.Font, error) {
	path, err := fonts.Find(name, nil)
	if err != nil {
		return rl.Font{}, err
	}
	font := rl.LoadFont(path)
	if !rl.IsFontValid(font) {
		return rl.Font{}, errors.Errorf("raylib rejected %s", path)
	}
	return font, nil
}
