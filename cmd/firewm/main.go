// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command firewm is the compositing window manager binary: it opens
// the X11 display, bootstraps a GL context against the composite
// overlay, wires the built-in plugins into the core and runs the
// event/render loop until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"goki.dev/grr"

	"github.com/fire-wm/fire/internal/background"
	"github.com/fire-wm/fire/internal/config"
	fgl "github.com/fire-wm/fire/internal/gl"
	"github.com/fire-wm/fire/internal/plugins"
	"github.com/fire-wm/fire/internal/wm"
	"github.com/fire-wm/fire/internal/x11"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON configuration file")
	backgroundPath := flag.String("background", "", "path to a background image (overrides config)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	disp, err := x11.Open()
	if err != nil {
		if errors.Is(err, x11.ErrAnotherManagerPresent) {
			slog.Error("another compositing manager is already running")
		} else {
			slog.Error("open display", "err", err)
		}
		os.Exit(1)
	}
	defer disp.Close()

	width, height := disp.ScreenSize()
	core := wm.NewCore(disp, width, height)
	disp.OnWindowError = func(id wm.WindowID) {
		if w := core.Stack.Find(id); w != nil {
			w.Norender = true
		}
	}

	glCtx, err := fgl.NewContext("", uint32(disp.Overlay()))
	if err != nil {
		slog.Error("create GL context", "err", err)
		os.Exit(1)
	}
	defer glCtx.Close()

	renderer, err := fgl.NewRenderer(width, height)
	if err != nil {
		slog.Error("create renderer", "err", err)
		os.Exit(1)
	}
	core.Render = func(c *wm.Core) {
		renderer.Draw(c)
		glCtx.SwapBuffers()
	}

	core.RegisterPlugin(plugins.NewMove())
	core.RegisterPlugin(plugins.NewResize())
	core.RegisterPlugin(plugins.NewWorkspaceSwitch())
	core.RegisterPlugin(plugins.NewExpo())

	var cfg *config.Options
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("load configuration", "err", err)
			os.Exit(1)
		}
	}
	core.UpdateConfiguration(cfg)

	bgPath := *backgroundPath
	if bgPath == "" && cfg != nil {
		bgPath = cfg.BackgroundPath
	}
	if bgPath != "" {
		if err := background.Load(bgPath, width, height, renderer, core); err != nil {
			slog.Warn("load background", "err", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := core.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		grr.Log(err)
	}
}
