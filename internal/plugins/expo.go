// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plugins

import (
	"log/slog"

	"goki.dev/mat32/v2"

	"github.com/fire-wm/fire/internal/wm"
	"github.com/fire-wm/fire/internal/x11"
)

// Expo toggles a zoomed-out view compositing every workspace cell of
// the virtual grid onto the screen at once, remapping hit-testing so
// clicks still land on the right window in the right cell.
type Expo struct {
	wm.BasePlugin

	core   *wm.Core
	owner  *wm.Ownership
	active bool
	saved  wm.HitTestFunc
}

func NewExpo() *Expo { return &Expo{} }

func (e *Expo) Name() string { return "expo" }

func (e *Expo) Init(core *wm.Core) {
	e.core = core
	// Expo declares no compatibility with any peer. Compatibility must
	// be declared by both tickets, so the arbiter denies Move/Resize
	// while the overview is up even though their tickets set CompatAll.
	e.owner = wm.NewOwnership("expo", core.Disp)

	keycode, err := core.Disp.KeysymToKeycode(x11.KeysymE)
	if err != nil {
		slog.Warn("expo: resolve toggle keysym", "err", err)
		return
	}
	core.Bindings.AddKey(&wm.KeyBinding{
		Key:    keycode,
		Mod:    x11.ModMask4,
		Active: true,
		Action: e.toggle,
	}, true)
}

func (e *Expo) toggle(ctx *wm.Context) {
	if ctx == nil || ctx.Event == nil {
		return
	}
	if e.active {
		e.deactivate()
		return
	}
	if !e.core.Arbiter.Activate(e.owner) {
		return
	}
	e.activate()
}

func (e *Expo) activate() {
	e.active = true
	e.saved = e.core.Stack.SetHitTest(e.findWindow)

	vw, vh := e.core.Workspace.VWidth, e.core.Workspace.VHeight
	vx, vy := e.core.Workspace.VX, e.core.Workspace.VY
	midX, midY := float32(vw-1)/2, float32(vh-1)/2

	offX := (float32(vx) - midX) * 2 / float32(vw)
	offY := (midY - float32(vy)) * 2 / float32(vh)

	e.core.Global.Translation = e.core.Global.Translation.Mul(wm.TranslationMat4(mat32.V3(offX, offY, 0)))
	e.core.Global.Scale = e.core.Global.Scale.Mul(wm.ScaleMat4(mat32.V3(1/float32(vw), 1/float32(vh), 1)))
	e.core.Global.ScaleX = float64(vw)
	e.core.Global.ScaleY = float64(vh)

	e.core.Redraw = true
}

func (e *Expo) deactivate() {
	e.active = false
	e.core.Global.Translation = wm.Identity4()
	e.core.Global.Scale = wm.Identity4()
	e.core.Global.ScaleX = 1
	e.core.Global.ScaleY = 1
	e.core.Stack.SetHitTest(e.saved)
	e.core.Arbiter.Deactivate(e.owner)
	e.core.Redraw = true
}

// findWindow maps a screen point to the workspace cell it falls in and
// delegates to the saved hit-test at the corresponding real-workspace
// coordinate.
func (e *Expo) findWindow(x, y int) *wm.Window {
	vw, vh := e.core.Workspace.VWidth, e.core.Workspace.VHeight
	cellW, cellH := e.core.Width/vw, e.core.Height/vh

	cellX, cellY := x/cellW, y/cellH
	localX, localY := x%cellW, y%cellH

	realX := (cellX-e.core.Workspace.VX)*e.core.Width + localX*vw
	realY := (cellY-e.core.Workspace.VY)*e.core.Height + localY*vh

	if e.saved == nil {
		return nil
	}
	return e.saved(realX, realY)
}
