// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plugins holds the built-in interactive plugins: Move,
// Resize, WorkspaceSwitch and Expo.
package plugins

import (
	"goki.dev/mat32/v2"

	"github.com/fire-wm/fire/internal/wm"
	"github.com/fire-wm/fire/internal/x11"
)

// Move drags the window under the cursor while Alt+Button1 is held,
// releasing it back to an integer pixel position on button-up.
type Move struct {
	wm.BasePlugin

	core    *wm.Core
	owner   *wm.Ownership
	hook    *wm.Hook
	release *wm.ButtonBinding

	win    *wm.Window
	sx, sy int

	// snap and snapSize cache the "snap"/"snap_size" options read by
	// UpdateConfiguration, so terminate doesn't re-read the option
	// registry on every button release.
	snap     bool
	snapSize int
}

// NewMove returns an uninitialized Move plugin; call Init to wire it
// to a core.
func NewMove() *Move { return &Move{} }

func (m *Move) Name() string { return "move" }

func (m *Move) Init(core *wm.Core) {
	m.core = core
	m.owner = wm.NewOwnership("move", core.Disp)
	m.owner.CompatAll = true

	m.Option("snap", wm.OptionBool, false)
	m.Option("snap_size", wm.OptionInt, 8)
	m.UpdateConfiguration()

	m.hook = &wm.Hook{Action: m.intermediate}
	core.Bindings.AddHook(m.hook)

	core.Bindings.AddButton(&wm.ButtonBinding{
		Kind:   wm.ButtonPress,
		Button: 1,
		Mod:    x11.ModMask1,
		Active: true,
		Action: m.initiate,
	}, true)

	m.release = &wm.ButtonBinding{
		Kind:   wm.ButtonRelease,
		Button: 1,
		Mod:    x11.ModMaskAny,
		Active: false,
		Action: m.terminate,
	}
	core.Bindings.AddButton(m.release, false)
}

func (m *Move) initiate(ctx *wm.Context) {
	if ctx == nil || ctx.Event == nil {
		return
	}
	ev := ctx.Event
	w := m.core.Stack.HitTest(ev.X, ev.Y)
	if w == nil {
		return
	}
	if !m.core.Arbiter.Activate(m.owner) {
		return
	}
	m.owner.Grab()

	m.core.Stack.Focus(w)
	m.win = w
	m.hook.Enable()
	m.release.Active = true

	m.sx, m.sy = ev.X, ev.Y
	m.core.Redraw = true
}

func (m *Move) intermediate() {
	if m.win == nil {
		return
	}
	w, h := m.core.Width, m.core.Height
	dx := float32(m.core.MouseX-m.sx) / (float32(w) / 2)
	dy := float32(m.sy-m.core.MouseY) / (float32(h) / 2)
	m.win.Transform.Translation = wm.TranslationMat4(mat32.V3(dx, dy, 0))
	m.core.Redraw = true
}

func (m *Move) terminate(ctx *wm.Context) {
	if ctx == nil || ctx.Event == nil || m.win == nil {
		return
	}
	m.hook.Disable()
	m.release.Active = false
	m.core.Arbiter.Deactivate(m.owner)

	ev := ctx.Event
	m.win.Transform.Translation = wm.Identity4()

	dx := int(float64(ev.X-m.sx) * m.core.Global.ScaleX)
	dy := int(float64(ev.Y-m.sy) * m.core.Global.ScaleY)

	m.win.Geometry.X += dx
	m.win.Geometry.Y += dy
	if m.snap && m.snapSize > 0 {
		m.win.Geometry.X = snapTo(m.win.Geometry.X, m.snapSize)
		m.win.Geometry.Y = snapTo(m.win.Geometry.Y, m.snapSize)
	}

	m.core.Stack.Focus(m.win)
	m.core.Redraw = true
	m.win = nil
}

// UpdateConfiguration refreshes the cached snap/snapSize fields from
// the option registry; called once at Init and again whenever the
// core re-reads external configuration.
func (m *Move) UpdateConfiguration() {
	m.snap, _ = m.Options()["snap"].Value.(bool)
	switch v := m.Options()["snap_size"].Value.(type) {
	case int:
		m.snapSize = v
	case float64: // encoding/json decodes untyped numbers as float64
		m.snapSize = int(v)
	}
}

// snapTo rounds v to the nearest multiple of size.
func snapTo(v, size int) int {
	if v >= 0 {
		return ((v + size/2) / size) * size
	}
	return -((-v + size/2) / size) * size
}
