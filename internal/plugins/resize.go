// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plugins

import (
	"goki.dev/mat32/v2"

	"github.com/fire-wm/fire/internal/wm"
	"github.com/fire-wm/fire/internal/x11"
)

// Resize grows or shrinks the window under the cursor while
// Ctrl+Button1 is held, keeping its top-left pixel fixed under the
// in-progress scale, and bakes the result into integer geometry on
// button-up.
type Resize struct {
	wm.BasePlugin

	core    *wm.Core
	owner   *wm.Ownership
	hook    *wm.Hook
	release *wm.ButtonBinding

	win    *wm.Window
	sx, sy int
}

func NewResize() *Resize { return &Resize{} }

func (r *Resize) Name() string { return "resize" }

func (r *Resize) Init(core *wm.Core) {
	r.core = core
	r.owner = wm.NewOwnership("resize", core.Disp)
	r.owner.CompatAll = true

	r.hook = &wm.Hook{Action: r.intermediate}
	core.Bindings.AddHook(r.hook)

	core.Bindings.AddButton(&wm.ButtonBinding{
		Kind:   wm.ButtonPress,
		Button: 1,
		Mod:    x11.ModMaskControl,
		Active: true,
		Action: r.initiate,
	}, true)

	r.release = &wm.ButtonBinding{
		Kind:   wm.ButtonRelease,
		Button: 1,
		Mod:    x11.ModMaskAny,
		Active: false,
		Action: r.terminate,
	}
	core.Bindings.AddButton(r.release, false)
}

func (r *Resize) initiate(ctx *wm.Context) {
	if ctx == nil || ctx.Event == nil {
		return
	}
	ev := ctx.Event
	w := r.core.Stack.HitTest(ev.X, ev.Y)
	if w == nil {
		return
	}
	if !r.core.Arbiter.Activate(r.owner) {
		return
	}
	r.owner.Grab()

	r.core.Stack.Focus(w)
	r.win = w
	r.hook.Enable()
	r.release.Active = true

	if w.Geometry.W == 0 {
		w.Geometry.W = 1
	}
	if w.Geometry.H == 0 {
		w.Geometry.H = 1
	}

	r.sx, r.sy = ev.X, ev.Y
	r.core.Redraw = true
}

// intermediate recomputes the scale and top-left-preserving
// translation every tick. Per-tick deltas are scaled by the global
// screen-to-virtual-grid factors the same way the terminate step
// applies them: the original left the intermediate step unscaled
// while scaling on terminate, producing a visible jump the one time
// Expo and a resize overlap; this keeps the two consistent instead.
func (r *Resize) intermediate() {
	if r.win == nil {
		return
	}
	dx := float64(r.core.MouseX-r.sx) * r.core.Global.ScaleX
	dy := float64(r.core.MouseY-r.sy) * r.core.Global.ScaleY

	nw := float32(r.win.Geometry.W) + float32(dx)
	nh := float32(r.win.Geometry.H) + float32(dy)

	kW := nw / float32(r.win.Geometry.W)
	kH := nh / float32(r.win.Geometry.H)

	sw, sh := float32(r.core.Width), float32(r.core.Height)
	w2, h2 := sw/2, sh/2

	tlx := float32(r.win.Geometry.X) - w2
	tly := h2 - float32(r.win.Geometry.Y)

	ntlx := kW * tlx
	ntly := kH * tly

	r.win.Transform.Translation = wm.TranslationMat4(mat32.V3((tlx-ntlx)/w2, (tly-ntly)/h2, 0))
	r.win.Transform.Scale = wm.ScaleMat4(mat32.V3(kW, kH, 1))
	r.core.Redraw = true
}

func (r *Resize) terminate(ctx *wm.Context) {
	if ctx == nil || ctx.Event == nil || r.win == nil {
		return
	}
	r.hook.Disable()
	r.release.Active = false

	r.win.Transform.Scale = wm.Identity4()
	r.win.Transform.Translation = wm.Identity4()

	dx := int(float64(r.core.MouseX-r.sx) * r.core.Global.ScaleX)
	dy := int(float64(r.core.MouseY-r.sy) * r.core.Global.ScaleY)

	r.win.Geometry.W += dx
	r.win.Geometry.H += dy

	r.core.Arbiter.Deactivate(r.owner)
	r.core.Redraw = true
	r.win = nil
}
