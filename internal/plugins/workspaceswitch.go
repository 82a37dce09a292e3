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

// maxStep is the number of frames an animated workspace-switch
// segment takes to complete.
const maxStep = 60

// direction is a single queued workspace move.
type direction struct{ dx, dy int }

// WorkspaceSwitch animates the transition between adjacent workspace
// cells, coalescing further requests received mid-animation into a
// FIFO queue drained one segment at a time. It holds no ownership
// ticket: workspace animation only touches the global transform, which
// nothing else in the core contends for.
type WorkspaceSwitch struct {
	wm.BasePlugin

	core *wm.Core
	hook *wm.Hook

	queue []direction
	cur   direction
	step  int
}

func NewWorkspaceSwitch() *WorkspaceSwitch { return &WorkspaceSwitch{} }

func (s *WorkspaceSwitch) Name() string { return "workspaceswitch" }

// switchKeys pairs each navigation key with the workspace direction it
// moves; h/l move along x, j/k move along y, matching vi-style
// navigation.
var switchKeys = [...]struct {
	keysym uint32
	dx, dy int
}{
	{x11.KeysymL, 1, 0},
	{x11.KeysymH, -1, 0},
	{x11.KeysymK, 0, -1},
	{x11.KeysymJ, 0, 1},
}

func (s *WorkspaceSwitch) Init(core *wm.Core) {
	s.core = core
	s.hook = &wm.Hook{Action: s.tick}
	core.Bindings.AddHook(s.hook)

	const mod = x11.ModMaskControl | x11.ModMask1
	for _, sk := range switchKeys {
		keycode, err := core.Disp.KeysymToKeycode(sk.keysym)
		if err != nil {
			slog.Warn("workspaceswitch: resolve keysym", "keysym", sk.keysym, "err", err)
			continue
		}
		dx, dy := sk.dx, sk.dy
		core.Bindings.AddKey(&wm.KeyBinding{
			Key:    keycode,
			Mod:    mod,
			Active: true,
			Action: func(ctx *wm.Context) {
				if ctx == nil || ctx.Event == nil {
					return
				}
				s.MoveWorkspace(dx, dy)
			},
		}, true)
	}
}

// MoveWorkspace enqueues a move in direction (dx, dy) and, if no
// segment is currently animating, starts one immediately.
func (s *WorkspaceSwitch) MoveWorkspace(dx, dy int) {
	s.queue = append(s.queue, direction{dx, dy})
	if !s.hook.Active {
		s.startNext()
	}
}

func (s *WorkspaceSwitch) startNext() {
	if len(s.queue) == 0 {
		s.hook.Disable()
		return
	}
	s.cur = s.queue[0]
	s.queue = s.queue[1:]
	s.step = 0
	s.hook.Enable()
}

func (s *WorkspaceSwitch) tick() {
	s.step++
	t := float32(s.step) / float32(maxStep)
	s.core.Global.Translation = wm.TranslationMat4(mat32.V3(
		-2*t*float32(s.cur.dx),
		2*t*float32(s.cur.dy),
		0,
	))
	s.core.Redraw = true

	if s.step >= maxStep {
		s.core.Global.Translation = wm.Identity4()
		s.core.CommitWorkspace(s.cur.dx, s.cur.dy)
		s.startNext()
	}
}
