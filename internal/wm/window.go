// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

// WindowID is the display-assigned identifier for a managed window
// (an xproto.Window on the X11 backend).
type WindowID uint32

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// WindowType distinguishes the desktop background windows the core
// installs via InstallBackground from ordinary managed windows.
type WindowType int

const (
	WindowTypeNormal WindowType = iota
	WindowTypeDesktop
)

// Window is a managed top-level surface. Texture and GPU buffer
// handles are opaque to this package; the render step (C4) interprets
// them.
type Window struct {
	ID   WindowID
	Type WindowType

	Geometry Rect

	Texture uint32 // GL texture name, last snapshot of the window's content
	VAO, VBO uint32 // per-window GPU buffer handles for quad vertices/attributes

	Norender        bool
	Destroyed       bool
	Visible         bool
	InitiallyMapped bool

	// TransientFor and Leader are weak, lookup-only links resolved by
	// id against the owning WindowStack each access; they must never
	// be treated as owning references since the target may be
	// destroyed first.
	TransientFor WindowID
	HasTransientFor bool
	Leader          WindowID
	HasLeader       bool

	// KeepCount is a sticky reference count; Remove defers deletion
	// while it is nonzero, letting a plugin (e.g. an in-flight
	// animation) hold a destroyed window alive for one more frame.
	KeepCount int

	Transform Transform

	// Data is the per-window extensible attribute dictionary plugins
	// use to attach private state.
	Data map[string]any
}

// NewWindow returns a window with the defaults a display "create"
// notification installs: visible, not yet mapped, identity transform.
func NewWindow(id WindowID) *Window {
	return &Window{
		ID:        id,
		Visible:   true,
		Transform: NewTransform(),
		Data:      make(map[string]any),
	}
}

// ShouldDraw reports whether the window should be composited this
// frame: not destroyed, not suppressed, and currently visible.
func (w *Window) ShouldDraw() bool {
	return !w.Destroyed && !w.Norender && w.Visible
}
