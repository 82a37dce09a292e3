// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

import "goki.dev/ordmap"

// HitTestFunc maps a screen point to the topmost window under it, or
// nil. It is the extension point the Expo plugin replaces while
// active.
type HitTestFunc func(x, y int) *Window

// WindowStack is the ordered, bottom-to-top sequence of managed
// windows (C3). The underlying ordmap gives Add/Remove/Find stable
// O(1)-ish lookup by id while preserving paint order, the shape
// goki.dev/ordmap is built for (insertion-ordered map with positional
// operations).
type WindowStack struct {
	wins ordmap.Map[WindowID, *Window]

	focus   WindowID
	hasFocus bool

	hitTest HitTestFunc
}

// NewWindowStack returns an empty stack whose hit-test defaults to
// the stack's own geometric lookup.
func NewWindowStack() *WindowStack {
	s := &WindowStack{wins: *ordmap.New[WindowID, *Window]()}
	s.hitTest = s.defaultHitTest
	return s
}

// Add inserts w into paint order. A Desktop-type window goes directly
// above the existing Desktop-type
// windows; any other window goes on top, but below the focused window
// so that the focus stays topmost.
func (s *WindowStack) Add(w *Window) {
	insertAt := s.wins.Len()
	if w.Type == WindowTypeDesktop {
		insertAt = 0
		for insertAt < s.wins.Len() && s.wins.ValueByIndex(insertAt).Type == WindowTypeDesktop {
			insertAt++
		}
	} else if s.hasFocus {
		if idx, ok := s.wins.IndexByKeyTry(s.focus); ok {
			insertAt = idx
		}
	}
	if insertAt >= s.wins.Len() {
		s.wins.Add(w.ID, w)
		return
	}
	s.wins.InsertAtIndex(insertAt, w.ID, w)
}

// Remove marks w destroyed and, if force or its KeepCount is zero,
// deletes it from the stack.
func (s *WindowStack) Remove(w *Window, force bool) {
	w.Destroyed = true
	if !force && w.KeepCount != 0 {
		return
	}
	idx, ok := s.wins.IndexByKeyTry(w.ID)
	if !ok {
		return
	}
	s.wins.DeleteIndex(idx, idx+1)
	if s.hasFocus && s.focus == w.ID {
		s.hasFocus = false
	}
}

// Find returns the window with the given display id, or nil.
func (s *WindowStack) Find(id WindowID) *Window {
	w, ok := s.wins.ValueByKeyTry(id)
	if !ok {
		return nil
	}
	return w
}

// Focus raises w to the top of paint order and sets it as focused: the
// focused window is always rendered last.
func (s *WindowStack) Focus(w *Window) {
	if w == nil {
		return
	}
	idx, ok := s.wins.IndexByKeyTry(w.ID)
	if !ok {
		return
	}
	s.wins.DeleteIndex(idx, idx+1)
	s.wins.Add(w.ID, w)
	s.focus = w.ID
	s.hasFocus = true
}

// FocusedWindow returns the currently focused window, or nil.
func (s *WindowStack) FocusedWindow() *Window {
	if !s.hasFocus {
		return nil
	}
	return s.Find(s.focus)
}

// IterPaintOrder calls fn for every window bottom-to-top, skipping
// those that should not be drawn.
func (s *WindowStack) IterPaintOrder(fn func(*Window)) {
	for i := 0; i < s.wins.Len(); i++ {
		w := s.wins.ValueByIndex(i)
		if w.ShouldDraw() {
			fn(w)
		}
	}
}

// All calls fn for every window in the stack regardless of visibility,
// used by workspace-switch geometry translation which must move every
// window, including norender/destroyed ones still pending removal.
func (s *WindowStack) All(fn func(*Window)) {
	for i := 0; i < s.wins.Len(); i++ {
		fn(s.wins.ValueByIndex(i))
	}
}

// HitTest returns the topmost window whose geometry contains (x, y),
// honoring any installed override.
func (s *WindowStack) HitTest(x, y int) *Window {
	return s.hitTest(x, y)
}

// SetHitTest installs a hit-test override and returns the previous
// one, so callers can save-and-restore it.
func (s *WindowStack) SetHitTest(fn HitTestFunc) HitTestFunc {
	prev := s.hitTest
	s.hitTest = fn
	return prev
}

// DefaultHitTest exposes the stack's own geometric hit-test, the
// function Expo saves before installing its remapped version.
func (s *WindowStack) DefaultHitTest(x, y int) *Window {
	return s.defaultHitTest(x, y)
}

func (s *WindowStack) defaultHitTest(x, y int) *Window {
	for i := s.wins.Len() - 1; i >= 0; i-- {
		w := s.wins.ValueByIndex(i)
		if w.Destroyed || w.Norender || !w.Visible {
			continue
		}
		if w.Geometry.Contains(x, y) {
			return w
		}
	}
	return nil
}

// Len returns the number of windows currently in the stack.
func (s *WindowStack) Len() int { return s.wins.Len() }
