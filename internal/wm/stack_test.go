// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddKeepsDesktopWindowsBelowNormalOnes(t *testing.T) {
	s := NewWindowStack()
	desktop := NewWindow(1)
	desktop.Type = WindowTypeDesktop
	s.Add(desktop)

	normal := NewWindow(2)
	s.Add(normal)

	order := []WindowID{}
	s.All(func(w *Window) { order = append(order, w.ID) })
	assert.Equal(t, []WindowID{1, 2}, order)
}

func TestFocusRaisesWindowToTop(t *testing.T) {
	s := NewWindowStack()
	a := NewWindow(1)
	b := NewWindow(2)
	s.Add(a)
	s.Add(b)

	s.Focus(a)

	order := []WindowID{}
	s.All(func(w *Window) { order = append(order, w.ID) })
	assert.Equal(t, []WindowID{2, 1}, order)
	assert.Same(t, a, s.FocusedWindow())
}

func TestRemoveDeletesUnlessKeptAlive(t *testing.T) {
	s := NewWindowStack()
	w := NewWindow(1)
	w.KeepCount = 1
	s.Add(w)

	s.Remove(w, false)
	require.NotNil(t, s.Find(1), "window with nonzero KeepCount should survive a soft remove")
	assert.True(t, w.Destroyed)

	w.KeepCount = 0
	s.Remove(w, false)
	assert.Nil(t, s.Find(1))
}

func TestRemoveForceIgnoresKeepCount(t *testing.T) {
	s := NewWindowStack()
	w := NewWindow(1)
	w.KeepCount = 5
	s.Add(w)

	s.Remove(w, true)
	assert.Nil(t, s.Find(1))
}

func TestIterPaintOrderSkipsDestroyedNorenderAndHidden(t *testing.T) {
	s := NewWindowStack()
	visible := NewWindow(1)
	s.Add(visible)

	hidden := NewWindow(2)
	hidden.Norender = true
	s.Add(hidden)

	destroyed := NewWindow(3)
	destroyed.Destroyed = true
	s.Add(destroyed)

	var drawn []WindowID
	s.IterPaintOrder(func(w *Window) { drawn = append(drawn, w.ID) })
	assert.Equal(t, []WindowID{1}, drawn)
}

func TestHitTestReturnsTopmostContainingWindow(t *testing.T) {
	s := NewWindowStack()
	bottom := NewWindow(1)
	bottom.Geometry = Rect{X: 0, Y: 0, W: 100, H: 100}
	s.Add(bottom)

	top := NewWindow(2)
	top.Geometry = Rect{X: 0, Y: 0, W: 50, H: 50}
	s.Add(top)

	assert.Same(t, top, s.HitTest(10, 10))
	assert.Same(t, bottom, s.HitTest(75, 75))
	assert.Nil(t, s.HitTest(500, 500))
}

func TestSetHitTestSaveRestore(t *testing.T) {
	s := NewWindowStack()
	override := func(x, y int) *Window { return nil }
	prev := s.SetHitTest(override)
	assert.NotNil(t, prev)

	s.SetHitTest(prev)
	w := NewWindow(1)
	w.Geometry = Rect{X: 0, Y: 0, W: 10, H: 10}
	s.Add(w)
	assert.Same(t, w, s.HitTest(5, 5))
}
