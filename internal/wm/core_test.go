// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDisplay is a minimal in-memory wm.Display for core tests: events
// are fed via push, geometry/mapping are recorded rather than applied
// to any real surface.
type fakeDisplay struct {
	pending []Event
	mapped  []WindowID
	geo     map[WindowID]Rect
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{geo: make(map[WindowID]Rect)}
}

func (d *fakeDisplay) push(ev Event) { d.pending = append(d.pending, ev) }

func (d *fakeDisplay) NextEvent() (Event, bool) {
	if len(d.pending) == 0 {
		return Event{}, false
	}
	ev := d.pending[0]
	d.pending = d.pending[1:]
	return ev, true
}
func (d *fakeDisplay) PendingCount() int { return len(d.pending) }
func (d *fakeDisplay) Wait(timeout time.Duration) (bool, error) {
	return len(d.pending) > 0, nil
}
func (d *fakeDisplay) GrabKey(key, mod uint32) error      { return nil }
func (d *fakeDisplay) UngrabKey(key, mod uint32) error    { return nil }
func (d *fakeDisplay) GrabButton(button, mod uint32) error { return nil }
func (d *fakeDisplay) UngrabButton(button, mod uint32) error { return nil }
func (d *fakeDisplay) GrabPointer() error                 { return nil }
func (d *fakeDisplay) UngrabPointer() error                { return nil }
func (d *fakeDisplay) KeysymToKeycode(keysym uint32) (uint32, error) { return keysym, nil }
func (d *fakeDisplay) MapWindow(id WindowID) error {
	d.mapped = append(d.mapped, id)
	return nil
}
func (d *fakeDisplay) GetGeometry(id WindowID) (Rect, error) {
	return d.geo[id], nil
}

func TestNewCoreInstallsDefaultFocusBindings(t *testing.T) {
	core := NewCore(newFakeDisplay(), 1920, 1080)
	w := NewWindow(1)
	w.Geometry = Rect{X: 0, Y: 0, W: 100, H: 100}
	core.Stack.Add(w)

	ev := Event{Type: EventButtonPress, Window: 1, Button: 1, Mod: 0, X: 10, Y: 10}
	core.handleEvent(ev)

	assert.Same(t, w, core.Stack.FocusedWindow())
}

func TestAddWindowSetsTransientLink(t *testing.T) {
	core := NewCore(newFakeDisplay(), 800, 600)
	w := core.AddWindow(5, 1, true)
	assert.True(t, w.HasTransientFor)
	assert.Equal(t, WindowID(1), w.TransientFor)
}

func TestInstallBackgroundTilesEveryWorkspaceCell(t *testing.T) {
	core := NewCore(newFakeDisplay(), 800, 600)
	core.InstallBackground(42)

	count := 0
	core.Stack.All(func(w *Window) {
		if w.Type == WindowTypeDesktop {
			count++
			assert.Equal(t, uint32(42), w.Texture)
		}
	})
	assert.Equal(t, core.Workspace.VWidth*core.Workspace.VHeight, count)
}

func TestHandleEventCreateNotifyMapsAndAddsWindow(t *testing.T) {
	disp := newFakeDisplay()
	core := NewCore(disp, 800, 600)

	core.handleEvent(Event{Type: EventCreateNotify, Window: 7})
	assert.Contains(t, disp.mapped, WindowID(7))
	require.NotNil(t, core.Stack.Find(7))
}

func TestHandleEventDestroyNotifyExcludesWindowFromPaintOrder(t *testing.T) {
	core := NewCore(newFakeDisplay(), 800, 600)
	w := NewWindow(3)
	w.Geometry = Rect{X: 0, Y: 0, W: 10, H: 10}
	core.Stack.Add(w)

	core.handleEvent(Event{Type: EventDestroyNotify, Window: 3})

	var drawn []WindowID
	core.Stack.IterPaintOrder(func(win *Window) { drawn = append(drawn, win.ID) })
	assert.Empty(t, drawn)
}

func TestHandleEventMapNotifyClearsNorenderAndReadsGeometry(t *testing.T) {
	disp := newFakeDisplay()
	core := NewCore(disp, 800, 600)
	w := NewWindow(9)
	w.Norender = true
	core.Stack.Add(w)
	disp.geo[9] = Rect{X: 1, Y: 2, W: 3, H: 4}

	core.handleEvent(Event{Type: EventMapNotify, Window: 9})

	assert.False(t, w.Norender)
	assert.Equal(t, Rect{X: 1, Y: 2, W: 3, H: 4}, w.Geometry)
}

func TestCommitWorkspaceWrapsAroundModularly(t *testing.T) {
	core := NewCore(newFakeDisplay(), 800, 600)
	core.Workspace.VWidth, core.Workspace.VHeight = 3, 3
	core.Workspace.VX, core.Workspace.VY = 2, 0

	w := NewWindow(1)
	w.Geometry = Rect{X: 50, Y: 50, W: 10, H: 10}
	core.Stack.Add(w)

	core.CommitWorkspace(1, 0)

	assert.Equal(t, 1, core.Workspace.VX, "VX moves opposite the window translation direction")
	assert.Equal(t, 850, w.Geometry.X)
}

func TestRunStopsOnContextCancellation(t *testing.T) {
	core := NewCore(newFakeDisplay(), 800, 600)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := core.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPanicsOnConcurrentInvocation(t *testing.T) {
	disp := newFakeDisplay()
	core := NewCore(disp, 800, 600)

	loopRunning = 1
	defer func() { loopRunning = 0 }()

	assert.Panics(t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		core.Run(ctx)
	})
}
