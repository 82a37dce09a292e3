// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fire-wm/fire/internal/config"
)

// Display is the contract the core needs from the display adapter
// (C1): fetching events, installing/removing grabs, and the two
// window operations the core itself must issue (map, geometry
// query). The X11 implementation lives in internal/x11.
type Display interface {
	// NextEvent returns one pending event without blocking; ok is
	// false if none was pending.
	NextEvent() (Event, bool)
	// PendingCount reports how many events are currently queued.
	PendingCount() int
	// Wait blocks on the display connection's file descriptor for up
	// to timeout, returning whether it became readable.
	Wait(timeout time.Duration) (readable bool, err error)

	GrabKey(key, mod uint32) error
	UngrabKey(key, mod uint32) error
	GrabButton(button, mod uint32) error
	UngrabButton(button, mod uint32) error
	GrabPointer() error
	UngrabPointer() error

	// KeysymToKeycode resolves a keysym (e.g. the value named XK_h in
	// X11/keysymdef.h) to the hardware keycode the current keyboard
	// mapping assigns it, for plugins that bind a symbolic key rather
	// than a raw keycode.
	KeysymToKeycode(keysym uint32) (uint32, error)

	MapWindow(id WindowID) error
	GetGeometry(id WindowID) (Rect, error)
}

// Workspace is the virtual-desktop grid state.
type Workspace struct {
	VX, VY          int
	VWidth, VHeight int
}

// RefreshHz is the core's target refresh rate.
const RefreshHz = 60

// frameSlack absorbs scheduler jitter: the target period is shortened
// by this much so a frame that wakes slightly early still renders on
// schedule.
const frameSlack = 50 * time.Microsecond

var loopRunning int32

// Core is the event-and-dispatch loop (C6) together with the state
// the other core subsystems operate on: the window stack (C3), the
// binding registry (C2), the ownership arbiter (C5) and the global
// transforms (C4). Plugins (C7) receive a *Core at Init and hold it
// by reference instead of reaching through a global.
type Core struct {
	Disp     Display
	Stack    *WindowStack
	Bindings *BindingRegistry
	Arbiter  *OwnershipArbiter
	Global   Global
	Workspace Workspace

	Width, Height  int
	MouseX, MouseY int
	Redraw         bool

	// Render performs the compositor step (C4): walking the stack in
	// paint order, uploading each window's composed matrix and
	// drawing its quad, then presenting. It is supplied by the
	// external rendering collaborator and is nil-safe so the core is
	// testable without a GPU context.
	Render func(*Core)

	plugins []Plugin

	// now is the clock Run/Tick use; overridable in tests.
	now func() time.Time

	bgSeq uint32
}

// NewCore returns a core sized to width x height with a fresh window
// stack, binding registry and ownership arbiter, and a 3x3 workspace
// grid.
func NewCore(disp Display, width, height int) *Core {
	c := &Core{
		Disp:   disp,
		Stack:  NewWindowStack(),
		Global: NewGlobal(),
		Width:  width,
		Height: height,
		Workspace: Workspace{
			VWidth:  3,
			VHeight: 3,
		},
		now: time.Now,
	}
	c.Bindings = NewBindingRegistry(disp)
	c.Arbiter = NewOwnershipArbiter()
	c.installDefaultBindings()
	return c
}

// installDefaultBindings registers the core's own always-active
// focus-follows-click binding, present in the core independent of any
// plugin.
func (c *Core) installDefaultBindings() {
	focus := &ButtonBinding{
		Kind:   ButtonPress,
		Button: 0, // set per copy below, one binding each for buttons 1-3
		Mod:    ^uint32(0),
		Active: true,
		Action: func(ctx *Context) {
			if ctx == nil || ctx.Event == nil {
				return
			}
			w := c.Stack.Find(ctx.Event.Window)
			if w != nil {
				c.Stack.Focus(w)
				c.Redraw = true
			}
		},
	}
	// The default focus binding matches any of Button1/2/3 with any
	// modifier. Registering three bindings, one per button, reuses the
	// ordinary per-button matching instead of special-casing "any
	// button"; the all-bits Mod takes DispatchButtonPress's
	// AnyModifier wildcard.
	for _, btn := range [...]uint32{1, 2, 3} {
		b := *focus
		b.Button = btn
		c.Bindings.AddButton(&b, false)
	}
}

// RegisterPlugin runs plugin's Init against this core and keeps track
// of it for UpdateConfiguration fan-out.
func (c *Core) RegisterPlugin(p Plugin) {
	p.Init(c)
	c.plugins = append(c.plugins, p)
}

// UpdateConfiguration reads cfg's per-plugin option values into every
// registered plugin's option registry, skipping any option a plugin
// has flagged AlreadySet, then calls each plugin's UpdateConfiguration
// hook so it can recompute any state derived from its options. cfg may
// be nil, in which case only the hooks run.
func (c *Core) UpdateConfiguration(cfg *config.Options) {
	if cfg != nil {
		for _, p := range c.plugins {
			values := cfg.Plugins[p.Name()]
			for key, opt := range p.Options() {
				if opt.AlreadySet {
					continue
				}
				if v, ok := values[key]; ok {
					opt.Value = v
				}
			}
		}
	}
	for _, p := range c.plugins {
		p.UpdateConfiguration()
	}
}

// AddWindow creates and inserts a window in response to a display
// "create" notification. If hasParent is true and parent differs from
// the root, the new window's TransientFor link is set (weak,
// lookup-only).
func (c *Core) AddWindow(id WindowID, parent WindowID, hasParent bool) *Window {
	w := NewWindow(id)
	if hasParent {
		w.TransientFor = parent
		w.HasTransientFor = true
	}
	c.Stack.Add(w)
	return w
}

// InstallBackground tiles texture across one desktop-type window per
// workspace cell. Desktop windows use synthetic ids outside the X11
// resource id range so they never collide with a real window's id in
// the stack's id-keyed storage.
func (c *Core) InstallBackground(texture uint32) {
	const syntheticBase = WindowID(0xf0000000)
	for i := 0; i < c.Workspace.VHeight; i++ {
		for j := 0; j < c.Workspace.VWidth; j++ {
			w := NewWindow(syntheticBase + WindowID(c.bgSeq))
			c.bgSeq++
			w.Type = WindowTypeDesktop
			w.Texture = texture
			w.Geometry = Rect{X: j * c.Width, Y: i * c.Height, W: c.Width, H: c.Height}
			c.Stack.Add(w)
		}
	}
	c.Redraw = true
}

// CommitWorkspace is the non-animated workspace-switch primitive:
// translate every window's pixel geometry by (dx*Width, dy*Height) and
// advance (VX, VY) by (-dx, -dy) modulo the grid size. It is the step
// the animated WorkspaceSwitch plugin calls at the end of each
// segment, and is kept as a core method (rather than folded into the
// plugin) since it operates directly on the stack and workspace state
// the core owns.
//
// VX/VY move opposite the window translation: sliding every window's
// pixels by +dx*Width brings the neighbouring cell on the -dx side
// onto screen, which is the cell at index VX-dx, not VX+dx.
// Moving windows right (dx=1) must decrease VX.
//
// Window geometry wraps modulo the full virtual-grid span
// (VWidth*Width, VHeight*Height), not just VX/VY: the grid is a torus
// (§3), so a window's pixel position is only meaningful up to that
// span and a full loop around an axis must return every window to its
// starting coordinate exactly, not drift by one grid-width per lap.
func (c *Core) CommitWorkspace(dx, dy int) {
	vw, vh := c.Workspace.VWidth, c.Workspace.VHeight
	totalW, totalH := vw*c.Width, vh*c.Height
	c.Stack.All(func(w *Window) {
		w.Geometry.X = floorMod(w.Geometry.X+dx*c.Width, totalW)
		w.Geometry.Y = floorMod(w.Geometry.Y+dy*c.Height, totalH)
	})
	c.Workspace.VX = floorMod(c.Workspace.VX-dx, vw)
	c.Workspace.VY = floorMod(c.Workspace.VY-dy, vh)
	c.Redraw = true
}

// floorMod returns a mod m with a result in [0, m), unlike Go's %
// which can return a negative remainder for a negative dividend.
func floorMod(a, m int) int {
	if m == 0 {
		return 0
	}
	return (a%m + m) % m
}

// handleEvent dispatches one event to the binding registry and
// updates the per-frame bookkeeping: mouse coordinates and the redraw
// bit.
func (c *Core) handleEvent(ev Event) {
	switch ev.Type {
	case EventExpose:
		c.Redraw = true

	case EventKeyPress:
		c.Bindings.DispatchKeyPress(NewContext(ev), ev.Key, ev.Mod)
		c.Redraw = true

	case EventCreateNotify:
		if err := c.Disp.MapWindow(ev.Window); err != nil {
			slog.Error("map newly created window", "window", ev.Window, "err", err)
		}
		c.AddWindow(ev.Window, ev.Parent, ev.HasParent)
		c.Redraw = true

	case EventDestroyNotify:
		w := c.Stack.Find(ev.Window)
		if w == nil {
			return
		}
		c.Stack.Remove(w, false)
		c.Redraw = true

	case EventMapNotify:
		w := c.Stack.Find(ev.Window)
		if w == nil {
			return
		}
		w.Norender = false
		if geo, err := c.Disp.GetGeometry(w.ID); err == nil {
			w.Geometry = geo
		}
		c.Redraw = true

	case EventUnmapNotify:
		w := c.Stack.Find(ev.Window)
		if w == nil {
			return
		}
		w.Norender = true
		c.Redraw = true

	case EventButtonPress:
		c.MouseX, c.MouseY = ev.X, ev.Y
		c.Bindings.DispatchButtonPress(NewContext(ev), ev.Button, ev.Mod)

	case EventButtonRelease:
		c.Bindings.DispatchButtonRelease(NewContext(ev))

	case EventMotionNotify:
		c.MouseX, c.MouseY = ev.X, ev.Y

	case EventDamageNotify:
		c.Redraw = true
	}
}

// DrainEvents consumes every currently pending event.
func (c *Core) DrainEvents() {
	for c.Disp.PendingCount() > 0 {
		ev, ok := c.Disp.NextEvent()
		if !ok {
			return
		}
		c.handleEvent(ev)
	}
}

// renderAllWindows performs the C4 render step if a collaborator was
// supplied.
func (c *Core) renderAllWindows() {
	if c.Render != nil {
		c.Render(c)
	}
}

// Run is the frame-paced cooperative scheduler (C6). It blocks until
// ctx is canceled or the display adapter reports an error (typically
// connection loss or a caller-initiated shutdown).
//
// Only one Run may execute at a time process-wide; a second
// concurrent call panics rather than silently racing shared window
// state. Contention here is a programming error, not a runtime
// condition to recover from.
func (c *Core) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&loopRunning, 0, 1) {
		panic("wm: Core.Run called while another loop is already running")
	}
	defer atomic.StoreInt32(&loopRunning, 0)

	c.Redraw = true
	period := time.Second/RefreshHz - frameSlack
	before := c.now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.DrainEvents()

		elapsed := c.now().Sub(before)
		if elapsed < period {
			// Block for the remainder of the period. Whether or not
			// the fd became readable, loop back to the top: a
			// readable fd means there is more to drain immediately: a
			// timeout means the next elapsed check will clear the
			// period and fall through to the tick/render branch
			// below.
			if _, err := c.Disp.Wait(period - elapsed); err != nil {
				return err
			}
			continue
		}

		c.Bindings.TickHooks()
		if c.Redraw {
			c.renderAllWindows()
			c.Redraw = false
		}
		before = c.now()
	}
}
