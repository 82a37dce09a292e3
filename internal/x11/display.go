// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x11 implements the display adapter (C1): it owns the X11
// connection, the root and composite-overlay windows, and translates
// the raw protocol into the backend-agnostic wm.Event stream.
package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/damage"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/fire-wm/fire/internal/wm"
)

// Shape-kind byte values from the X11 Shape extension protocol
// (Bounding = 0, Input = 2); the xfixes SetWindowShapeRegion request
// takes one of these rather than an enum type, so they're defined
// directly against the wire protocol instead of guessing at a Go
// constant name this retrieval pack doesn't otherwise exercise.
const (
	shapeKindBounding byte = 0
	shapeKindInput    byte = 2
)

// ErrAnotherManagerPresent is returned by Open when the composite
// redirect request fails with BadAccess, meaning another compositing
// manager already owns the root window.
var ErrAnotherManagerPresent = errors.New("x11: another compositing manager is already running")

const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskFocusChange |
	xproto.EventMaskExposure |
	xproto.EventMaskButton1Motion

// Display is the X11 implementation of wm.Display.
type Display struct {
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	root    xproto.Window
	overlay xproto.Window

	// OnWindowError, if set, is called from the read loop when a
	// recoverable-per-window protocol error names a known window.
	// main.go wires this to mark the window norender in the stack.
	OnWindowError func(id wm.WindowID)

	events   chan wm.Event
	buffered *wm.Event
	closed   chan struct{}
}

// Open connects to the X server, installs itself as the compositing
// redirector for the root window's subwindows, and acquires the
// composite overlay as a click-through surface. It returns
// ErrAnotherManagerPresent if a compositing manager is already
// running.
func Open() (*Display, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: open display: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	if err := composite.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: composite extension unavailable: %w", err)
	}
	if err := damage.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: damage extension unavailable: %w", err)
	}
	if err := xfixes.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: xfixes extension unavailable: %w", err)
	}
	if err := randr.Init(conn); err != nil {
		slog.Warn("randr extension unavailable, screen-change notifications disabled", "err", err)
	}

	d := &Display{
		conn:   conn,
		screen: screen,
		root:   screen.Root,
		events: make(chan wm.Event, 256),
		closed: make(chan struct{}),
	}

	if err := composite.RedirectSubwindowsChecked(conn, d.root, composite.RedirectManual).Check(); err != nil {
		conn.Close()
		if _, ok := err.(xproto.AccessError); ok {
			return nil, ErrAnotherManagerPresent
		}
		return nil, fmt.Errorf("x11: redirect subwindows: %w", err)
	}

	if err := xproto.ChangeWindowAttributesChecked(conn, d.root, xproto.CwEventMask,
		[]uint32{rootEventMask}).Check(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: select root events: %w", err)
	}

	overlayReply, err := composite.GetOverlayWindow(conn, d.root).Reply()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: get overlay window: %w", err)
	}
	d.overlay = overlayReply.OverlayWin

	if err := d.makeOverlayClickThrough(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: make overlay click-through: %w", err)
	}

	if err := randr.SelectInputChecked(conn, d.root, randr.NotifyMaskScreenChange).Check(); err != nil {
		slog.Warn("randr select input failed", "err", err)
	}

	go d.readLoop()
	return d, nil
}

// makeOverlayClickThrough sets the overlay's bounding shape to the
// whole window (region 0, meaning "none") and its input shape to an
// empty region, so pointer events pass through to the windows below.
func (d *Display) makeOverlayClickThrough() error {
	regionID, err := xfixes.NewRegionId(d.conn)
	if err != nil {
		return err
	}
	if err := xfixes.CreateRegionChecked(d.conn, regionID, nil).Check(); err != nil {
		return err
	}
	if err := xfixes.SetWindowShapeRegionChecked(d.conn, d.overlay, shapeKindBounding, 0, 0, 0).Check(); err != nil {
		return err
	}
	if err := xfixes.SetWindowShapeRegionChecked(d.conn, d.overlay, shapeKindInput, 0, 0, uint32(regionID)).Check(); err != nil {
		return err
	}
	return xfixes.DestroyRegionChecked(d.conn, regionID).Check()
}

// Root returns the root window id.
func (d *Display) Root() wm.WindowID { return wm.WindowID(d.root) }

// Overlay returns the composite overlay window id, the surface the GL
// context is created against.
func (d *Display) Overlay() wm.WindowID { return wm.WindowID(d.overlay) }

// ScreenSize returns the root screen's pixel dimensions.
func (d *Display) ScreenSize() (width, height int) {
	return int(d.screen.WidthInPixels), int(d.screen.HeightInPixels)
}

// Close releases the overlay window and closes the connection.
func (d *Display) Close() {
	composite.ReleaseOverlayWindow(d.conn, d.root)
	d.conn.Close()
}

func (d *Display) readLoop() {
	defer close(d.events)
	for {
		ev, xerr := d.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			d.handleError(xerr)
			continue
		}
		if sc, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
			slog.Info("display resolution changed", "width", sc.Width, "height", sc.Height)
			continue
		}
		if wev, ok := d.translateEvent(ev); ok {
			d.events <- wev
		}
	}
}

func (d *Display) handleError(xerr xgb.Error) {
	sev, badWindow, hasWindow := Classify(xerr)
	switch sev {
	case SeverityFatal:
		slog.Error("fatal display error", "err", xerr)
	case SeverityRecoverablePerWindow:
		slog.Warn("display error against known window", "window", badWindow, "err", xerr)
		if hasWindow && d.OnWindowError != nil {
			d.OnWindowError(wm.WindowID(badWindow))
		}
	default:
		slog.Debug("display error", "err", xerr)
	}
}

func (d *Display) translateEvent(ev xgb.Event) (wm.Event, bool) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return wm.Event{Type: wm.EventKeyPress, Window: wm.WindowID(e.Event), Key: uint32(e.Detail), Mod: uint32(e.State)}, true
	case xproto.KeyReleaseEvent:
		return wm.Event{Type: wm.EventKeyRelease, Window: wm.WindowID(e.Event), Key: uint32(e.Detail), Mod: uint32(e.State)}, true
	case xproto.ButtonPressEvent:
		return wm.Event{Type: wm.EventButtonPress, Window: wm.WindowID(e.Event), Button: uint32(e.Detail), Mod: uint32(e.State), X: int(e.RootX), Y: int(e.RootY)}, true
	case xproto.ButtonReleaseEvent:
		return wm.Event{Type: wm.EventButtonRelease, Window: wm.WindowID(e.Event), Button: uint32(e.Detail), Mod: uint32(e.State), X: int(e.RootX), Y: int(e.RootY)}, true
	case xproto.MotionNotifyEvent:
		return wm.Event{Type: wm.EventMotionNotify, Window: wm.WindowID(e.Event), X: int(e.RootX), Y: int(e.RootY)}, true
	case xproto.CreateNotifyEvent:
		return wm.Event{Type: wm.EventCreateNotify, Window: wm.WindowID(e.Window), Parent: wm.WindowID(e.Parent), HasParent: e.Parent != d.root}, true
	case xproto.DestroyNotifyEvent:
		return wm.Event{Type: wm.EventDestroyNotify, Window: wm.WindowID(e.Window)}, true
	case xproto.MapNotifyEvent:
		return wm.Event{Type: wm.EventMapNotify, Window: wm.WindowID(e.Window)}, true
	case xproto.UnmapNotifyEvent:
		return wm.Event{Type: wm.EventUnmapNotify, Window: wm.WindowID(e.Window)}, true
	case xproto.ExposeEvent:
		return wm.Event{Type: wm.EventExpose, Window: wm.WindowID(e.Window)}, true
	case xproto.FocusInEvent:
		return wm.Event{Type: wm.EventFocusChange, Window: wm.WindowID(e.Event)}, true
	case xproto.FocusOutEvent:
		return wm.Event{Type: wm.EventFocusChange, Window: wm.WindowID(e.Event)}, true
	case xproto.PropertyNotifyEvent:
		return wm.Event{Type: wm.EventPropertyNotify, Window: wm.WindowID(e.Window)}, true
	case xproto.EnterNotifyEvent:
		return wm.Event{Type: wm.EventEnterNotify, Window: wm.WindowID(e.Event), X: int(e.RootX), Y: int(e.RootY)}, true
	case xproto.LeaveNotifyEvent:
		return wm.Event{Type: wm.EventLeaveNotify, Window: wm.WindowID(e.Event), X: int(e.RootX), Y: int(e.RootY)}, true
	case damage.NotifyEvent:
		return wm.Event{Type: wm.EventDamageNotify, Window: wm.WindowID(e.Drawable)}, true
	default:
		return wm.Event{}, false
	}
}

// NextEvent implements wm.Display.
func (d *Display) NextEvent() (wm.Event, bool) {
	if d.buffered != nil {
		ev := *d.buffered
		d.buffered = nil
		return ev, true
	}
	select {
	case ev, ok := <-d.events:
		return ev, ok
	default:
		return wm.Event{}, false
	}
}

// PendingCount implements wm.Display.
func (d *Display) PendingCount() int {
	n := len(d.events)
	if d.buffered != nil {
		n++
	}
	return n
}

// Wait implements wm.Display, blocking on the background read loop's
// channel instead of a raw file descriptor (xgb does not expose one);
// a readable result primes NextEvent with the event that arrived.
func (d *Display) Wait(timeout time.Duration) (bool, error) {
	if d.buffered != nil {
		return true, nil
	}
	select {
	case ev, ok := <-d.events:
		if !ok {
			return false, errors.New("x11: display connection closed")
		}
		d.buffered = &ev
		return true, nil
	case <-time.After(timeout):
		return false, nil
	}
}

// GrabKey implements wm.Display.
func (d *Display) GrabKey(key, mod uint32) error {
	return xproto.GrabKeyChecked(d.conn, false, d.root, uint16(mod), xproto.Keycode(key),
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
}

// UngrabKey implements wm.Display.
func (d *Display) UngrabKey(key, mod uint32) error {
	return xproto.UngrabKeyChecked(d.conn, xproto.Keycode(key), d.root, uint16(mod)).Check()
}

// GrabButton implements wm.Display.
func (d *Display) GrabButton(button, mod uint32) error {
	const mask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease
	return xproto.GrabButtonChecked(d.conn, false, d.root, uint16(mask),
		xproto.GrabModeAsync, xproto.GrabModeAsync, 0, 0,
		xproto.ButtonIndex(button), uint16(mod)).Check()
}

// UngrabButton implements wm.Display.
func (d *Display) UngrabButton(button, mod uint32) error {
	return xproto.UngrabButtonChecked(d.conn, xproto.ButtonIndex(button), d.root, uint16(mod)).Check()
}

// GrabPointer implements wm.Display, diverting pointer events to the
// overlay window for the duration of the grab.
func (d *Display) GrabPointer() error {
	const mask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion
	_, err := xproto.GrabPointer(d.conn, false, d.overlay, uint16(mask),
		xproto.GrabModeAsync, xproto.GrabModeAsync, 0, 0, xproto.TimeCurrentTime).Reply()
	return err
}

// UngrabPointer implements wm.Display.
func (d *Display) UngrabPointer() error {
	return xproto.UngrabPointerChecked(d.conn, xproto.TimeCurrentTime).Check()
}

// MapWindow implements wm.Display.
func (d *Display) MapWindow(id wm.WindowID) error {
	return xproto.MapWindowChecked(d.conn, xproto.Window(id)).Check()
}

// GetGeometry implements wm.Display.
func (d *Display) GetGeometry(id wm.WindowID) (wm.Rect, error) {
	reply, err := xproto.GetGeometry(d.conn, xproto.Drawable(id)).Reply()
	if err != nil {
		return wm.Rect{}, err
	}
	return wm.Rect{X: int(reply.X), Y: int(reply.Y), W: int(reply.Width), H: int(reply.Height)}, nil
}

// KeysymToKeycode implements wm.Display by querying the server's
// current keyboard mapping (the XGetKeyboardMapping equivalent
// XKeysymToKeycode wraps) and scanning it for keysym.
func (d *Display) KeysymToKeycode(keysym uint32) (uint32, error) {
	setup := xproto.Setup(d.conn)
	count := int(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(d.conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		return 0, fmt.Errorf("x11: get keyboard mapping: %w", err)
	}
	perKeycode := int(reply.KeysymsPerKeycode)
	for i := 0; i < count; i++ {
		for j := 0; j < perKeycode; j++ {
			if uint32(reply.Keysyms[i*perKeycode+j]) == keysym {
				return uint32(int(setup.MinKeycode) + i), nil
			}
		}
	}
	return 0, fmt.Errorf("x11: keysym %#x not found in keyboard mapping", keysym)
}
