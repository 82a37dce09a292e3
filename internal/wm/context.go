// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

// EventType enumerates the display events the core observes.
type EventType int

const (
	EventKeyPress EventType = iota
	EventKeyRelease
	EventButtonPress
	EventButtonRelease
	EventMotionNotify
	EventCreateNotify
	EventDestroyNotify
	EventMapNotify
	EventUnmapNotify
	EventExpose
	EventFocusChange
	EventPropertyNotify
	EventEnterNotify
	EventLeaveNotify
	EventDamageNotify
)

// Event is the backend-agnostic shape of a single display event; the
// X11 adapter (C1) translates XEvent into this. Only the fields a
// given Type populates are meaningful, mirroring XEvent's own union
// shape.
type Event struct {
	Type EventType

	Window WindowID

	Parent    WindowID
	HasParent bool

	Key    uint32
	Mod    uint32
	Button uint32

	// X, Y are root-relative pointer coordinates, populated on
	// ButtonPress/Release and MotionNotify.
	X, Y int
}

// Context wraps one display event for delivery to a key/button
// binding action. Hook actions take no argument; a Context delivered
// with a nil Event pointer must be treated as a no-op by plugin
// callbacks.
type Context struct {
	Event *Event
}

// NewContext wraps ev in a Context.
func NewContext(ev Event) *Context {
	return &Context{Event: &ev}
}
