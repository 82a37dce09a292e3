// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

// ButtonKind distinguishes a button binding registered for press from
// one registered for release.
type ButtonKind int

const (
	ButtonPress ButtonKind = iota
	ButtonRelease
)

// KeyBinding is a registered (keycode, modifier-mask) -> action
// association. Modifier matching on key press is exact equality,
// preserved even though it is asymmetric with button matching, which
// matches on any shared modifier bit.
type KeyBinding struct {
	ID     int
	Key    uint32
	Mod    uint32
	Active bool
	Action func(*Context)
}

// ButtonBinding is a registered (button, modifier-mask, press-or-
// release) -> action association.
type ButtonBinding struct {
	ID     int
	Button uint32
	Mod    uint32
	Kind   ButtonKind
	Active bool
	Action func(*Context)
}

// Hook is a per-frame action with no argument, invoked once per tick
// while Active.
type Hook struct {
	ID     int
	Active bool
	Action func()
}

// Enable and Disable match the enable()/disable() vocabulary used
// throughout the built-in plugins.
func (h *Hook) Enable()  { h.Active = true }
func (h *Hook) Disable() { h.Active = false }

// grabber is the subset of the display adapter (C1) the binding
// registry needs to install/remove grabs as a side effect of
// registration.
type grabber interface {
	GrabKey(key, mod uint32) error
	UngrabKey(key, mod uint32) error
	GrabButton(button, mod uint32) error
	UngrabButton(button, mod uint32) error
}

// BindingRegistry holds the three dictionaries of keys, buttons and
// hooks, each keyed by a stable integer id issued on registration
// (C2).
type BindingRegistry struct {
	disp grabber

	keys    map[int]*KeyBinding
	buttons map[int]*ButtonBinding
	hooks   map[int]*Hook
}

// NewBindingRegistry returns an empty registry that installs/removes
// display-level grabs through disp.
func NewBindingRegistry(disp grabber) *BindingRegistry {
	return &BindingRegistry{
		disp:    disp,
		keys:    make(map[int]*KeyBinding),
		buttons: make(map[int]*ButtonBinding),
		hooks:   make(map[int]*Hook),
	}
}

// freeID returns the smallest non-negative integer not a key of m.
// Uniqueness is the only requirement on binding ids; this just scans,
// which is fine at the scale of a handful of bindings per plugin.
func freeID[V any](m map[int]V) int {
	for i := 0; ; i++ {
		if _, ok := m[i]; !ok {
			return i
		}
	}
}

// AddKey registers kb, optionally installing a matching XGrabKey, and
// returns its id.
func (r *BindingRegistry) AddKey(kb *KeyBinding, grab bool) int {
	kb.ID = freeID(r.keys)
	r.keys[kb.ID] = kb
	if grab && r.disp != nil {
		r.disp.GrabKey(kb.Key, kb.Mod)
	}
	return kb.ID
}

// RemoveKey deregisters the key binding with the given id, ungrabbing
// it first.
func (r *BindingRegistry) RemoveKey(id int) {
	kb, ok := r.keys[id]
	if !ok {
		return
	}
	if r.disp != nil {
		r.disp.UngrabKey(kb.Key, kb.Mod)
	}
	delete(r.keys, id)
}

// AddButton registers bb, optionally installing a matching
// XGrabButton, and returns its id.
func (r *BindingRegistry) AddButton(bb *ButtonBinding, grab bool) int {
	bb.ID = freeID(r.buttons)
	r.buttons[bb.ID] = bb
	if grab && r.disp != nil {
		r.disp.GrabButton(bb.Button, bb.Mod)
	}
	return bb.ID
}

// RemoveButton deregisters the button binding with the given id.
func (r *BindingRegistry) RemoveButton(id int) {
	bb, ok := r.buttons[id]
	if !ok {
		return
	}
	if r.disp != nil {
		r.disp.UngrabButton(bb.Button, bb.Mod)
	}
	delete(r.buttons, id)
}

// AddHook registers h and returns its id.
func (r *BindingRegistry) AddHook(h *Hook) int {
	h.ID = freeID(r.hooks)
	r.hooks[h.ID] = h
	return h.ID
}

// RemoveHook deregisters the hook with the given id.
func (r *BindingRegistry) RemoveHook(id int) {
	delete(r.hooks, id)
}

// DispatchKeyPress invokes every active key binding whose (key, mod)
// exactly matches: equality, not a subset test.
func (r *BindingRegistry) DispatchKeyPress(ctx *Context, key, mod uint32) {
	for _, kb := range r.keys {
		if kb.Key == key && kb.Mod == mod && kb.Active {
			kb.Action(ctx)
		}
	}
}

// DispatchButtonPress invokes every active press binding whose button
// matches and whose modifier mask shares any bit with the event's,
// with one wildcard: a binding registered with every bit set (the
// AnyModifier sentinel, e.g. the core's own focus-follows-click
// binding) matches regardless of the event's modifier state, since an
// AND test against a zero modifier state can never itself be nonzero.
func (r *BindingRegistry) DispatchButtonPress(ctx *Context, button, mod uint32) {
	for _, bb := range r.buttons {
		if bb.Kind != ButtonPress || !bb.Active || bb.Button != button {
			continue
		}
		if bb.Mod == ^uint32(0) || bb.Mod&mod != 0 {
			bb.Action(ctx)
		}
	}
}

// DispatchButtonRelease invokes every active release binding
// unconditionally of modifier state: a release matches any mod.
func (r *BindingRegistry) DispatchButtonRelease(ctx *Context) {
	for _, bb := range r.buttons {
		if bb.Kind == ButtonRelease && bb.Active {
			bb.Action(ctx)
		}
	}
}

// TickHooks invokes every active hook once per frame. Dispatch order
// across hooks is unspecified; Go map iteration order already
// satisfies that.
func (r *BindingRegistry) TickHooks() {
	for _, h := range r.hooks {
		if h.Active {
			h.Action()
		}
	}
}
