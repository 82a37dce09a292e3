// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

// pointerGrabber is the subset of the display adapter an ownership
// ticket needs to (un)grab the pointer on activation.
type pointerGrabber interface {
	GrabPointer() error
	UngrabPointer() error
}

// Ownership is a plugin's identity token: a name unique across
// plugins, the set of peer names it is compatible with, a
// "compatible with everyone" escape hatch, a "bypasses all checks"
// escape hatch, and the active/grabbed bits the arbiter and the
// plugin itself flip.
type Ownership struct {
	Name      string
	Compat    map[string]bool
	CompatAll bool
	Special   bool
	Active    bool
	Grabbed   bool

	disp pointerGrabber
}

// NewOwnership returns a ticket for name, grabbing/ungrabbing the
// pointer through disp.
func NewOwnership(name string, disp pointerGrabber) *Ownership {
	return &Ownership{
		Name:   name,
		Compat: make(map[string]bool),
		disp:   disp,
	}
}

// Grab acquires the display-level pointer grab.
func (o *Ownership) Grab() error {
	if o.disp != nil {
		if err := o.disp.GrabPointer(); err != nil {
			return err
		}
	}
	o.Grabbed = true
	return nil
}

// Ungrab releases the display-level pointer grab.
func (o *Ownership) Ungrab() error {
	if !o.Grabbed {
		return nil
	}
	if o.disp != nil {
		if err := o.disp.UngrabPointer(); err != nil {
			return err
		}
	}
	o.Grabbed = false
	return nil
}

// compatibleWith reports whether t and u may be simultaneously active.
// Special bypasses all checks unilaterally, on either side. Otherwise
// both sides must independently agree: CompatAll or an explicit entry
// in the peer's compatibility set.
func compatibleWith(t, u *Ownership) bool {
	if t.Special || u.Special {
		return true
	}
	tOK := t.CompatAll || t.Compat[u.Name]
	uOK := u.CompatAll || u.Compat[t.Name]
	return tOK && uOK
}

// OwnershipArbiter enforces the at-most-one-active policy across
// mutually incompatible interactive plugins and tracks which ticket
// holds the grab (C5).
type OwnershipArbiter struct {
	active map[string]*Ownership
}

// NewOwnershipArbiter returns an arbiter with nothing active.
func NewOwnershipArbiter() *OwnershipArbiter {
	return &OwnershipArbiter{active: make(map[string]*Ownership)}
}

// Activate attempts to activate t. It succeeds, setting t.Active and
// returning true, iff t is compatible with every currently active
// ticket. The arbiter does not preempt: a losing request simply
// returns false, leaving t and all currently active tickets
// untouched.
func (a *OwnershipArbiter) Activate(t *Ownership) bool {
	for _, u := range a.active {
		if u == t {
			continue
		}
		if !compatibleWith(t, u) {
			return false
		}
	}
	t.Active = true
	a.active[t.Name] = t
	return true
}

// Deactivate releases t's grab if still held and clears Active.
func (a *OwnershipArbiter) Deactivate(t *Ownership) {
	t.Ungrab()
	t.Active = false
	delete(a.active, t.Name)
}

// IsActive reports whether a ticket with the given name is currently
// active.
func (a *OwnershipArbiter) IsActive(name string) bool {
	_, ok := a.active[name]
	return ok
}
