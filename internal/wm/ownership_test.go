// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePointerGrabber struct {
	grabs, ungrabs int
}

func (g *fakePointerGrabber) GrabPointer() error   { g.grabs++; return nil }
func (g *fakePointerGrabber) UngrabPointer() error { g.ungrabs++; return nil }

func TestActivateSucceedsWhenNoneActive(t *testing.T) {
	a := NewOwnershipArbiter()
	move := NewOwnership("move", nil)

	assert.True(t, a.Activate(move))
	assert.True(t, move.Active)
	assert.True(t, a.IsActive("move"))
}

func TestActivateFailsOnIncompatibleActiveTicket(t *testing.T) {
	a := NewOwnershipArbiter()
	expo := NewOwnership("expo", nil)
	resize := NewOwnership("resize", nil)
	// Neither declares compatibility with the other.

	ok := a.Activate(expo)
	assert.True(t, ok)
	assert.False(t, a.Activate(resize), "incompatible tickets must not coexist")
	assert.False(t, resize.Active)
}

func TestActivateSucceedsWhenCompatAllSet(t *testing.T) {
	a := NewOwnershipArbiter()
	expo := NewOwnership("expo", nil)
	expo.CompatAll = true
	move := NewOwnership("move", nil)
	move.CompatAll = true

	assert.True(t, a.Activate(expo))
	assert.True(t, a.Activate(move), "CompatAll on both tickets lets them coexist")
}

func TestCompatibilityRequiresBothSidesToAgree(t *testing.T) {
	a := NewOwnershipArbiter()
	x := NewOwnership("x", nil)
	y := NewOwnership("y", nil)
	x.Compat["y"] = true
	// y does not list x and is not CompatAll.

	assert.True(t, a.Activate(x))
	assert.False(t, a.Activate(y), "one-sided compatibility must not be enough")
}

func TestDeactivateReleasesGrabAndClearsActive(t *testing.T) {
	a := NewOwnershipArbiter()
	g := &fakePointerGrabber{}
	move := NewOwnership("move", g)

	a.Activate(move)
	move.Grab()
	assert.Equal(t, 1, g.grabs)

	a.Deactivate(move)
	assert.Equal(t, 1, g.ungrabs)
	assert.False(t, move.Active)
	assert.False(t, a.IsActive("move"))
}

func TestArbiterDoesNotPreempt(t *testing.T) {
	a := NewOwnershipArbiter()
	first := NewOwnership("first", nil)
	second := NewOwnership("second", nil)

	a.Activate(first)
	a.Activate(second) // fails, first stays untouched

	assert.True(t, first.Active)
	assert.True(t, a.IsActive("first"))
	assert.False(t, second.Active)
}
