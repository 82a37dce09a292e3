// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGrabber struct {
	grabbedKeys    [][2]uint32
	grabbedButtons [][2]uint32
}

func (g *fakeGrabber) GrabKey(key, mod uint32) error {
	g.grabbedKeys = append(g.grabbedKeys, [2]uint32{key, mod})
	return nil
}
func (g *fakeGrabber) UngrabKey(key, mod uint32) error    { return nil }
func (g *fakeGrabber) GrabButton(button, mod uint32) error {
	g.grabbedButtons = append(g.grabbedButtons, [2]uint32{button, mod})
	return nil
}
func (g *fakeGrabber) UngrabButton(button, mod uint32) error { return nil }

func TestAddKeyGrabsAndAssignsStableID(t *testing.T) {
	g := &fakeGrabber{}
	r := NewBindingRegistry(g)

	id1 := r.AddKey(&KeyBinding{Key: 1, Mod: 0, Active: true}, true)
	id2 := r.AddKey(&KeyBinding{Key: 2, Mod: 0, Active: true}, true)
	assert.NotEqual(t, id1, id2)
	assert.Len(t, g.grabbedKeys, 2)

	r.RemoveKey(id1)
	id3 := r.AddKey(&KeyBinding{Key: 3, Mod: 0, Active: true}, false)
	assert.Equal(t, id1, id3, "freeID should reuse the smallest available id")
}

func TestDispatchKeyPressRequiresExactModMatch(t *testing.T) {
	r := NewBindingRegistry(nil)
	var fired bool
	r.AddKey(&KeyBinding{Key: 10, Mod: 0x4, Active: true, Action: func(*Context) { fired = true }}, false)

	r.DispatchKeyPress(nil, 10, 0x1)
	assert.False(t, fired, "a different modifier mask must not match")

	r.DispatchKeyPress(nil, 10, 0x4)
	assert.True(t, fired)
}

func TestDispatchButtonPressMatchesAnySharedModBit(t *testing.T) {
	r := NewBindingRegistry(nil)
	var fired bool
	r.AddButton(&ButtonBinding{Kind: ButtonPress, Button: 1, Mod: 0b011, Active: true,
		Action: func(*Context) { fired = true }}, false)

	r.DispatchButtonPress(nil, 1, 0b100)
	assert.False(t, fired, "no shared bits should not match")

	r.DispatchButtonPress(nil, 1, 0b010)
	assert.True(t, fired, "any shared bit should match")
}

func TestDispatchButtonReleaseIgnoresModifier(t *testing.T) {
	r := NewBindingRegistry(nil)
	var fired bool
	r.AddButton(&ButtonBinding{Kind: ButtonRelease, Button: 1, Mod: 0, Active: true,
		Action: func(*Context) { fired = true }}, false)

	r.DispatchButtonRelease(nil)
	assert.True(t, fired)
}

func TestTickHooksOnlyInvokesActive(t *testing.T) {
	r := NewBindingRegistry(nil)
	var ticks int
	active := &Hook{Active: true, Action: func() { ticks++ }}
	inactive := &Hook{Active: false, Action: func() { ticks++ }}
	r.AddHook(active)
	r.AddHook(inactive)

	r.TickHooks()
	assert.Equal(t, 1, ticks)

	inactive.Enable()
	r.TickHooks()
	assert.Equal(t, 3, ticks)
}
