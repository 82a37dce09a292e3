// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestClassifyAccessErrorIsFatal(t *testing.T) {
	sev, _, hasWindow := Classify(xproto.AccessError{})
	assert.Equal(t, SeverityFatal, sev)
	assert.False(t, hasWindow)
}

func TestClassifyWindowErrorIsRecoverablePerWindow(t *testing.T) {
	sev, bad, hasWindow := Classify(xproto.WindowError{BadValue: 42})
	assert.Equal(t, SeverityRecoverablePerWindow, sev)
	assert.True(t, hasWindow)
	assert.Equal(t, xproto.Window(42), bad)
}

func TestClassifyMatchAndDrawableErrorsAreRecoverablePerWindow(t *testing.T) {
	sev, bad, hasWindow := Classify(xproto.MatchError{BadValue: 7})
	assert.Equal(t, SeverityRecoverablePerWindow, sev)
	assert.True(t, hasWindow)
	assert.Equal(t, xproto.Window(7), bad)

	sev, bad, hasWindow = Classify(xproto.DrawableError{BadValue: 8})
	assert.Equal(t, SeverityRecoverablePerWindow, sev)
	assert.True(t, hasWindow)
	assert.Equal(t, xproto.Window(8), bad)
}

func TestClassifyUnknownErrorIsIgnorable(t *testing.T) {
	sev, _, hasWindow := Classify(xproto.ValueError{})
	assert.Equal(t, SeverityIgnorable, sev)
	assert.False(t, hasWindow)
}
