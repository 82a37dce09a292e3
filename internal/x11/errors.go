// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Severity classifies a display-protocol error by how the manager
// should react to it.
type Severity int

const (
	// SeverityFatal means the manager cannot continue: the caller
	// should log and exit.
	SeverityFatal Severity = iota
	// SeverityRecoverablePerWindow means the error names a known
	// window id that has gone bad; that window should be marked
	// norender and the manager should otherwise continue.
	SeverityRecoverablePerWindow
	// SeverityIgnorable means the error should be logged and
	// otherwise ignored.
	SeverityIgnorable
)

// Classify inspects a protocol error and reports its severity and,
// for a recoverable-per-window error, the window id at fault.
func Classify(err xgb.Error) (sev Severity, badWindow xproto.Window, hasWindow bool) {
	switch e := err.(type) {
	case xproto.AccessError:
		return SeverityFatal, 0, false
	case xproto.MatchError:
		return SeverityRecoverablePerWindow, xproto.Window(e.BadValue), true
	case xproto.DrawableError:
		return SeverityRecoverablePerWindow, xproto.Window(e.BadValue), true
	case xproto.WindowError:
		return SeverityRecoverablePerWindow, xproto.Window(e.BadValue), true
	default:
		return SeverityIgnorable, 0, false
	}
}
