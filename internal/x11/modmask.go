// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11

// These mirror the X11 protocol's fixed modifier-mask and button-mask
// bit assignments (X11/X.h) rather than any xgb-specific symbol name,
// the same reasoning as the local Shape/XFixes kind constants in
// display.go: the bit positions are a protocol constant, not a guess
// at a library's naming.
const (
	ModMaskControl uint32 = 1 << 2
	ModMask1       uint32 = 1 << 3 // Alt on most layouts
	ModMask4       uint32 = 1 << 6 // Super/Meta on most layouts
	ModMaskAny     uint32 = 1 << 15
)

// Latin1-range keysym values from X11/keysymdef.h: lowercase letters
// map onto their ASCII code point, so these need no lookup table of
// their own.
const (
	KeysymE uint32 = 'e'
	KeysymH uint32 = 'h'
	KeysymJ uint32 = 'j'
	KeysymK uint32 = 'k'
	KeysymL uint32 = 'l'
)
