// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wm implements the window-stack, binding, ownership and
// event-loop core of the compositor: the part of the manager that is
// independent of any particular display backend.
package wm

import (
	"math"

	"goki.dev/mat32/v2"
)

// Mat4 is a row-major 4x4 affine matrix. The library surveyed for
// this purpose (goki.dev/mat32) ships only test files in this
// checkout with no buildable source for Mat4 itself, so the kernel
// here is a small local type; its vocabulary (Mat4, Mul, Identity)
// and the Vec2/Vec3/Vec4 types used alongside it keep mat32's naming.
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * o (m applied after o to a column vector, i.e. the
// conventional composition order for "M = A * B" meaning "apply B,
// then A").
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// TranslationMat4 returns a translation matrix for v.
func TranslationMat4(v mat32.Vec3) Mat4 {
	m := Identity4()
	m[3] = v.X
	m[7] = v.Y
	m[11] = v.Z
	return m
}

// ScaleMat4 returns a scale matrix for v.
func ScaleMat4(v mat32.Vec3) Mat4 {
	m := Identity4()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

// RotationZMat4 returns a rotation-about-Z matrix for the given
// radians; the core only ever composes rotation about the screen
// normal, matching the original's glm::rotate(..., zAxis) usage.
func RotationZMat4(radians float32) Mat4 {
	c, s := cos32(radians), sin32(radians)
	m := Identity4()
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return m
}

// Transform holds the four affine matrices and the color modulation
// vector applied to a single window: rotation, scale, translation and
// viewport-translation, composed in that fixed order (scale ->
// rotate -> translate -> viewport-translate) into one matrix per
// frame.
type Transform struct {
	Rotation            Mat4
	Scale               Mat4
	Translation         Mat4
	ViewportTranslation Mat4
	Color               mat32.Vec4
}

// NewTransform returns an identity transform with opaque white color
// modulation, the state every window starts in.
func NewTransform() Transform {
	return Transform{
		Rotation:            Identity4(),
		Scale:               Identity4(),
		Translation:         Identity4(),
		ViewportTranslation: Identity4(),
		Color:               mat32.V4(1, 1, 1, 1),
	}
}

// Compose folds the four matrices into the single 4x4 matrix applied
// to this window's quad for the current frame.
func (t *Transform) Compose() Mat4 {
	return t.ViewportTranslation.Mul(t.Translation).Mul(t.Rotation).Mul(t.Scale)
}

// Global holds the three matrices shared by every window: global
// rotation, scale and translation. The effective per-window matrix is
// global times per-window.
type Global struct {
	Rotation    Mat4
	Scale       Mat4
	Translation Mat4

	// ScaleX, ScaleY are the effective screen-pixel-to-virtual-grid
	// scale factors the Expo plugin installs; plugin input conversions
	// that need to interpret screen motion in virtual-grid units read
	// these instead of assuming 1.
	ScaleX, ScaleY float64
}

// NewGlobal returns the identity global transform with unit effective
// scale, the state outside of Expo.
func NewGlobal() Global {
	return Global{
		Rotation:    Identity4(),
		Scale:       Identity4(),
		Translation: Identity4(),
		ScaleX:      1,
		ScaleY:      1,
	}
}

// Compose returns the combined global matrix (scale, then rotate, then
// translate, consistent with the per-window composition order).
func (g *Global) Compose() Mat4 {
	return g.Translation.Mul(g.Rotation).Mul(g.Scale)
}

// Effective returns the matrix applied to window w this frame: global
// composed matrix times the window's own composed matrix.
func (g *Global) Effective(t *Transform) Mat4 {
	return g.Compose().Mul(t.Compose())
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }
