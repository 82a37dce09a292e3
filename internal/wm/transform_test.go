// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"goki.dev/mat32/v2"
)

func TestIdentity4MulIsNoop(t *testing.T) {
	id := Identity4()
	tr := TranslationMat4(mat32.V3(1, 2, 3))
	assert.Equal(t, tr, id.Mul(tr))
	assert.Equal(t, tr, tr.Mul(id))
}

func TestMulComposesTranslationThenScale(t *testing.T) {
	scale := ScaleMat4(mat32.V3(2, 2, 1))
	translate := TranslationMat4(mat32.V3(1, 0, 0))

	// translate.Mul(scale) applies scale first, then translation: a
	// unit point (1,0,0,1) scales to (2,0,0,1) then translates to (3,0,0,1).
	m := translate.Mul(scale)
	point := [4]float32{1, 0, 0, 1}
	var out [4]float32
	for row := 0; row < 4; row++ {
		var sum float32
		for col := 0; col < 4; col++ {
			sum += m[row*4+col] * point[col]
		}
		out[row] = sum
	}
	assert.InDelta(t, 3, out[0], 1e-6)
}

func TestTransformComposeDefaultIsIdentity(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, Identity4(), tr.Compose())
	assert.Equal(t, mat32.V4(1, 1, 1, 1), tr.Color)
}

func TestGlobalEffectiveComposesGlobalAndWindow(t *testing.T) {
	g := NewGlobal()
	g.Scale = ScaleMat4(mat32.V3(2, 2, 1))

	tr := NewTransform()
	tr.Translation = TranslationMat4(mat32.V3(1, 0, 0))

	eff := g.Effective(&tr)
	assert.Equal(t, g.Compose().Mul(tr.Compose()), eff)
}
