// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package background decodes and uploads the desktop background image
// used to fill every workspace cell behind managed windows.
package background

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	ximagedraw "golang.org/x/image/draw"

	"github.com/fire-wm/fire/internal/wm"
)

// Uploader is the subset of *gl.Renderer background needs, kept as an
// interface so this package stays testable without a GL context.
type Uploader interface {
	UploadTexture(img *image.RGBA, reuse uint32) uint32
}

// Load decodes the image at path, scales it to fill a single
// workspace-cell-sized canvas (width x height), uploads it as a
// texture through u and installs it across core's workspace grid via
// Core.InstallBackground.
//
// Fire's original accepted whatever path the user configured and
// scaled to fit the screen regardless of the source image's aspect
// ratio; this keeps that behavior rather than adding letterboxing the
// original never had.
func Load(path string, width, height int, u Uploader, core *wm.Core) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("background: open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("background: decode %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	ximagedraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), ximagedraw.Over, nil)

	tex := u.UploadTexture(dst, 0)
	core.InstallBackground(tex)
	return nil
}
