// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gl is the rendering external collaborator: it creates a GL
// context bound to the composite overlay window, compiles the single
// shader program the compositor uses, uploads per-window quads and
// textures, and performs the per-frame draw core.Render is wired to.
package gl

/*
#cgo LDFLAGS: -lGL -lX11
#include <X11/Xlib.h>
#include <GL/glx.h>
#include <stdlib.h>

static GLXContext fire_create_context(Display *dpy, Window win) {
	int attribs[] = {GLX_RGBA, GLX_DOUBLEBUFFER, GLX_DEPTH_SIZE, 24, None};
	XVisualInfo *vi = glXChooseVisual(dpy, DefaultScreen(dpy), attribs);
	if (vi == NULL) {
		return NULL;
	}
	GLXContext ctx = glXCreateContext(dpy, vi, NULL, True);
	XFree(vi);
	if (ctx == NULL) {
		return NULL;
	}
	if (!glXMakeCurrent(dpy, win, ctx)) {
		glXDestroyContext(dpy, ctx);
		return NULL;
	}
	return ctx;
}

static void fire_swap_buffers(Display *dpy, Window win) {
	glXSwapBuffers(dpy, win);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Context owns the Xlib display connection and GLX context bound to
// the overlay window. It is a separate Xlib connection from the
// protocol connection in internal/x11 (which talks raw xgb); GLX
// itself only has an Xlib entry point, so a second, GL-dedicated
// connection is opened the way a GLFW/GLX bootstrap would, minus the
// window creation GLFW normally performs for you.
type Context struct {
	dpy *C.Display
	win C.Window
	ctx C.GLXContext
}

// NewContext opens its own Xlib connection to displayName (empty
// selects $DISPLAY) and creates a GL context current on overlay.
func NewContext(displayName string, overlay uint32) (*Context, error) {
	var cName *C.char
	if displayName != "" {
		cName = C.CString(displayName)
		defer C.free(unsafe.Pointer(cName))
	}
	dpy := C.XOpenDisplay(cName)
	if dpy == nil {
		return nil, fmt.Errorf("gl: XOpenDisplay failed")
	}
	win := C.Window(overlay)
	ctx := C.fire_create_context(dpy, win)
	if ctx == nil {
		C.XCloseDisplay(dpy)
		return nil, fmt.Errorf("gl: failed to create GLX context on overlay window")
	}
	if err := gl.Init(); err != nil {
		C.glXDestroyContext(dpy, ctx)
		C.XCloseDisplay(dpy)
		return nil, fmt.Errorf("gl: %w", err)
	}
	return &Context{dpy: dpy, win: win, ctx: ctx}, nil
}

// SwapBuffers presents the frame rendered since the last swap.
func (c *Context) SwapBuffers() {
	C.fire_swap_buffers(c.dpy, c.win)
}

// Close destroys the GLX context and closes its Xlib connection.
func (c *Context) Close() {
	C.glXMakeCurrent(c.dpy, 0, nil)
	C.glXDestroyContext(c.dpy, c.ctx)
	C.XCloseDisplay(c.dpy)
}
