// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

import (
	"fmt"
	"image"
	"strings"

	gogl "github.com/go-gl/gl/v3.3-core/gl"

	"github.com/fire-wm/fire/internal/wm"
)

const vertexShaderSrc = `#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
uniform mat4 mvp;
uniform mat4 model;
out vec2 vTexCoord;
void main() {
	gl_Position = model * mvp * vec4(aPos, 0.0, 1.0);
	vTexCoord = aTexCoord;
}
` + "\x00"

const fragmentShaderSrc = `#version 330 core
in vec2 vTexCoord;
out vec4 fragColor;
uniform sampler2D tex;
uniform vec4 color;
void main() {
	fragColor = texture(tex, vTexCoord) * color;
}
` + "\x00"

// compileProgram compiles and links the vertex/fragment shader pair:
// attach both shaders, link, flag for delete, check link status,
// adapted to the desktop GL binding's pointer-based API instead of
// golang.org/x/mobile/gl's value types.
func compileProgram(vSrc, fSrc string) (uint32, error) {
	vertexShader, err := loadShader(gogl.VERTEX_SHADER, vSrc)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := loadShader(gogl.FRAGMENT_SHADER, fSrc)
	if err != nil {
		gogl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gogl.CreateProgram()
	gogl.AttachShader(program, vertexShader)
	gogl.AttachShader(program, fragmentShader)
	gogl.LinkProgram(program)
	gogl.DeleteShader(vertexShader)
	gogl.DeleteShader(fragmentShader)

	var status int32
	gogl.GetProgramiv(program, gogl.LINK_STATUS, &status)
	if status == gogl.FALSE {
		var logLen int32
		gogl.GetProgramiv(program, gogl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gogl.GetProgramInfoLog(program, logLen, nil, gogl.Str(log))
		gogl.DeleteProgram(program)
		return 0, fmt.Errorf("gl: link program: %s", log)
	}
	return program, nil
}

func loadShader(shaderType uint32, src string) (uint32, error) {
	shader := gogl.CreateShader(shaderType)
	cSrc, free := gogl.Strs(src)
	defer free()
	gogl.ShaderSource(shader, 1, cSrc, nil)
	gogl.CompileShader(shader)

	var status int32
	gogl.GetShaderiv(shader, gogl.COMPILE_STATUS, &status)
	if status == gogl.FALSE {
		var logLen int32
		gogl.GetShaderiv(shader, gogl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gogl.GetShaderInfoLog(shader, logLen, nil, gogl.Str(log))
		gogl.DeleteShader(shader)
		return 0, fmt.Errorf("gl: compile shader: %s", log)
	}
	return shader, nil
}

// quadVertices is a unit quad in (position, texcoord) pairs; per-window
// size and placement is carried entirely by the placement matrix
// (windowModel, uploaded as the mvp uniform), so every
// window shares one static vertex buffer layout.
var quadVertices = []float32{
	// x, y, u, v
	-0.5, -0.5, 0, 1,
	0.5, -0.5, 1, 1,
	0.5, 0.5, 1, 0,
	-0.5, -0.5, 0, 1,
	0.5, 0.5, 1, 0,
	-0.5, 0.5, 0, 0,
}

// Renderer owns the compositor's single shader program and the shared
// quad geometry every window's placement matrix repositions and rescales.
type Renderer struct {
	program                    uint32
	mvpLoc, modelLoc, colorLoc int32
	quadVAO, quadVBO           uint32
	screenW, screenH           int
}

// NewRenderer compiles the shader program and uploads the shared quad
// geometry. It must be called with a GL context current.
func NewRenderer(screenW, screenH int) (*Renderer, error) {
	program, err := compileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		program: program,
		mvpLoc:   gogl.GetUniformLocation(program, gogl.Str("mvp\x00")),
		modelLoc: gogl.GetUniformLocation(program, gogl.Str("model\x00")),
		colorLoc: gogl.GetUniformLocation(program, gogl.Str("color\x00")),
		screenW:  screenW,
		screenH:  screenH,
	}
	gogl.GenVertexArrays(1, &r.quadVAO)
	gogl.GenBuffers(1, &r.quadVBO)
	gogl.BindVertexArray(r.quadVAO)
	gogl.BindBuffer(gogl.ARRAY_BUFFER, r.quadVBO)
	gogl.BufferData(gogl.ARRAY_BUFFER, len(quadVertices)*4, gogl.Ptr(quadVertices), gogl.STATIC_DRAW)
	gogl.VertexAttribPointer(0, 2, gogl.FLOAT, false, 4*4, gogl.PtrOffset(0))
	gogl.EnableVertexAttribArray(0)
	gogl.VertexAttribPointer(1, 2, gogl.FLOAT, false, 4*4, gogl.PtrOffset(2*4))
	gogl.EnableVertexAttribArray(1)
	gogl.BindVertexArray(0)
	return r, nil
}

// UploadTexture creates (or replaces, if reuse != 0) a GL texture from
// img and returns its name.
func (r *Renderer) UploadTexture(img *image.RGBA, reuse uint32) uint32 {
	tex := reuse
	if tex == 0 {
		gogl.GenTextures(1, &tex)
	}
	gogl.BindTexture(gogl.TEXTURE_2D, tex)
	gogl.TexParameteri(gogl.TEXTURE_2D, gogl.TEXTURE_MIN_FILTER, gogl.LINEAR)
	gogl.TexParameteri(gogl.TEXTURE_2D, gogl.TEXTURE_MAG_FILTER, gogl.LINEAR)
	size := img.Bounds().Size()
	gogl.TexImage2D(gogl.TEXTURE_2D, 0, gogl.RGBA, int32(size.X), int32(size.Y), 0,
		gogl.RGBA, gogl.UNSIGNED_BYTE, gogl.Ptr(img.Pix))
	gogl.BindTexture(gogl.TEXTURE_2D, 0)
	return tex
}

// windowModel derives the placement matrix (screen-pixel geometry, not
// the window's own rotate/scale/translate transform) that places the
// shared unit quad at w's current geometry in NDC. Draw uploads it as
// the mvp uniform; the shader applies the model uniform after it, in
// screen NDC.
func (r *Renderer) windowModel(geo wm.Rect) wm.Mat4 {
	cx := float32(geo.X) + float32(geo.W)/2
	cy := float32(geo.Y) + float32(geo.H)/2
	ndcX := 2*cx/float32(r.screenW) - 1
	ndcY := 1 - 2*cy/float32(r.screenH)
	scaleX := float32(geo.W) / float32(r.screenW) * 2
	scaleY := float32(geo.H) / float32(r.screenH) * 2
	m := wm.Identity4()
	m[0], m[5] = scaleX, scaleY
	m[3], m[7] = ndcX, ndcY
	return m
}

// Draw is the C4 render step: for every visible window in paint
// order, compose the global x per-window transform with its screen
// placement, upload uniforms, bind its texture and draw the shared
// quad. Assign Draw to a Core's Render field to wire the compositor
// in.
func (r *Renderer) Draw(core *wm.Core) {
	gogl.Clear(gogl.COLOR_BUFFER_BIT | gogl.DEPTH_BUFFER_BIT)
	gogl.UseProgram(r.program)
	gogl.BindVertexArray(r.quadVAO)

	core.Stack.IterPaintOrder(func(w *wm.Window) {
		mvp := r.windowModel(w.Geometry)
		model := core.Global.Effective(&w.Transform)
		// Mat4 is stored row-major; transpose=true tells GL to read it
		// that way instead of assuming column-major.
		gogl.UniformMatrix4fv(r.mvpLoc, 1, true, &mvp[0])
		gogl.UniformMatrix4fv(r.modelLoc, 1, true, &model[0])
		gogl.Uniform4f(r.colorLoc, w.Transform.Color.X, w.Transform.Color.Y, w.Transform.Color.Z, w.Transform.Color.W)
		gogl.BindTexture(gogl.TEXTURE_2D, w.Texture)
		gogl.DrawArrays(gogl.TRIANGLES, 0, 6)
	})

	gogl.BindVertexArray(0)
}
