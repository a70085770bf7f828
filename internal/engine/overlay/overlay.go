// Package overlay draws a pre-rendered RGBA panel over the 3D scene: the
// caption of the active item and the drag hint.
package overlay

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/teamsphere/internal/engine/shader"
)

const vertexSrc = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 vTexCoord;

void main() {
	gl_Position = vec4(aPos, 0.0, 1.0);
	vTexCoord = aTexCoord;
}
`

const fragmentSrc = `
#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
out vec4 FragColor;

void main() {
	FragColor = texture(uTexture, vTexCoord);
}
`

// Overlay owns the panel texture and a single quad.
type Overlay struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	texture uint32

	width, height int // Panel size in pixels, zero when hidden
}

// New creates the overlay program and buffers. The GL context must be current.
func New() (*Overlay, error) {
	prog, err := shader.Compile(vertexSrc, fragmentSrc, nil)
	if err != nil {
		return nil, err
	}
	o := &Overlay{program: prog}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenTextures(1, &o.texture)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return o, nil
}

// SetImage replaces the panel. nil hides it.
func (o *Overlay) SetImage(img *image.RGBA) {
	if img == nil {
		o.width, o.height = 0, 0
		return
	}
	b := img.Bounds()
	o.width, o.height = b.Dx(), b.Dy()

	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(o.width), int32(o.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Size returns the panel size in pixels.
func (o *Overlay) Size() (width, height int) {
	return o.width, o.height
}

// Visible reports whether a panel is set.
func (o *Overlay) Visible() bool {
	return o.width > 0 && o.height > 0
}

// Draw blits the panel with its top-left corner at (x, y) pixels in a
// viewport of the given size.
func (o *Overlay) Draw(x, y float32, viewportW, viewportH int) {
	if !o.Visible() || viewportW <= 0 || viewportH <= 0 {
		return
	}

	var prevBlend, prevDepth, prevCull int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	// image.RGBA is premultiplied
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	verts := quadVertices(x, y, float32(o.width), float32(o.height), float32(viewportW), float32(viewportH))

	o.program.Use()
	gl.Uniform1i(o.program.Uniform("uTexture"), 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)

	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

// quadVertices returns two triangles (x, y, u, v per vertex) covering a
// pixel rectangle with a top-left origin, converted to clip space.
func quadVertices(x, y, w, h, vw, vh float32) []float32 {
	x0 := 2*x/vw - 1
	x1 := 2*(x+w)/vw - 1
	y0 := 1 - 2*y/vh
	y1 := 1 - 2*(y+h)/vh

	// Image row 0 is the top, uploaded as t = 0
	return []float32{
		x0, y0, 0, 0,
		x1, y0, 1, 0,
		x1, y1, 1, 1,
		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x0, y1, 0, 1,
	}
}

// Release deletes the GL objects.
func (o *Overlay) Release() {
	if o.program != nil {
		o.program.Delete()
		o.program = nil
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
		o.vbo = 0
	}
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
		o.vao = 0
	}
	if o.texture != 0 {
		gl.DeleteTextures(1, &o.texture)
		o.texture = 0
	}
}
