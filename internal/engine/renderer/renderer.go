// Package renderer draws the sphere menu with OpenGL 4.1 core.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/teamsphere/internal/engine/geometry"
	"github.com/Faultbox/teamsphere/internal/engine/renderer/shaders"
	"github.com/Faultbox/teamsphere/internal/engine/shader"
	"github.com/Faultbox/teamsphere/internal/engine/texture"
	"github.com/Faultbox/teamsphere/internal/logger"
	"github.com/Faultbox/teamsphere/internal/menu"
)

// Fixed attribute locations shared with disc.vert.
const (
	attribPosition = 0
	attribNormal   = 1
	attribUV       = 2
	attribInstance = 3 // Four consecutive vec4 columns: 3..6
)

// DiscAttribs binds the disc program's inputs to their fixed locations.
var DiscAttribs = map[string]uint32{
	"aModelPosition":  attribPosition,
	"aModelNormal":    attribNormal,
	"aModelUvs":       attribUV,
	"aInstanceMatrix": attribInstance,
}

// DiscRenderer implements menu.Renderer. All methods must run on the thread
// that owns the GL context.
type DiscRenderer struct {
	program *shader.Program

	vao         uint32
	positionVBO uint32
	uvVBO       uint32
	ebo         uint32
	instanceVBO uint32
	texture     uint32

	indexCount    int32
	instanceCount int32

	width, height int
	log           *zap.Logger
}

var _ menu.Renderer = (*DiscRenderer)(nil)

// New returns an uninitialized renderer. The GL context must be current
// before Init is called.
func New() *DiscRenderer {
	return &DiscRenderer{log: logger.Named("renderer")}
}

// Init loads GL entry points, compiles the disc program and uploads the disc
// mesh. A placeholder 1x1 texture is bound until the atlas arrives.
func (r *DiscRenderer) Init(disc *geometry.Buffers, instanceCount int) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: %v", menu.ErrNoContext, err)
	}
	if gl.GetString(gl.VERSION) == nil {
		return menu.ErrNoContext
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	prog, err := shader.Compile(shaders.DiscVertexShader, shaders.DiscFragmentShader, DiscAttribs)
	if err != nil {
		var ce *shader.CompileError
		if errors.As(err, &ce) {
			r.log.Error("disc program failed", zap.String("stage", ce.Stage), zap.String("log", ce.Log))
		}
		return fmt.Errorf("%w: %v", menu.ErrShaderCompile, err)
	}
	r.program = prog

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	r.positionVBO = staticBuffer(disc.Positions)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(attribPosition)

	r.uvVBO = staticBuffer(disc.UVs)
	gl.VertexAttribPointer(attribUV, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(attribUV)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(disc.Indices)*2, gl.Ptr(disc.Indices), gl.STATIC_DRAW)
	r.indexCount = int32(disc.IndexCount())

	// Disc normals are unused; a constant keeps location 1 defined
	gl.VertexAttrib3f(attribNormal, 0, 0, 0)

	r.instanceCount = int32(instanceCount)
	gl.GenBuffers(1, &r.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, instanceCount*16*4, nil, gl.DYNAMIC_DRAW)
	const stride = 16 * 4
	for col := uint32(0); col < 4; col++ {
		loc := attribInstance + col
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(col)*16))
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.texture = placeholderTexture()

	r.log.Debug("disc renderer ready",
		zap.Int32("indices", r.indexCount),
		zap.Int32("instances", r.instanceCount))
	return nil
}

func staticBuffer(data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return vbo
}

func placeholderTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	pixel := []uint8{0, 0, 0, 0}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixel))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	return tex
}

// UploadInstances replaces the instance buffer contents in one call.
func (r *DiscRenderer) UploadInstances(data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// UploadAtlas replaces the placeholder with the item atlas, mipmapped.
func (r *DiscRenderer) UploadAtlas(atlas *texture.Atlas) error {
	if atlas == nil || atlas.Image == nil || len(atlas.Image.Pix) == 0 {
		return errors.New("empty atlas")
	}
	img := atlas.Image
	b := img.Bounds()

	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	r.log.Debug("atlas uploaded", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return nil
}

// Resize sets the viewport to the drawing buffer size in pixels.
func (r *DiscRenderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Size returns the drawing buffer size last passed to Resize.
func (r *DiscRenderer) Size() (width, height int) {
	return r.width, r.height
}

// Draw clears the target and draws every disc instance.
func (r *DiscRenderer) Draw(u menu.FrameUniforms) {
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ClearColor(u.ClearColor[0], u.ClearColor[1], u.ClearColor[2], u.ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.program
	p.Use()

	gl.UniformMatrix4fv(p.Uniform("uWorldMatrix"), 1, false, u.World.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uViewMatrix"), 1, false, u.View.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uProjectionMatrix"), 1, false, u.Projection.Ptr())
	gl.Uniform3f(p.Uniform("uCameraPosition"), u.CameraPosition.X, u.CameraPosition.Y, u.CameraPosition.Z)
	v := u.RotationAxisVelocity
	gl.Uniform4f(p.Uniform("uRotationAxisVelocity"), v[0], v[1], v[2], v[3])
	gl.Uniform1i(p.Uniform("uItemCount"), u.ItemCount)
	gl.Uniform1i(p.Uniform("uAtlasSize"), u.AtlasSize)
	gl.Uniform1f(p.Uniform("uFrames"), u.Frames)
	gl.Uniform1f(p.Uniform("uScaleFactor"), u.ScaleFactor)
	gl.Uniform1i(p.Uniform("uTex"), 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)

	gl.BindVertexArray(r.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_SHORT, nil, r.instanceCount)
	gl.BindVertexArray(0)
}

// Release deletes every GL object the renderer created.
func (r *DiscRenderer) Release() {
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
	for _, vbo := range []*uint32{&r.positionVBO, &r.uvVBO, &r.ebo, &r.instanceVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	r.log.Debug("renderer released")
}
