package menu

import (
	"errors"

	"github.com/Faultbox/teamsphere/internal/engine/geometry"
	"github.com/Faultbox/teamsphere/internal/engine/texture"
	"github.com/Faultbox/teamsphere/pkg/math"
)

// Fatal initialization errors. Renderers wrap these so hosts can match them
// with errors.Is.
var (
	ErrNoContext     = errors.New("menu: no graphics context")
	ErrShaderCompile = errors.New("menu: shader compile failed")
	ErrNoAnchors     = errors.New("menu: anchor sphere has no vertices")
)

// FrameUniforms is the per-frame state handed to the renderer.
type FrameUniforms struct {
	World          math.Mat4
	View           math.Mat4
	Projection     math.Mat4
	CameraPosition math.Vec3

	// Axis in xyz, stretch amount in w.
	RotationAxisVelocity [4]float32

	ItemCount   int32
	AtlasSize   int32
	Frames      float32
	ScaleFactor float32
	ClearColor  [4]float32
}

// Renderer draws the instanced discs. The GL implementation lives in
// internal/engine/renderer; tests use a recording fake.
type Renderer interface {
	// Init creates the program and static buffers for the disc mesh and an
	// instance buffer sized for instanceCount matrices.
	Init(disc *geometry.Buffers, instanceCount int) error
	// UploadInstances replaces the whole instance buffer.
	UploadInstances(data []float32)
	// UploadAtlas replaces the item texture.
	UploadAtlas(atlas *texture.Atlas) error
	// Resize sets the drawing buffer size in physical pixels.
	Resize(width, height int)
	// Draw clears and issues one instanced draw call.
	Draw(u FrameUniforms)
	// Release frees every GPU handle. Safe to call more than once.
	Release()
}
