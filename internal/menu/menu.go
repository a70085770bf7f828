// Package menu drives the sphere menu: it lays item discs out on a
// subdivided icosahedron, rotates them with the arc-ball controller, snaps the
// nearest item toward the viewer and reports which item is active.
//
// A Menu is not safe for concurrent use. All methods run on the render
// thread; only the atlas is built in the background.
package menu

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/teamsphere/internal/content"
	"github.com/Faultbox/teamsphere/internal/engine/arcball"
	"github.com/Faultbox/teamsphere/internal/engine/camera"
	"github.com/Faultbox/teamsphere/internal/engine/geometry"
	"github.com/Faultbox/teamsphere/internal/engine/instance"
	"github.com/Faultbox/teamsphere/internal/engine/picking"
	"github.com/Faultbox/teamsphere/internal/engine/texture"
	"github.com/Faultbox/teamsphere/internal/logger"
	"github.com/Faultbox/teamsphere/pkg/math"
)

const (
	// TargetFrameDuration is the nominal frame time, in milliseconds, that
	// controller and easing rates are normalized against.
	TargetFrameDuration = 1000.0 / 60.0

	// MaxFrameDelta caps a single step so a stalled frame cannot fling the
	// sphere.
	MaxFrameDelta = 32.0

	restDepth       = 3.0
	dragDepthOffset = 2.5
	dragDepthGain   = 80.0
	idleDamping     = 5.0
	dragDamping     = 7.0

	movingThreshold = 0.01
	stretchGain     = 1.1
)

type atlasResult struct {
	gen   int
	atlas *texture.Atlas
	err   error
}

// Menu is the interactive sphere.
type Menu struct {
	opts     Options
	renderer Renderer
	builder  *texture.AtlasBuilder
	log      *zap.Logger

	items   []content.MenuItem
	anchors []math.Vec3
	disc    *geometry.Buffers

	instances *instance.Set
	control   *arcball.Controller
	camera    *camera.SphereCamera

	width, height float32
	scales        []float32

	time           float64
	frames         float32
	smoothVelocity float32
	atlasSide      int

	active int
	moving bool

	onActive   []func(int)
	onMovement []func(bool)

	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	atlasCh     chan atlasResult
	atlasGen    int
	cancelBuild context.CancelFunc

	closeOnce sync.Once
}

// New builds the anchor sphere, initializes the renderer and starts loading
// item images. An empty items slice shows the default placeholder item.
// Errors from the renderer's Init are returned wrapped and are fatal.
func New(r Renderer, fetch texture.Fetcher, items []content.MenuItem, opts Options) (*Menu, error) {
	opts = opts.withDefaults()

	anchors := geometry.NewIcosahedron().
		Subdivide(opts.Subdivisions).
		Spherize(opts.SphereRadius).
		Positions()
	if len(anchors) == 0 {
		return nil, ErrNoAnchors
	}

	disc, err := geometry.NewDisc(opts.DiscSteps, 1).Buffers()
	if err != nil {
		return nil, fmt.Errorf("build disc: %w", err)
	}

	if err := r.Init(disc, len(anchors)); err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Menu{
		opts:      opts,
		renderer:  r,
		builder:   texture.NewAtlasBuilder(fetch, opts.Atlas),
		log:       logger.Named("menu"),
		anchors:   anchors,
		disc:      disc,
		instances: instance.NewSet(len(anchors)),
		scales:    make([]float32, len(anchors)),
		width:     1,
		height:    1,
		control:   arcball.New(1, 1),
		camera:    camera.NewSphereCamera(opts.SphereRadius),
		active:    -1,
		ctx:       ctx,
		cancel:    cancel,
		atlasCh:   make(chan atlasResult, 1),
	}

	m.setItems(items)

	m.log.Info("menu ready",
		zap.Int("anchors", len(anchors)),
		zap.Int("items", len(m.items)),
		zap.Int("disc_indices", disc.IndexCount()))

	if opts.OnInit != nil {
		opts.OnInit(m)
	}
	return m, nil
}

// OnActiveItem registers fn to receive the active item index whenever it
// changes.
func (m *Menu) OnActiveItem(fn func(index int)) {
	m.onActive = append(m.onActive, fn)
}

// OnMovement registers fn to receive movement start/stop transitions.
func (m *Menu) OnMovement(fn func(moving bool)) {
	m.onMovement = append(m.onMovement, fn)
}

// SetItems swaps the item list and reloads the atlas. The anchor layout is
// unchanged.
func (m *Menu) SetItems(items []content.MenuItem) {
	m.setItems(items)
}

func (m *Menu) setItems(items []content.MenuItem) {
	m.items = content.ItemsOrDefault(items)
	m.atlasSide = texture.GridSide(len(m.items))
	m.active = -1

	refs := make([]string, len(m.items))
	for i, it := range m.items {
		refs[i] = it.Image
	}

	if m.cancelBuild != nil {
		m.cancelBuild()
	}
	buildCtx, cancel := context.WithCancel(m.ctx)
	m.cancelBuild = cancel

	m.atlasGen++
	gen := m.atlasGen
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		atlas, err := m.builder.Build(buildCtx, refs)
		if buildCtx.Err() != nil {
			return
		}
		res := atlasResult{gen: gen, atlas: atlas, err: err}
		// Replace an unconsumed older result
		for {
			select {
			case m.atlasCh <- res:
				return
			case <-m.ctx.Done():
				return
			default:
			}
			select {
			case <-m.atlasCh:
			default:
			}
		}
	}()
}

// Items returns the current items.
func (m *Menu) Items() []content.MenuItem {
	return m.items
}

// ActiveItem returns the active item index, or -1 before the first frame.
func (m *Menu) ActiveItem() int {
	return m.active
}

// Moving reports whether the sphere is being dragged or still spinning.
func (m *Menu) Moving() bool {
	return m.moving
}

// Resize updates the viewport. width and height are logical units; the
// drawing buffer is scaled by dpr, capped at the configured maximum.
func (m *Menu) Resize(width, height int, dpr float32) {
	if width <= 0 || height <= 0 {
		return
	}
	if dpr <= 0 {
		dpr = 1
	}
	dpr = math32.Min(dpr, m.opts.MaxDPR)

	m.width, m.height = float32(width), float32(height)
	m.renderer.Resize(int(float32(width)*dpr), int(float32(height)*dpr))
	m.camera.SetAspect(float32(width) / float32(height))
	m.control.SetViewport(float32(width), float32(height))
}

// Pointer input in logical surface coordinates.

func (m *Menu) PointerDown(x, y float32) { m.control.PointerDown(x, y) }
func (m *Menu) PointerMove(x, y float32) { m.control.PointerMove(x, y) }
func (m *Menu) PointerUp()               { m.control.PointerUp() }
func (m *Menu) PointerLeave()            { m.control.PointerLeave() }

// Run advances to the absolute time timeMs, measured from the same origin
// on every call. The clock is kept in float64 so frame deltas stay exact
// over long sessions.
func (m *Menu) Run(timeMs float64) {
	dt := float32(timeMs - m.time)
	m.time = timeMs
	m.Tick(dt)
}

// Tick advances the menu by dtMs milliseconds and draws one frame.
func (m *Menu) Tick(dtMs float32) {
	dt := math32.Max(0, math32.Min(MaxFrameDelta, dtMs))
	m.frames += dt / TargetFrameDuration

	m.pollAtlas()
	m.animate(dt)
	m.render()
}

func (m *Menu) pollAtlas() {
	select {
	case res := <-m.atlasCh:
		if res.gen != m.atlasGen {
			return
		}
		if res.err != nil {
			m.log.Warn("atlas build aborted", zap.Error(res.err))
			return
		}
		if err := m.renderer.UploadAtlas(res.atlas); err != nil {
			m.log.Error("atlas upload failed", zap.Error(err))
			return
		}
		m.atlasSide = res.atlas.Side
		m.log.Debug("atlas uploaded",
			zap.Int("side", res.atlas.Side),
			zap.Ints("failed", res.atlas.Failed))
	default:
	}
}

func (m *Menu) animate(dt float32) {
	m.control.Update(dt, TargetFrameDuration)
	m.controlUpdated(dt)

	orientation := m.control.Orientation()
	up := math.Vec3{Y: 1}
	r := m.opts.SphereRadius
	for i, anchor := range m.anchors {
		p := orientation.Rotate(anchor)
		s := (math32.Abs(p.Z)/r*0.6 + 0.4) * m.opts.DiscScale

		mat := math.Translate(-p.X, -p.Y, -p.Z).
			Mul(math.TargetTo(math.Vec3{}, p, up)).
			Mul(math.Scale(s, s, s)).
			Mul(math.Translate(0, 0, -r))
		m.instances.Set(i, mat)
		m.scales[i] = s
	}
	m.renderer.UploadInstances(m.instances.Data())

	m.smoothVelocity = m.control.RotationVelocity()
}

// controlUpdated eases camera depth, publishes movement and the active item,
// and aims the controller's snap at the nearest anchor while released.
func (m *Menu) controlUpdated(dt float32) {
	timeScale := dt/TargetFrameDuration + 0.0001
	damping := idleDamping / timeScale
	targetZ := float32(restDepth)

	dragging := m.control.Dragging()
	moving := dragging || math32.Abs(m.smoothVelocity) > movingThreshold
	if moving != m.moving {
		m.moving = moving
		for _, fn := range m.onMovement {
			fn(moving)
		}
	}

	if !dragging {
		nearest := nearestAnchor(m.anchors, m.control.Orientation())
		m.setActive(itemForAnchor(nearest, len(m.items)))
		m.control.SetSnapTarget(m.control.Orientation().Rotate(m.anchors[nearest]).Normalize())
	} else {
		targetZ += m.control.RotationVelocity()*dragDepthGain + dragDepthOffset
		damping = dragDamping / timeScale
	}

	m.camera.EaseDepth(targetZ, damping)
}

func (m *Menu) setActive(index int) {
	if index == m.active {
		return
	}
	m.active = index
	for _, fn := range m.onActive {
		fn(index)
	}
}

func (m *Menu) render() {
	axis := m.control.RotationAxis()
	m.renderer.Draw(FrameUniforms{
		World:          math.Identity(),
		View:           m.camera.View(),
		Projection:     m.camera.Projection(),
		CameraPosition: m.camera.Position,
		RotationAxisVelocity: [4]float32{
			axis.X, axis.Y, axis.Z, m.smoothVelocity * stretchGain,
		},
		ItemCount:   int32(len(m.items)),
		AtlasSize:   int32(m.atlasSide),
		Frames:      m.frames,
		ScaleFactor: 1,
		ClearColor:  m.opts.ClearColor,
	})
}

// PickItem returns the item whose disc is under the logical surface position
// (x, y) as of the last frame. Only discs on the viewer's half of the sphere
// are considered.
func (m *Menu) PickItem(x, y float32) (int, bool) {
	inv := m.camera.Projection().Mul(m.camera.View()).Inverse()
	ray := picking.ScreenToRay(x, y, m.width, m.height, inv)

	best, bestT := -1, float32(math32.MaxFloat32)
	for i := range m.anchors {
		center := m.instances.At(i).TransformVec3(math.Vec3{})
		if center.Z <= 0 {
			continue
		}
		if t, ok := ray.IntersectSphere(center, m.scales[i]); ok && t < bestT {
			best, bestT = i, t
		}
	}
	if best < 0 {
		return -1, false
	}
	return itemForAnchor(best, len(m.items)), true
}

// Close stops image loading and releases the renderer. Safe to call more
// than once.
func (m *Menu) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		m.wg.Wait()
		m.renderer.Release()
		m.log.Debug("menu closed")
	})
}

// FallbackColor converts a config RGBA quadruple to a color.
func FallbackColor(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}
