package texture

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/teamsphere/internal/logger"
)

// Fetcher returns the raw bytes behind an image reference.
type Fetcher interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// AtlasConfig controls atlas composition.
type AtlasConfig struct {
	CellSize    int           // Pixel size of one square cell
	LoadTimeout time.Duration // Per-image budget before the fallback tile is used
	Concurrency int           // Parallel fetches
	Fallback    color.RGBA    // Fill for images that fail to load
}

// DefaultAtlasConfig returns the standard 512px cell layout.
func DefaultAtlasConfig() AtlasConfig {
	return AtlasConfig{
		CellSize:    512,
		LoadTimeout: 5 * time.Second,
		Concurrency: 4,
		Fallback:    color.RGBA{R: 200, G: 205, B: 215, A: 255},
	}
}

// Atlas is a square grid of item images, row-major from the top left.
type Atlas struct {
	Image    *image.RGBA
	Side     int   // Cells per row and column
	CellSize int   // Pixels per cell edge
	Count    int   // Items placed
	Failed   []int // Item indices that received the fallback tile
}

// CellRect returns the pixel rectangle of cell i.
func (a *Atlas) CellRect(i int) image.Rectangle {
	return cellRect(i, a.Side, a.CellSize)
}

// GridSide returns ceil(sqrt(n)), never less than 1.
func GridSide(n int) int {
	if n < 1 {
		return 1
	}
	side := int(math32.Ceil(math32.Sqrt(float32(n))))
	// Guard float rounding at perfect squares
	for side*side < n {
		side++
	}
	for side > 1 && (side-1)*(side-1) >= n {
		side--
	}
	return side
}

func cellRect(i, side, cell int) image.Rectangle {
	x := (i % side) * cell
	y := (i / side) * cell
	return image.Rect(x, y, x+cell, y+cell)
}

// AtlasBuilder loads item images concurrently and composes them into an Atlas.
type AtlasBuilder struct {
	cfg   AtlasConfig
	fetch Fetcher
	log   *zap.Logger
}

// NewAtlasBuilder returns a builder. Zero config fields take defaults.
func NewAtlasBuilder(fetch Fetcher, cfg AtlasConfig) *AtlasBuilder {
	def := DefaultAtlasConfig()
	if cfg.CellSize <= 0 {
		cfg.CellSize = def.CellSize
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = def.LoadTimeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.Fallback == (color.RGBA{}) {
		cfg.Fallback = def.Fallback
	}
	return &AtlasBuilder{cfg: cfg, fetch: fetch, log: logger.Named("atlas")}
}

// Build fetches every reference and draws image i into cell i. A reference
// that fails or exceeds the per-image timeout gets the fallback tile; the
// only error is cancellation of ctx itself.
func (b *AtlasBuilder) Build(ctx context.Context, refs []string) (*Atlas, error) {
	side := GridSide(len(refs))
	cell := b.cfg.CellSize
	atlas := &Atlas{
		Image:    image.NewRGBA(image.Rect(0, 0, side*cell, side*cell)),
		Side:     side,
		CellSize: cell,
		Count:    len(refs),
	}

	start := time.Now()
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(b.cfg.Concurrency)

	for i, ref := range refs {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			dst := atlas.CellRect(i)
			if err := b.drawCell(ctx, atlas.Image, dst, ref); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				b.log.Warn("image unavailable, using fallback",
					zap.Int("index", i),
					zap.String("ref", ref),
					zap.Error(err),
				)
				draw.Draw(atlas.Image, dst, &image.Uniform{C: b.cfg.Fallback}, image.Point{}, draw.Src)
				mu.Lock()
				atlas.Failed = append(atlas.Failed, i)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building atlas: %w", err)
	}

	b.log.Info("atlas built",
		zap.Int("items", len(refs)),
		zap.Int("side", side),
		zap.Int("failed", len(atlas.Failed)),
		zap.Duration("took", time.Since(start)),
	)
	return atlas, nil
}

// drawCell fetches, decodes and scales one image into dst. Each cell owns a
// disjoint region of the atlas, so cells are drawn concurrently.
func (b *AtlasBuilder) drawCell(ctx context.Context, atlas *image.RGBA, dst image.Rectangle, ref string) error {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.LoadTimeout)
	defer cancel()

	// Fetchers that ignore ctx still lose the cell once the timeout fires
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := b.fetch.Load(ctx, ref)
		ch <- result{data, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-ch:
	}
	if res.err != nil {
		return res.err
	}

	img, err := Decode(res.data, ref)
	if err != nil {
		return err
	}
	draw.BiLinear.Scale(atlas, dst, img, img.Bounds(), draw.Src, nil)
	return nil
}
