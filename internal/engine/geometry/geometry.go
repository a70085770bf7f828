package geometry

import (
	"fmt"

	"github.com/Faultbox/teamsphere/pkg/math"
)

// AddVertex appends a vertex at the given position and returns its index.
func (g *Geometry) AddVertex(x, y, z float32) int {
	g.Vertices = append(g.Vertices, Vertex{Position: math.Vec3{X: x, Y: y, Z: z}})
	return len(g.Vertices) - 1
}

// AddFace appends a triangle.
func (g *Geometry) AddFace(a, b, c int) {
	g.Faces = append(g.Faces, Face{A: a, B: b, C: c})
}

// MidPoint returns the index of the vertex halfway between a and b, creating
// it on first request. (a, b) and (b, a) resolve to the same vertex.
func (g *Geometry) MidPoint(a, b int, cache MidpointCache) int {
	key := edgeKey(a, b)
	if idx, ok := cache[key]; ok {
		return idx
	}
	pa := g.Vertices[a].Position
	pb := g.Vertices[b].Position
	mid := pa.Add(pb).Scale(0.5)
	idx := g.AddVertex(mid.X, mid.Y, mid.Z)
	cache[key] = idx
	return idx
}

// Subdivide splits every face into four, n times. Each pass multiplies the
// face count by 4; shared edges reuse one midpoint vertex across all passes.
func (g *Geometry) Subdivide(n int) *Geometry {
	cache := make(MidpointCache)
	faces := g.Faces

	for pass := 0; pass < n; pass++ {
		next := make([]Face, len(faces)*4)
		for i, f := range faces {
			mAB := g.MidPoint(f.A, f.B, cache)
			mBC := g.MidPoint(f.B, f.C, cache)
			mCA := g.MidPoint(f.C, f.A, cache)

			next[i*4+0] = Face{A: f.A, B: mAB, C: mCA}
			next[i*4+1] = Face{A: f.B, B: mBC, C: mAB}
			next[i*4+2] = Face{A: f.C, B: mCA, C: mBC}
			next[i*4+3] = Face{A: mAB, B: mBC, C: mCA}
		}
		faces = next
	}

	g.Faces = faces
	return g
}

// Spherize pushes every vertex onto a sphere of the given radius and sets its
// normal to the outward unit direction.
func (g *Geometry) Spherize(radius float32) *Geometry {
	for i := range g.Vertices {
		v := &g.Vertices[i]
		v.Normal = v.Position.Normalize()
		v.Position = v.Normal.Scale(radius)
	}
	return g
}

// Positions returns a copy of every vertex position.
func (g *Geometry) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(g.Vertices))
	for i, v := range g.Vertices {
		out[i] = v.Position
	}
	return out
}

// Buffers flattens the mesh into upload-ready arrays.
// Indices are 16-bit, so meshes above 65535 vertices are rejected.
func (g *Geometry) Buffers() (*Buffers, error) {
	if len(g.Vertices) > 0xFFFF {
		return nil, fmt.Errorf("mesh has %d vertices, 16-bit indices allow %d", len(g.Vertices), 0xFFFF)
	}

	b := &Buffers{
		Positions: make([]float32, 0, len(g.Vertices)*3),
		Normals:   make([]float32, 0, len(g.Vertices)*3),
		UVs:       make([]float32, 0, len(g.Vertices)*2),
		Indices:   make([]uint16, 0, len(g.Faces)*3),
	}
	for _, v := range g.Vertices {
		b.Positions = append(b.Positions, v.Position.X, v.Position.Y, v.Position.Z)
		b.Normals = append(b.Normals, v.Normal.X, v.Normal.Y, v.Normal.Z)
		b.UVs = append(b.UVs, v.UV.X, v.UV.Y)
	}
	for _, f := range g.Faces {
		b.Indices = append(b.Indices, uint16(f.A), uint16(f.B), uint16(f.C))
	}
	return b, nil
}
