// Package geometry builds the indexed triangle meshes used by the sphere menu:
// the subdivided icosahedron that provides item anchors and the flat disc
// drawn once per item.
package geometry

import "github.com/Faultbox/teamsphere/pkg/math"

// Vertex is a mesh vertex. Normal stays zero until Spherize runs.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Face is a triangle referencing three vertex indices.
type Face struct {
	A, B, C int
}

// Geometry is an editable indexed mesh.
type Geometry struct {
	Vertices []Vertex
	Faces    []Face
}

// Buffers holds flat arrays ready for GPU upload.
type Buffers struct {
	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex
	UVs       []float32 // 2 per vertex
	Indices   []uint16  // 3 per face
}

// VertexCount returns the number of vertices described by the buffers.
func (b *Buffers) VertexCount() int {
	return len(b.Positions) / 3
}

// IndexCount returns the number of indices to draw.
func (b *Buffers) IndexCount() int {
	return len(b.Indices)
}

// midpointKey identifies an edge regardless of direction.
type midpointKey struct {
	lo, hi int
}

// MidpointCache maps an undirected edge to the vertex created at its middle.
type MidpointCache map[midpointKey]int

func edgeKey(a, b int) midpointKey {
	if a > b {
		a, b = b, a
	}
	return midpointKey{lo: a, hi: b}
}
