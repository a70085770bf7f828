package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIcosahedron(t *testing.T) {
	g := NewIcosahedron()
	assert.Len(t, g.Vertices, 12)
	assert.Len(t, g.Faces, 20)

	// All twelve corners sit at the same distance from the origin
	want := g.Vertices[0].Position.Length()
	for i, v := range g.Vertices {
		assert.InDelta(t, want, v.Position.Length(), 1e-5, "vertex %d", i)
	}
}

func TestSubdivideCounts(t *testing.T) {
	tests := []struct {
		divisions int
		vertices  int
		faces     int
	}{
		{0, 12, 20},
		{1, 42, 80},
		{2, 162, 320},
		{3, 642, 1280},
	}

	for _, tt := range tests {
		g := NewIcosahedron().Subdivide(tt.divisions)
		assert.Len(t, g.Vertices, tt.vertices, "divisions=%d", tt.divisions)
		assert.Len(t, g.Faces, tt.faces, "divisions=%d", tt.divisions)
	}
}

func TestSubdivideChildOrder(t *testing.T) {
	g := &Geometry{}
	g.AddVertex(0, 0, 0)
	g.AddVertex(2, 0, 0)
	g.AddVertex(0, 2, 0)
	g.AddFace(0, 1, 2)

	g.Subdivide(1)
	require.Len(t, g.Faces, 4)

	// Midpoints are appended in AB, BC, CA order
	mAB, mBC, mCA := 3, 4, 5
	assert.Equal(t, Face{0, mAB, mCA}, g.Faces[0])
	assert.Equal(t, Face{1, mBC, mAB}, g.Faces[1])
	assert.Equal(t, Face{2, mCA, mBC}, g.Faces[2])
	assert.Equal(t, Face{mAB, mBC, mCA}, g.Faces[3])

	assert.Equal(t, float32(1), g.Vertices[mAB].Position.X)
	assert.Equal(t, float32(1), g.Vertices[mBC].Position.Y)
}

func TestMidPointSymmetric(t *testing.T) {
	g := NewIcosahedron()
	cache := make(MidpointCache)

	ab := g.MidPoint(0, 11, cache)
	ba := g.MidPoint(11, 0, cache)
	assert.Equal(t, ab, ba)
	assert.Len(t, g.Vertices, 13)
}

func TestSpherize(t *testing.T) {
	g := NewIcosahedron().Subdivide(1).Spherize(2)

	for i, v := range g.Vertices {
		assert.InDelta(t, 2, v.Position.Length(), 1e-5, "vertex %d radius", i)
		assert.InDelta(t, 1, v.Normal.Length(), 1e-5, "vertex %d normal", i)
		assert.InDelta(t, 0, v.Normal.Scale(2).Distance(v.Position), 1e-5, "vertex %d direction", i)
	}
}

func TestDisc(t *testing.T) {
	g := NewDisc(56, 1)
	require.Len(t, g.Vertices, 57)
	require.Len(t, g.Faces, 56)

	assert.Equal(t, float32(0.5), g.Vertices[0].UV.X)
	assert.Equal(t, float32(0.5), g.Vertices[0].UV.Y)

	// First rim vertex lies on +X
	assert.InDelta(t, 1, g.Vertices[1].Position.X, 1e-6)
	assert.InDelta(t, 1, g.Vertices[1].UV.X, 1e-6)

	// Closing face wraps back to the first rim vertex
	assert.Equal(t, Face{0, 56, 1}, g.Faces[55])

	for i := 1; i < len(g.Vertices); i++ {
		v := g.Vertices[i]
		assert.InDelta(t, 1, v.Position.Length(), 1e-5)
		assert.Equal(t, float32(0), v.Position.Z)
	}
}

func TestDiscClampsSteps(t *testing.T) {
	for _, steps := range []int{-3, 0, 1, 3} {
		g := NewDisc(steps, 1)
		assert.Len(t, g.Vertices, MinDiscSteps+1, "steps=%d", steps)
		assert.Len(t, g.Faces, MinDiscSteps, "steps=%d", steps)
	}
}

func TestDiscRadius(t *testing.T) {
	g := NewDisc(8, 3)
	quarter := g.Vertices[3].Position // angle pi/2
	assert.InDelta(t, 0, quarter.X, 1e-5)
	assert.InDelta(t, 3, quarter.Y, 1e-5)
	assert.InDelta(t, 0.5, g.Vertices[3].UV.X, 1e-5)
	assert.InDelta(t, 1, g.Vertices[3].UV.Y, 1e-5)
	assert.Less(t, math32.Abs(g.Vertices[5].Position.X+3), float32(1e-5))
}

func TestBuffers(t *testing.T) {
	g := NewIcosahedron().Subdivide(1).Spherize(2)
	b, err := g.Buffers()
	require.NoError(t, err)

	assert.Len(t, b.Positions, 42*3)
	assert.Len(t, b.Normals, 42*3)
	assert.Len(t, b.UVs, 42*2)
	assert.Len(t, b.Indices, 80*3)
	assert.Equal(t, 42, b.VertexCount())
	assert.Equal(t, 240, b.IndexCount())

	for _, idx := range b.Indices {
		assert.Less(t, int(idx), 42)
	}
}

func TestBuffersRejectsWideMesh(t *testing.T) {
	g := NewIcosahedron().Subdivide(7) // 163842 vertices
	_, err := g.Buffers()
	assert.Error(t, err)
}
