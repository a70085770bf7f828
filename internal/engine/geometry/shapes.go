package geometry

import "github.com/chewxy/math32"

// MinDiscSteps is the smallest segment count a disc is built with.
const MinDiscSteps = 4

// NewIcosahedron returns the regular icosahedron with 12 vertices and 20 faces.
func NewIcosahedron() *Geometry {
	t := (1 + math32.Sqrt(5)) / 2
	g := &Geometry{}

	verts := [12][3]float32{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for _, v := range verts {
		g.AddVertex(v[0], v[1], v[2])
	}

	faces := [20][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	for _, f := range faces {
		g.AddFace(f[0], f[1], f[2])
	}
	return g
}

// NewDisc returns a triangle fan in the XY plane: a center vertex followed by
// steps rim vertices. steps below MinDiscSteps is raised silently.
func NewDisc(steps int, radius float32) *Geometry {
	if steps < MinDiscSteps {
		steps = MinDiscSteps
	}
	alpha := 2 * math32.Pi / float32(steps)
	g := &Geometry{}

	center := g.AddVertex(0, 0, 0)
	g.Vertices[center].UV.X = 0.5
	g.Vertices[center].UV.Y = 0.5

	for i := 0; i < steps; i++ {
		s, c := math32.Sincos(alpha * float32(i))
		idx := g.AddVertex(radius*c, radius*s, 0)
		g.Vertices[idx].UV.X = c*0.5 + 0.5
		g.Vertices[idx].UV.Y = s*0.5 + 0.5

		if i > 0 {
			g.AddFace(0, i, i+1)
		}
	}
	g.AddFace(0, steps, 1)
	return g
}
