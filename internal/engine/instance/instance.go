// Package instance holds per-instance model matrices in one contiguous float
// buffer so they can be rewritten in place every frame and uploaded with a
// single call.
package instance

import (
	"fmt"

	"github.com/Faultbox/teamsphere/pkg/math"
)

// Stride is the number of floats per instance matrix.
const Stride = 16

// Set is a fixed-size arena of column-major 4x4 matrices.
type Set struct {
	data  []float32
	count int
}

// NewSet allocates count identity matrices.
func NewSet(count int) *Set {
	if count < 0 {
		count = 0
	}
	s := &Set{
		data:  make([]float32, count*Stride),
		count: count,
	}
	id := math.Identity()
	for i := 0; i < count; i++ {
		copy(s.data[i*Stride:], id[:])
	}
	return s
}

// Len returns the number of matrices.
func (s *Set) Len() int {
	return s.count
}

// Data returns the backing buffer, Len()*Stride floats, for upload.
func (s *Set) Data() []float32 {
	return s.data
}

// SizeBytes returns the buffer size in bytes.
func (s *Set) SizeBytes() int {
	return len(s.data) * 4
}

// Matrix returns a 16-float view of matrix i. Writes through the view update
// the arena; its capacity is capped so appends cannot spill into instance i+1.
func (s *Set) Matrix(i int) []float32 {
	off := i * Stride
	return s.data[off : off+Stride : off+Stride]
}

// Set overwrites matrix i.
func (s *Set) Set(i int, m math.Mat4) {
	if i < 0 || i >= s.count {
		panic(fmt.Sprintf("instance index %d out of range [0,%d)", i, s.count))
	}
	copy(s.Matrix(i), m[:])
}

// At returns a copy of matrix i.
func (s *Set) At(i int) math.Mat4 {
	var m math.Mat4
	copy(m[:], s.Matrix(i))
	return m
}
