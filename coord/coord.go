package coord

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MaxDim is the largest number of axes any lattice may use.
	MaxDim = 7

	// FullStep is the coordinate distance between adjacent face nodes.
	FullStep = 2

	// HalfStep is the offset of bitruncation-inserted nodes.
	HalfStep = 1

	// Period is the length after which the local vertex identity repeats.
	Period = 2 * FullStep

	// roundOffset replaces 0.5 in Round.
	roundOffset = 0.5136
)

// Coord is an integer lattice position. Entries beyond the lattice dimension are zero.
type Coord [MaxDim]int

// LD is a floating-point vector with the same layout as Coord.
type LD [MaxDim]float64

// Zero is the origin.
var Zero Coord

// Axis returns the axis an edge code moves along.
func Axis(code int) int { return code >> 1 }

// Positive reports whether an edge code moves toward larger coordinates.
func Positive(code int) bool { return code&1 == 1 }

// Bit returns the vertex-identity bit flipped by a full step along code.
func Bit(code int) int { return 1 << (code >> 1) }

// Code packs an axis and a direction into an edge code.
func Code(axis int, positive bool) int {
	if positive {
		return axis<<1 | 1
	}
	return axis << 1
}

// GMod returns a modulo b in [0, b) for b > 0.
func GMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// GDiv returns floor(a / b) for b > 0.
func GDiv(a, b int) int {
	return (a - GMod(a, b)) / b
}

// Add returns c + o.
func (c Coord) Add(o Coord) Coord {
	for i := range c {
		c[i] += o[i]
	}
	return c
}

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord {
	for i := range c {
		c[i] -= o[i]
	}
	return c
}

// Step moves c by val along the edge code.
func (c Coord) Step(code, val int) Coord {
	if Positive(code) {
		c[Axis(code)] += val
	} else {
		c[Axis(code)] -= val
	}
	return c
}

// L1 returns the sum of absolute values of the first dim entries.
func (c Coord) L1(dim int) int {
	s := 0
	for i := 0; i < dim; i++ {
		if c[i] < 0 {
			s -= c[i]
		} else {
			s += c[i]
		}
	}
	return s
}

// IsHalfStep reports whether any of the first dim entries is odd.
func (c Coord) IsHalfStep(dim int) bool {
	for i := 0; i < dim; i++ {
		if c[i]&HalfStep != 0 {
			return true
		}
	}
	return false
}

// Parity returns the local vertex identity of c: bit i is set iff c[i] has the
// FullStep bit set.
func (c Coord) Parity(dim int) int {
	id := 0
	for i := 0; i < dim; i++ {
		if c[i]&FullStep != 0 {
			id |= 1 << i
		}
	}
	return id
}

// LD converts c to a float vector.
func (c Coord) LD() LD {
	var v LD
	for i, x := range c {
		v[i] = float64(x)
	}
	return v
}

// Format renders the first dim entries as "(a,b,c)".
func (c Coord) Format(dim int) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < dim; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(c[i]))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Round converts v to the nearest integer coordinate.
func Round(v LD) Coord {
	var c Coord
	for i, x := range v {
		c[i] = int(math.Floor(x + roundOffset))
	}
	return c
}

// Add returns v + o.
func (v LD) Add(o LD) LD {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

// Sub returns v - o.
func (v LD) Sub(o LD) LD {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

// Scale returns v * k.
func (v LD) Scale(k float64) LD {
	for i := range v {
		v[i] *= k
	}
	return v
}

// Div returns v / k.
func (v LD) Div(k float64) LD {
	for i := range v {
		v[i] /= k
	}
	return v
}

// Dot returns the inner product of v and o.
func (v LD) Dot(o LD) float64 {
	s := 0.0
	for i := range v {
		s += v[i] * o[i]
	}
	return s
}

// Norm returns the Euclidean length of v.
func (v LD) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// SqDist returns the squared Euclidean distance between v and o over the first
// dim axes.
func (v LD) SqDist(o LD, dim int) float64 {
	s := 0.0
	for i := 0; i < dim; i++ {
		d := v[i] - o[i]
		s += d * d
	}
	return s
}
