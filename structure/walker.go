// SPDX-License-Identifier: MIT
// Package: crystal/structure
//
// walker.go: navigation state over a Structure.

package structure

import "github.com/katalvlaran/crystal/coord"

// Walker is a position in the crystal structure: a local vertex identity and
// the cyclic position (spin) of the edge it faces. Walkers are values; every
// operation returns a new one.
type Walker struct {
	s    *Structure
	ID   int
	Spin int
}

// WalkerAt returns the walker at coordinate c facing cyclic position spin
// (reduced modulo the degree).
func (s *Structure) WalkerAt(c coord.Coord, spin int) Walker {
	return Walker{s: s, ID: c.Parity(s.dim), Spin: coord.GMod(spin, s.degree)}
}

// Rotate turns the walker by k positions in the cyclic order.
func (w Walker) Rotate(k int) Walker {
	w.Spin = coord.GMod(w.Spin+k, w.s.degree)
	return w
}

// Code returns the edge code the walker faces.
func (w Walker) Code() int { return w.s.cmap[w.ID][w.Spin] }

// Step crosses the faced edge; the result faces back along it.
func (w Walker) Step() Walker {
	code := w.Code()
	w.ID ^= coord.Bit(code)
	w.Spin = w.s.order[w.ID][code^1]
	return w
}

// Advance moves c by val along the faced edge.
func (w Walker) Advance(c coord.Coord, val int) coord.Coord {
	return c.Step(w.Code(), val)
}
