// SPDX-License-Identifier: MIT
// Package: crystal/structure
//
// structure.go: the immutable result of Build and its read accessors.

package structure

import (
	"fmt"
	"slices"
)

// Structure is the crystal structure of one lattice degree. It is immutable
// after Build returns and safe for concurrent readers.
type Structure struct {
	degree int
	dim    int

	// cmap[id][k]: edge code at cyclic position k around identity id.
	cmap [][]int
	// order[id][code]: cyclic position of code around id, -1 if absent.
	order [][]int
	// next/prev[id][code]: cyclic successor/predecessor code, -1 if absent.
	next [][]int
	prev [][]int

	// findings collected while deriving the tables
	issues []Inconsistency
}

// Degree returns the number of edges at every face vertex.
func (s *Structure) Degree() int { return s.degree }

// Dimension returns the number of coordinate axes.
func (s *Structure) Dimension() int { return s.dim }

// Vertices returns the number of local vertex identities (2^Dimension).
func (s *Structure) Vertices() int { return len(s.cmap) }

// HasHalfDimension reports whether the last axis carries a single code per
// identity (odd degree).
func (s *Structure) HasHalfDimension() bool { return s.degree%2 == 1 }

// Code returns the edge code at cyclic position spin around identity id.
func (s *Structure) Code(id, spin int) int { return s.cmap[id][spin] }

// Order returns the cyclic position of code around id, or -1.
func (s *Structure) Order(id, code int) int { return s.order[id][code] }

// Next returns the code that follows code around id, or -1.
func (s *Structure) Next(id, code int) int { return s.next[id][code] }

// Prev returns the code that precedes code around id, or -1.
func (s *Structure) Prev(id, code int) int { return s.prev[id][code] }

// Table returns a copy of the cyclic code table, one row per identity.
func (s *Structure) Table() [][]int {
	out := make([][]int, len(s.cmap))
	for i, row := range s.cmap {
		out[i] = slices.Clone(row)
	}
	return out
}

// Validate re-runs the consistency checks on the final tables.
func (s *Structure) Validate() error {
	if issues := s.check(); len(issues) > 0 {
		return &BuildError{Degree: s.degree, Dimension: s.dim, Stage: "validate", Issues: issues}
	}
	return nil
}

func (s *Structure) check() []Inconsistency {
	issues := slices.Clone(s.issues)
	for a, row := range s.next {
		linked := 0
		for _, succ := range row {
			if succ != -1 {
				linked++
			}
		}
		if linked != s.degree {
			issues = append(issues, Inconsistency{Kind: Underfilled, Vertex: a, Code: -1})
		}
	}
	issues = append(issues, inverseIssues(s.next, s.prev)...)
	return append(issues, faceIssues(s.next)...)
}

// String renders the cyclic table, one identity per line.
func (s *Structure) String() string {
	out := fmt.Sprintf("degree %d, dimension %d\n", s.degree, s.dim)
	for id, row := range s.cmap {
		out += fmt.Sprintf("%2d: %v\n", id, row)
	}
	return out
}
