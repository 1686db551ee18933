// SPDX-License-Identifier: MIT
// Package: crystal/structure
//
// build.go: the dimension-lifting construction of the crystal structure.
//
// Design:
//   • builder holds the working successor/predecessor tables; rows are owned
//     slices and are cloned whenever a lift copies them.
//   • Every lift is checked before the next one starts, so a failure names the
//     dimension at which the tables went wrong.
//   • The final tables are derived once (deriveTables) and never mutated again.

package structure

import (
	"fmt"
	"slices"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/crystal/coord"
)

const (
	// MinDegree is the smallest supported lattice degree (the square tiling).
	MinDegree = 4

	// MaxDegree is the largest supported lattice degree.
	MaxDegree = 2 * coord.MaxDim

	baseDegree = 4
	baseDim    = 2

	// relaxPasses is the number of sweeps that propagate a splice along faces.
	relaxPasses = 8
)

// baseRow is the cyclic order 0→2→1→3→0 of the square tiling, stored as a
// successor table.
var baseRow = []int{2, 3, 1, 0}

// Dimension returns the number of axes a lattice of the given degree uses.
func Dimension(degree int) int { return (degree + 1) / 2 }

// Build computes the crystal structure of the given degree.
//
// Returns ErrUnsupportedDegree for a degree outside [MinDegree, MaxDegree] and a
// *BuildError (errors.Is ErrInconsistent) when a consistency check fails.
func Build(degree int) (*Structure, error) {
	if degree < MinDegree || degree > MaxDegree {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrUnsupportedDegree, degree, MinDegree, MaxDegree)
	}

	b := newBuilder()
	for b.dir < degree {
		b.addDimension()
		if issues := b.check(); len(issues) > 0 {
			return nil, &BuildError{Degree: degree, Dimension: b.dim, Stage: "lift", Issues: issues}
		}
		klog.V(2).Infof("structure: lifted to dimension %d (degree %d)", b.dim, b.dir)
	}
	if b.dir > degree {
		b.removeHalfDimension()
	}

	s := b.deriveTables()
	if issues := s.check(); len(issues) > 0 {
		return nil, &BuildError{Degree: degree, Dimension: s.dim, Stage: "final", Issues: issues}
	}
	klog.V(2).Infof("structure: degree %d ready with %d vertex identities", s.degree, s.Vertices())
	return s, nil
}

// builder is the mutable state of one Build call.
type builder struct {
	dir, dim   int
	next, prev [][]int
	issues     []Inconsistency
}

func newBuilder() *builder {
	b := &builder{dir: baseDegree, dim: baseDim}
	b.next = make([][]int, 1<<baseDim)
	for a := range b.next {
		b.next[a] = slices.Clone(baseRow)
	}
	b.prev = invert(b.next, 2*baseDim)
	return b
}

// invert derives a predecessor table of the given row width from next,
// skipping unlinked (-1) entries.
func invert(next [][]int, width int) [][]int {
	prev := make([][]int, len(next))
	for a, row := range next {
		prev[a] = filled(width, -1)
		for code, succ := range row {
			if succ != -1 {
				prev[a][succ] = code
			}
		}
	}
	return prev
}

func filled(n, v int) []int {
	row := make([]int, n)
	for i := range row {
		row[i] = v
	}
	return row
}

// nextInsert splices the pair (val, val^1) into identity a right after at and
// at^1 respectively. Rows grow by two.
func (b *builder) nextInsert(a, at, val int) {
	nx := append(b.next[a], -1, -1)
	pv := append(b.prev[a], -1, -1)
	nx[val] = nx[at]
	nx[at] = val
	nx[val^1] = nx[at^1]
	nx[at^1] = val ^ 1
	pv[val] = at
	pv[nx[val]] = val
	pv[val^1] = at ^ 1
	pv[nx[val^1]] = val ^ 1
	b.next[a], b.prev[a] = nx, pv
}

// prevInsert splices val right before at.
func (b *builder) prevInsert(a, at, val int) {
	b.nextInsert(a, b.prev[a][at], val)
}

func (b *builder) mayNextInsert(a, at, val int) {
	if len(b.next[a]) != b.dir {
		b.nextInsert(a, at, val)
		return
	}
	if b.next[a][at] != val {
		b.issues = append(b.issues, Inconsistency{Kind: InsertMismatch, Vertex: a, Code: at})
	}
}

func (b *builder) mayPrevInsert(a, at, val int) {
	if len(b.prev[a]) != b.dir {
		b.prevInsert(a, at, val)
		return
	}
	if b.prev[a][at] != val {
		b.issues = append(b.issues, Inconsistency{Kind: InsertMismatch, Vertex: a, Code: at})
	}
}

// addDimension lifts the tables by one axis (two edge codes).
func (b *builder) addDimension() {
	pdir, pdim := b.dir, b.dim
	pnext, pprev := b.next, b.prev
	b.dir, b.dim = pdir+2, pdim+1

	mask := 1<<pdim - 1
	upper := coord.Bit(pdir)
	n := 1 << b.dim
	b.next = make([][]int, n)
	b.prev = make([][]int, n)
	for i := 0; i < n; i++ {
		if i < upper {
			b.next[i] = slices.Clone(pnext[i&mask])
			b.prev[i] = slices.Clone(pprev[i&mask])
		} else {
			// mirrored half: the cyclic order runs backwards
			b.next[i] = slices.Clone(pprev[i&mask])
			b.prev[i] = slices.Clone(pnext[i&mask])
		}
	}

	b.nextInsert(0, 0, pdir)
	for s := 2; s < 1<<(b.dim-2); s += 2 {
		if b.next[s][0] < 4 {
			b.prevInsert(s, 0, pdir)
		} else {
			b.nextInsert(s, 0, pdir)
		}
	}

	for pass := 0; pass < relaxPasses; pass++ {
		for a := 0; a < n; a++ {
			if len(b.next[a]) <= pdir {
				continue
			}
			which := b.next[a][pdir]
			b.mayNextInsert(a^coord.Bit(which), which^1, pdir)
			b.mayNextInsert(a^upper, which, pdir^1)
			which = b.prev[a][pdir]
			b.mayPrevInsert(a^coord.Bit(which), which^1, pdir)
		}
	}
}

// removeHalfDimension unlinks one code of the last axis from every identity:
// the negative one in the lower half, the positive one in the upper half.
func (b *builder) removeHalfDimension() {
	b.dir--
	half := 1 << (b.dim - 1)
	for i := range b.next {
		take := b.dir - 1
		if i >= half {
			take = b.dir
		}
		nx, pv := b.next[i], b.prev[i]
		nx[pv[take]] = nx[take]
		pv[nx[take]] = pv[take]
		nx[take] = -1
		pv[take] = -1
	}
}

// check validates the working tables after a lift.
func (b *builder) check() []Inconsistency {
	issues := slices.Clone(b.issues)
	for a, row := range b.next {
		if len(row) != b.dir {
			issues = append(issues, Inconsistency{Kind: Underfilled, Vertex: a, Code: -1})
		}
	}
	if len(issues) > 0 {
		return issues
	}
	issues = append(issues, inverseIssues(b.next, b.prev)...)
	return append(issues, faceIssues(b.next)...)
}

// deriveTables turns the successor lists into the cyclic tables of a Structure.
func (b *builder) deriveTables() *Structure {
	n := 1 << b.dim
	width := 2 * b.dim
	s := &Structure{
		degree: b.dir,
		dim:    b.dim,
		cmap:   make([][]int, n),
		order:  make([][]int, n),
		next:   make([][]int, n),
	}
	for a := 0; a < n; a++ {
		s.cmap[a] = make([]int, b.dir)
		at := 0
		for k := 0; k < b.dir && at >= 0; k++ {
			s.cmap[a][k] = at
			at = b.next[a][at]
		}
		if at != 0 {
			s.issues = append(s.issues, Inconsistency{Kind: CycleBroken, Vertex: a, Code: at})
		}

		s.order[a] = filled(width, -1)
		s.next[a] = filled(width, -1)
		for k, code := range s.cmap[a] {
			s.order[a][code] = k
			s.next[a][code] = s.cmap[a][(k+1)%b.dir]
		}
	}
	s.prev = invert(s.next, width)
	return s
}

// inverseIssues reports codes whose successor's predecessor is not the code.
func inverseIssues(next, prev [][]int) []Inconsistency {
	var issues []Inconsistency
	for a, row := range next {
		for code, succ := range row {
			if succ == -1 {
				continue
			}
			if prev[a][succ] != code {
				issues = append(issues, Inconsistency{Kind: InverseBroken, Vertex: a, Code: code})
			}
		}
	}
	return issues
}

// faceIssues walks the square face spanned by every linked code: cross the
// edge, turn to the successor of the reverse code, and repeat. After two edges
// the walk must face the opposite code, after four it must be back.
func faceIssues(next [][]int) []Inconsistency {
	var issues []Inconsistency
	for a, row := range next {
		for code, succ := range row {
			if succ == -1 {
				continue
			}
			if !faceCloses(next, a, code) {
				issues = append(issues, Inconsistency{Kind: FaceOpen, Vertex: a, Code: code})
			}
		}
	}
	return issues
}

func faceCloses(next [][]int, a, code int) bool {
	qa, qb := a, code
	for i := 0; i < 4; i++ {
		if i == 2 && qb != code^1 {
			return false
		}
		qa ^= coord.Bit(qb)
		qb ^= 1
		if qb >= len(next[qa]) {
			return false
		}
		qb = next[qa][qb]
		if qb == -1 {
			return false
		}
	}
	return qa == a && qb == code
}
