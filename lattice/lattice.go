package lattice

import (
	"fmt"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/structure"
	"github.com/katalvlaran/crystal/volume"
)

// node is one materialized lattice node. move[d] and spin[d] describe the edge
// in direction d: the neighbor and the direction that leads back.
type node struct {
	coord     coord.Coord
	move      []Handle
	spin      []int
	heuristic int

	emb    coord.LD
	hasEmb bool
}

// Lattice is an unbounded crystal lattice of one degree and variation.
//
// All nodes live in a single arena addressed by Handle; nothing is freed until
// the Lattice itself is dropped. A Lattice is not safe for concurrent use:
// even read-looking calls such as Move and Distance may materialize nodes.
type Lattice struct {
	s      *structure.Structure
	v      Variation
	opts   Options
	nodes  []node
	index  map[coord.Coord]Handle
	origin Handle

	// memo[a][b]: cached bitruncated distances, keyed by the row owner first
	memo map[Handle]map[Handle]int

	compass *compass
	volumes *volume.Table
	shifts  *volume.ShiftNode
}

// New builds the crystal structure of the given degree and returns a lattice
// holding only the origin.
//
// Errors: ErrOptionViolation for bad options, structure.ErrUnsupportedDegree or
// a *structure.BuildError from the structure build.
func New(degree int, v Variation, opts ...Option) (*Lattice, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if v != Pure && v != Bitruncated {
		return nil, fmt.Errorf("%w: %v", ErrUnknownVariation, v)
	}

	s, err := structure.Build(degree)
	if err != nil {
		return nil, err
	}
	if o.CompassAxis >= s.Dimension() {
		return nil, fmt.Errorf("%w: compass axis %d not below dimension %d", ErrOptionViolation, o.CompassAxis, s.Dimension())
	}

	l := &Lattice{
		s:       s,
		v:       v,
		opts:    o,
		index:   make(map[coord.Coord]Handle),
		memo:    make(map[Handle]map[Handle]int),
		volumes: volume.NewTable(),
		shifts:  volume.NewShiftTree(),
	}
	l.origin = l.get(coord.Zero)
	klog.V(1).Infof("lattice: degree %d %v ready (dimension %d)", degree, v, s.Dimension())
	return l, nil
}

// Structure returns the crystal structure the lattice is built on.
func (l *Lattice) Structure() *structure.Structure { return l.s }

// Variation returns the variation.
func (l *Lattice) Variation() Variation { return l.v }

// Degree returns the degree of face nodes.
func (l *Lattice) Degree() int { return l.s.Degree() }

// Dimension returns the number of axes.
func (l *Lattice) Dimension() int { return l.s.Dimension() }

// Origin returns the node at the zero coordinate.
func (l *Lattice) Origin() Handle { return l.origin }

// Len returns the number of materialized nodes.
func (l *Lattice) Len() int { return len(l.nodes) }

// Valid reports whether h is a node of this lattice.
func (l *Lattice) Valid(h Handle) bool { return h >= 0 && int(h) < len(l.nodes) }

// Coord returns the coordinate of h.
func (l *Lattice) Coord(h Handle) coord.Coord { return l.nodes[h].coord }

// NodeDegree returns the number of directions at h.
func (l *Lattice) NodeDegree(h Handle) int { return len(l.nodes[h].move) }

// IsCorner reports whether h was inserted by bitruncation.
func (l *Lattice) IsCorner(h Handle) bool { return l.nodes[h].coord.IsHalfStep(l.s.Dimension()) }

// Heuristic returns the coordinate estimate L1/FullStep of the distance from
// the origin, fixed when the node is created.
func (l *Lattice) Heuristic(h Handle) int { return l.nodes[h].heuristic }

// NodeAt returns the node at c, creating it if needed.
//
// Returns ErrInvalidCoord when c is not a node of this lattice: entries beyond
// the dimension must be zero, pure lattices have even coordinates only, and a
// bitruncated corner has exactly two odd entries on axes whose positive codes are
// cyclically adjacent.
func (l *Lattice) NodeAt(c coord.Coord) (Handle, error) {
	if h, ok := l.index[c]; ok {
		return h, nil
	}
	if !l.isLatticePoint(c) {
		return NoNode, fmt.Errorf("%w: %s", ErrInvalidCoord, c.Format(coord.MaxDim))
	}
	return l.get(c), nil
}

func (l *Lattice) isLatticePoint(c coord.Coord) bool {
	dim := l.s.Dimension()
	for i := dim; i < coord.MaxDim; i++ {
		if c[i] != 0 {
			return false
		}
	}
	var odd []int
	for i := 0; i < dim; i++ {
		if c[i]&coord.HalfStep != 0 {
			odd = append(odd, i)
		}
	}
	switch {
	case len(odd) == 0:
		return true
	case l.v == Pure || len(odd) != 2:
		return false
	}
	// the face below the corner on both odd axes
	f := c
	f[odd[0]] -= coord.HalfStep
	f[odd[1]] -= coord.HalfStep
	id := f.Parity(dim)
	a, b := coord.Code(odd[0], true), coord.Code(odd[1], true)
	if l.s.Order(id, a) < 0 || l.s.Order(id, b) < 0 {
		return false
	}
	return l.s.Next(id, a) == b || l.s.Next(id, b) == a
}

// get returns the node at c, creating it without validation.
func (l *Lattice) get(c coord.Coord) Handle {
	if h, ok := l.index[c]; ok {
		return h
	}
	dim := l.s.Dimension()
	half := c.IsHalfStep(dim)
	deg := l.s.Degree()
	if half {
		deg = CornerDegree
	}
	n := node{
		coord:     c,
		move:      make([]Handle, deg),
		spin:      make([]int, deg),
		heuristic: c.L1(dim) / coord.FullStep,
	}
	for i := range n.move {
		n.move[i] = NoNode
		n.spin[i] = -1
	}
	h := Handle(len(l.nodes))
	l.nodes = append(l.nodes, n)
	l.index[c] = h
	l.opts.Observer.NodeCreated(l.v, half)
	return h
}

// Lookup returns the node at c if it has been materialized.
func (l *Lattice) Lookup(c coord.Coord) (Handle, bool) {
	h, ok := l.index[c]
	return h, ok
}

// Move returns the neighbor of h in direction d (reduced modulo the node
// degree), creating the edge and the neighbor on first use.
func (l *Lattice) Move(h Handle, d int) Handle {
	d = coord.GMod(d, len(l.nodes[h].move))
	if l.nodes[h].move[d] == NoNode {
		l.createStep(h, d)
		if l.nodes[h].move[d] == NoNode {
			klog.Errorf("lattice: no edge created at %s direction %d",
				l.nodes[h].coord.Format(l.s.Dimension()), d)
		}
	}
	return l.nodes[h].move[d]
}

// Peek returns the neighbor of h in direction d without creating it.
func (l *Lattice) Peek(h Handle, d int) (Handle, bool) {
	n := l.nodes[h]
	t := n.move[coord.GMod(d, len(n.move))]
	return t, t != NoNode
}

// BackSpin returns the direction at Move(h, d) that leads back to h.
func (l *Lattice) BackSpin(h Handle, d int) int {
	l.Move(h, d)
	n := l.nodes[h]
	return n.spin[coord.GMod(d, len(n.spin))]
}

// Neighbors returns all neighbors of h in direction order, creating them.
func (l *Lattice) Neighbors(h Handle) []Handle {
	deg := len(l.nodes[h].move)
	out := make([]Handle, deg)
	for d := 0; d < deg; d++ {
		out[d] = l.Move(h, d)
	}
	return out
}

// connect registers the symmetric edge (a, da) <-> (b, db). A registration
// that contradicts an existing edge is logged and refused.
func (l *Lattice) connect(a Handle, da int, b Handle, db int) {
	na, nb := l.nodes[a], l.nodes[b]
	if t := na.move[da]; t != NoNode && (t != b || na.spin[da] != db) {
		l.conflict(a, da, b, db)
		return
	}
	if t := nb.move[db]; t != NoNode && (t != a || nb.spin[db] != da) {
		l.conflict(a, da, b, db)
		return
	}
	na.move[da], na.spin[da] = b, db
	nb.move[db], nb.spin[db] = a, da
}

func (l *Lattice) conflict(a Handle, da int, b Handle, db int) {
	dim := l.s.Dimension()
	klog.Errorf("lattice: conflicting edge %s/%d <-> %s/%d",
		l.nodes[a].coord.Format(dim), da, l.nodes[b].coord.Format(dim), db)
}

// createStep materializes the edge of h in direction d.
func (l *Lattice) createStep(h Handle, d int) {
	c := l.nodes[h].coord
	if c.IsHalfStep(l.s.Dimension()) {
		// corner: reach the missing neighbor through the face at d+1
		d1 := coord.GMod(d+1, CornerDegree)
		face := l.Move(h, d1)
		l.Move(face, l.nodes[h].spin[d1]+1)
		return
	}

	w := l.s.WalkerAt(c, d)
	if l.v == Pure {
		l.connect(h, d, l.get(w.Advance(c, coord.FullStep)), w.Step().Spin)
		return
	}

	// bitruncated face: create the corner between d and d+1 and wire the four
	// faces around it, plus the corners already adjacent to them
	deg := l.s.Degree()
	corner := l.get(w.Rotate(1).Advance(w.Advance(c, coord.HalfStep), coord.HalfStep))
	for a := 0; a < CornerDegree; a += 2 {
		l.connect(corner, a, h, w.Spin)
		before := coord.GMod(w.Spin-1, deg)
		if t := l.nodes[h].move[before]; t != NoNode {
			ts := l.nodes[h].spin[before]
			l.connect(corner, a+1, t, coord.GMod(ts-1, CornerDegree))
		}
		c = w.Advance(c, coord.FullStep)
		w = w.Step().Rotate(-1)
		h = l.get(c)
	}
}
