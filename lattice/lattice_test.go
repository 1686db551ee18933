package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/lattice"
	"github.com/katalvlaran/crystal/structure"
)

var variations = []lattice.Variation{lattice.Pure, lattice.Bitruncated}

// mustLattice builds a lattice or fails the test.
func mustLattice(t testing.TB, degree int, v lattice.Variation, opts ...lattice.Option) *lattice.Lattice {
	t.Helper()
	l, err := lattice.New(degree, v, opts...)
	require.NoError(t, err, "degree %d %v", degree, v)
	return l
}

// mustNode returns the node at the given leading coordinates.
func mustNode(t testing.TB, l *lattice.Lattice, xs ...int) lattice.Handle {
	t.Helper()
	var c coord.Coord
	copy(c[:], xs)
	h, err := l.NodeAt(c)
	require.NoError(t, err)
	return h
}

// layers returns the BFS layer sizes around h up to depth.
func layers(t testing.TB, l *lattice.Lattice, h lattice.Handle, depth int) []int {
	t.Helper()
	res, err := l.Walk([]lattice.Handle{h}, lattice.WithMaxDepth(depth))
	require.NoError(t, err)
	out := make([]int, depth+1)
	for _, d := range res.Depth {
		out[d]++
	}
	return out
}

// LatticeSuite covers construction, node identity and edge wiring.
type LatticeSuite struct {
	suite.Suite
}

func (s *LatticeSuite) TestNewErrors() {
	_, err := lattice.New(3, lattice.Pure)
	require.ErrorIs(s.T(), err, structure.ErrUnsupportedDegree)

	_, err = lattice.New(6, lattice.Variation(7))
	require.ErrorIs(s.T(), err, lattice.ErrUnknownVariation)

	for name, opt := range map[string]lattice.Option{
		"search limit":   lattice.WithSearchLimit(0),
		"axis":           lattice.WithCompassAxis(-1),
		"modulus":        lattice.WithCompassTuning(10, 16, 2),
		"repeat base":    lattice.WithCompassTuning(64, 0, 2),
		"growth":         lattice.WithCompassTuning(64, 16, 0),
		"compass limits": lattice.WithCompassLimits(0, 64),
		"landmark":       lattice.WithLandmark(100, 0),
	} {
		_, err = lattice.New(6, lattice.Pure, opt)
		require.ErrorIs(s.T(), err, lattice.ErrOptionViolation, name)
	}

	// axis 2 does not exist in two dimensions
	_, err = lattice.New(4, lattice.Pure, lattice.WithCompassAxis(2))
	require.ErrorIs(s.T(), err, lattice.ErrOptionViolation)
	_, err = lattice.New(5, lattice.Pure, lattice.WithCompassAxis(2))
	require.NoError(s.T(), err)
}

func (s *LatticeSuite) TestParseVariation() {
	for in, want := range map[string]lattice.Variation{
		"":             lattice.Pure,
		"pure":         lattice.Pure,
		" Bitruncated": lattice.Bitruncated,
	} {
		v, err := lattice.ParseVariation(in)
		require.NoError(s.T(), err, in)
		require.Equal(s.T(), want, v)
	}
	_, err := lattice.ParseVariation("truncated")
	require.ErrorIs(s.T(), err, lattice.ErrUnknownVariation)
	require.Equal(s.T(), "bitruncated", lattice.Bitruncated.String())
	require.Equal(s.T(), "Variation(9)", lattice.Variation(9).String())
}

func (s *LatticeSuite) TestNewHoldsOrigin() {
	l := mustLattice(s.T(), 6, lattice.Bitruncated)
	require.Equal(s.T(), 1, l.Len())
	require.Equal(s.T(), coord.Zero, l.Coord(l.Origin()))
	require.Equal(s.T(), 6, l.Degree())
	require.Equal(s.T(), 3, l.Dimension())
	require.Equal(s.T(), lattice.Bitruncated, l.Variation())
	require.Equal(s.T(), 6, l.Structure().Degree())
	require.False(s.T(), l.Valid(lattice.NoNode))
	require.False(s.T(), l.Valid(lattice.Handle(1)))
}

func (s *LatticeSuite) TestNodeAtIdentity() {
	l := mustLattice(s.T(), 6, lattice.Pure)
	h := mustNode(s.T(), l, 2, -4, 6)
	require.Equal(s.T(), h, mustNode(s.T(), l, 2, -4, 6))
	got, ok := l.Lookup(l.Coord(h))
	require.True(s.T(), ok)
	require.Equal(s.T(), h, got)

	_, ok = l.Lookup(coord.Coord{8, 8, 8})
	require.False(s.T(), ok)
	require.Equal(s.T(), l.Origin(), mustNode(s.T(), l))
}

func (s *LatticeSuite) TestNodeAtRejects() {
	pure := mustLattice(s.T(), 6, lattice.Pure)
	for _, c := range []coord.Coord{
		{1, 0, 0},
		{1, 1, 0},
		{0, 0, 0, 2}, // beyond the dimension
	} {
		_, err := pure.NodeAt(c)
		require.ErrorIs(s.T(), err, lattice.ErrInvalidCoord, "%v", c)
	}

	bt := mustLattice(s.T(), 6, lattice.Bitruncated)
	for _, c := range []coord.Coord{
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0, 0, 2},
	} {
		_, err := bt.NodeAt(c)
		require.ErrorIs(s.T(), err, lattice.ErrInvalidCoord, "%v", c)
	}
}

// TestNodeAtCorners checks that exactly the corners around a face are accepted.
func (s *LatticeSuite) TestNodeAtCorners() {
	for deg := 4; deg <= 8; deg++ {
		ref := mustLattice(s.T(), deg, lattice.Bitruncated)
		dim := ref.Dimension()
		around := map[coord.Coord]bool{}
		for _, nb := range ref.Neighbors(ref.Origin()) {
			require.True(s.T(), ref.IsCorner(nb))
			c := ref.Coord(nb)
			positive := true
			for k := 0; k < dim; k++ {
				positive = positive && c[k] >= 0
			}
			if positive {
				around[c] = true
			}
		}
		require.NotEmpty(s.T(), around, "degree %d", deg)

		fresh := mustLattice(s.T(), deg, lattice.Bitruncated)
		for i := 0; i < dim; i++ {
			for j := i + 1; j < dim; j++ {
				var c coord.Coord
				c[i], c[j] = coord.HalfStep, coord.HalfStep
				_, err := fresh.NodeAt(c)
				if around[c] {
					require.NoError(s.T(), err, "degree %d corner %v", deg, c)
				} else {
					require.ErrorIs(s.T(), err, lattice.ErrInvalidCoord, "degree %d corner %v", deg, c)
				}
			}
		}
	}
}

// TestEdgesSymmetric walks every direction of every node near the origin and
// comes back through the back spin.
func (s *LatticeSuite) TestEdgesSymmetric() {
	for deg := 4; deg <= 8; deg++ {
		for _, v := range variations {
			l := mustLattice(s.T(), deg, v)
			res, err := l.Walk([]lattice.Handle{l.Origin()}, lattice.WithMaxDepth(3))
			require.NoError(s.T(), err)
			for _, h := range res.Order {
				for d := 0; d < l.NodeDegree(h); d++ {
					nb := l.Move(h, d)
					require.True(s.T(), l.Valid(nb), "degree %d %v", deg, v)
					back := l.BackSpin(h, d)
					require.Equal(s.T(), h, l.Move(nb, back), "degree %d %v node %s dir %d",
						deg, v, l.Coord(h).Format(l.Dimension()), d)
					peek, ok := l.Peek(h, d)
					require.True(s.T(), ok)
					require.Equal(s.T(), nb, peek)
				}
			}
		}
	}
}

func (s *LatticeSuite) TestMoveReducesDirection() {
	l := mustLattice(s.T(), 5, lattice.Pure)
	o := l.Origin()
	require.Equal(s.T(), l.Move(o, 1), l.Move(o, 6))
	require.Equal(s.T(), l.Move(o, 4), l.Move(o, -1))

	_, ok := l.Peek(o, 3)
	require.False(s.T(), ok, "peek does not create")
	l.Move(o, 3)
	_, ok = l.Peek(o, 3)
	require.True(s.T(), ok)
}

func (s *LatticeSuite) TestKnownLayers() {
	cases := []struct {
		degree int
		v      lattice.Variation
		want   []int
	}{
		{4, lattice.Pure, []int{1, 4, 8, 12}},
		{5, lattice.Pure, []int{1, 5, 12, 20, 28}},
		{6, lattice.Pure, []int{1, 6, 18, 38, 66}},
		{8, lattice.Pure, []int{1, 8, 32, 88, 192}},
		{4, lattice.Bitruncated, []int{1, 4, 16, 24, 32}},
		{6, lattice.Bitruncated, []int{1, 6, 24, 42, 96}},
	}
	for _, tc := range cases {
		l := mustLattice(s.T(), tc.degree, tc.v)
		assert.Equal(s.T(), tc.want, layers(s.T(), l, l.Origin(), len(tc.want)-1), "degree %d %v", tc.degree, tc.v)
	}
}

func (s *LatticeSuite) TestNodeDegrees() {
	for _, deg := range []int{5, 6} {
		l := mustLattice(s.T(), deg, lattice.Bitruncated)
		res, err := l.Walk([]lattice.Handle{l.Origin()}, lattice.WithMaxDepth(3))
		require.NoError(s.T(), err)
		corners := 0
		for _, h := range res.Order {
			if l.IsCorner(h) {
				corners++
				require.Equal(s.T(), lattice.CornerDegree, l.NodeDegree(h))
				// corners alternate between faces and corners
				for d := 0; d < lattice.CornerDegree; d++ {
					require.Equal(s.T(), d%2 == 1, l.IsCorner(l.Move(h, d)))
				}
			} else {
				require.Equal(s.T(), deg, l.NodeDegree(h))
				for _, nb := range l.Neighbors(h) {
					require.True(s.T(), l.IsCorner(nb), "faces touch corners only")
				}
			}
		}
		require.Positive(s.T(), corners)
	}

	p := mustLattice(s.T(), 7, lattice.Pure)
	for _, nb := range p.Neighbors(p.Origin()) {
		require.False(s.T(), p.IsCorner(nb))
		require.Equal(s.T(), 7, p.NodeDegree(nb))
	}
}

func (s *LatticeSuite) TestHeuristic() {
	l := mustLattice(s.T(), 6, lattice.Pure)
	res, err := l.Walk([]lattice.Handle{l.Origin()}, lattice.WithMaxDepth(4))
	require.NoError(s.T(), err)
	for _, h := range res.Order {
		require.Equal(s.T(), res.Depth[h], l.Heuristic(h))
	}
	require.Equal(s.T(), 5, l.Heuristic(mustNode(s.T(), l, 4, -2, 4)))
}

func (s *LatticeSuite) TestObserverCountsNodes() {
	obs := &countingObserver{}
	l := mustLattice(s.T(), 6, lattice.Bitruncated, lattice.WithObserver(obs))
	l.Neighbors(l.Origin())
	require.Equal(s.T(), l.Len(), obs.faces+obs.corners)
	require.Equal(s.T(), 6, obs.corners)
}

func TestLatticeSuite(t *testing.T) {
	suite.Run(t, new(LatticeSuite))
}

// countingObserver records lattice events.
type countingObserver struct {
	faces, corners int
	searches       int
	failed         int
	compasses      int
	cycle, modulus int
}

func (o *countingObserver) NodeCreated(_ lattice.Variation, halfStep bool) {
	if halfStep {
		o.corners++
	} else {
		o.faces++
	}
}

func (o *countingObserver) SearchFinished(found bool, _ int) {
	o.searches++
	if !found {
		o.failed++
	}
}

func (o *countingObserver) CompassBuilt(cycle, modulus, _ int) {
	o.compasses++
	o.cycle, o.modulus = cycle, modulus
}
