package coord_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crystal/coord"
)

func TestEdgeCodes(t *testing.T) {
	for axis := 0; axis < coord.MaxDim; axis++ {
		for _, pos := range []bool{false, true} {
			c := coord.Code(axis, pos)
			assert.Equal(t, axis, coord.Axis(c))
			assert.Equal(t, pos, coord.Positive(c))
			assert.Equal(t, 1<<axis, coord.Bit(c))
			// the reverse edge differs only in the sign bit
			assert.Equal(t, !pos, coord.Positive(c^1))
		}
	}
}

func TestFloorArithmetic(t *testing.T) {
	cases := []struct{ a, b, mod, div int }{
		{7, 4, 3, 1},
		{-1, 4, 3, -1},
		{-4, 4, 0, -1},
		{-5, 64, 59, -1},
		{0, 64, 0, 0},
		{128, 64, 0, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.mod, coord.GMod(tc.a, tc.b), "GMod(%d,%d)", tc.a, tc.b)
		assert.Equal(t, tc.div, coord.GDiv(tc.a, tc.b), "GDiv(%d,%d)", tc.a, tc.b)
	}
}

func TestCoordOps(t *testing.T) {
	c := coord.Coord{2, -4, 1}
	require.Equal(t, 7, c.L1(3))
	require.True(t, c.IsHalfStep(3))
	require.False(t, c.IsHalfStep(2))
	// 2 has the FullStep bit, -4 does not
	require.Equal(t, 1, c.Parity(3))

	moved := c.Step(coord.Code(1, true), coord.FullStep)
	assert.Equal(t, coord.Coord{2, -2, 1}, moved)
	assert.Equal(t, c, moved.Step(coord.Code(1, false), coord.FullStep))
	assert.Equal(t, coord.Coord{4, -8, 2}, c.Add(c))
	assert.Equal(t, coord.Zero, c.Sub(c))
	assert.Equal(t, "(2,-4,1)", c.Format(3))
}

func TestRound(t *testing.T) {
	v := coord.LD{0.5, -0.5, 1.49, -2.6}
	// 0.5 + 0.5136 floors to 1; -0.5 + 0.5136 floors to 0
	assert.Equal(t, coord.Coord{1, 0, 2, -3}, coord.Round(v))
}

func TestLDOps(t *testing.T) {
	a := coord.LD{3, 4}
	assert.InDelta(t, 5.0, a.Norm(), 1e-12)
	assert.InDelta(t, 25.0, a.SqDist(coord.LD{}, 2), 1e-12)
	assert.InDelta(t, 9.0, a.SqDist(coord.LD{}, 1), 1e-12)
	assert.Equal(t, coord.LD{1.5, 2}, a.Div(2))
	assert.Equal(t, coord.LD{6, 8}, a.Scale(2))
	assert.Equal(t, coord.LD{6, 8}, a.Add(a))
	assert.InDelta(t, 0.0, a.Sub(a).Norm(), 1e-12)
	assert.InDelta(t, 25.0, a.Dot(a), 1e-12)
	assert.False(t, math.IsNaN(coord.Coord{1, 2}.LD().Norm()))
}
