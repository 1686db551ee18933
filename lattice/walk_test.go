package lattice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crystal/lattice"
)

func TestWalk_NeedsDepth(t *testing.T) {
	l := mustLattice(t, 6, lattice.Pure)
	_, err := l.Walk([]lattice.Handle{l.Origin()})
	require.ErrorIs(t, err, lattice.ErrUnboundedWalk)
	_, err = l.Walk([]lattice.Handle{l.Origin()}, lattice.WithMaxDepth(0))
	require.ErrorIs(t, err, lattice.ErrUnboundedWalk)
}

func TestWalk_OrderAndDepth(t *testing.T) {
	l := mustLattice(t, 6, lattice.Pure)
	res, err := l.Walk([]lattice.Handle{l.Origin()}, lattice.WithMaxDepth(2))
	require.NoError(t, err)
	require.Len(t, res.Order, 1+6+18)
	require.Equal(t, l.Origin(), res.Order[0])
	prev := 0
	for _, h := range res.Order {
		require.GreaterOrEqual(t, res.Depth[h], prev, "breadth-first order")
		prev = res.Depth[h]
	}
}

func TestWalk_MultipleStarts(t *testing.T) {
	l := mustLattice(t, 4, lattice.Pure)
	a, b := l.Origin(), mustNode(t, l, 2)
	res, err := l.Walk([]lattice.Handle{a, b, a}, lattice.WithMaxDepth(1))
	require.NoError(t, err)
	require.Zero(t, res.Depth[a])
	require.Zero(t, res.Depth[b])
	// two overlapping stars of four
	require.Len(t, res.Order, 2+3+3)
}

func TestWalk_Filter(t *testing.T) {
	l := mustLattice(t, 6, lattice.Bitruncated)
	res, err := l.Walk([]lattice.Handle{l.Origin()},
		lattice.WithMaxDepth(3),
		lattice.WithFilter(func(h lattice.Handle) bool { return !l.IsCorner(h) }))
	require.NoError(t, err)
	// faces touch corners only
	require.Equal(t, []lattice.Handle{l.Origin()}, res.Order)
}

func TestWalk_OnVisitError(t *testing.T) {
	l := mustLattice(t, 5, lattice.Pure)
	stop := errors.New("stop")
	visits := 0
	_, err := l.Walk([]lattice.Handle{l.Origin()},
		lattice.WithMaxDepth(5),
		lattice.WithOnVisit(func(h lattice.Handle, depth int) error {
			visits++
			if depth == 2 {
				return stop
			}
			return nil
		}))
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1+5+1, visits)
}

func TestWalk_Cancelled(t *testing.T) {
	l := mustLattice(t, 6, lattice.Pure)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Walk([]lattice.Handle{l.Origin()}, lattice.WithMaxDepth(3), lattice.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
