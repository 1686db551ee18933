package lattice

import (
	"fmt"
	"math"
	"math/big"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/volume"
)

// enumeration margins of EuclideanBallCount, in coordinate units
const (
	domainEps    = 1e-4
	domainMargin = coord.Period / 2
	radiusSlack  = 1e-4
)

// BallCount returns the number of nodes within graph distance radius of any
// node of a pure lattice.
func (l *Lattice) BallCount(radius int) (*big.Int, error) {
	if l.v != Pure {
		return nil, ErrClosedForm
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}
	return volume.Ball(l.volumes, l.s.Degree(), radius), nil
}

// BoundaryCount returns the number of nodes at graph distance exactly radius
// in a pure lattice.
func (l *Lattice) BoundaryCount(radius int) (*big.Int, error) {
	if l.v != Pure {
		return nil, ErrClosedForm
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}
	return volume.Shell(l.volumes, l.s.Degree(), radius), nil
}

// EuclideanBallCount returns the number of nodes whose embedding lies within
// radius (plus a small tolerance) of center, for either variation.
//
// The count enumerates the nodes of one period cell [0, Period)^dim around the
// origin and adds, for each of them, the number of its translates by whole
// periods inside the ball. Translates are counted by the shift tree, keyed by
// the fractional offset of the centre on each axis. With an odd degree the last
// axis is a half dimension without translates; its offset is subtracted
// directly from the squared radius.
func (l *Lattice) EuclideanBallCount(center coord.LD, radius float64) (*big.Int, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}
	dim := l.s.Dimension()
	half := l.s.HasHalfDimension()
	rad2 := (radius/coord.Period)*(radius/coord.Period) + radiusSlack

	total := new(big.Int)
	list := []Handle{l.origin}
	seen := map[Handle]bool{l.origin: true}
	for i := 0; i < len(list); i++ {
		h := list[i]
		e := l.Embedding(h)
		lo, hi := e[0], e[0]
		for k := 1; k < dim; k++ {
			lo, hi = min(lo, e[k]), max(hi, e[k])
		}

		if lo >= -domainEps && hi < coord.Period-domainEps {
			rem := rad2
			node := l.shifts
			for k := 0; k < dim; k++ {
				shift := (e[k] - center[k]) / coord.Period
				if half && k == dim-1 {
					rem -= shift * shift
					continue
				}
				node = node.Child(shift - math.Floor(shift))
			}
			total.Add(total, node.Count(rem))
		}

		if lo < -domainMargin || hi > coord.Period+domainMargin {
			continue
		}
		for _, nb := range l.Neighbors(h) {
			if !seen[nb] {
				seen[nb] = true
				list = append(list, nb)
			}
		}
	}
	return total, nil
}
