package lattice

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/volume"
)

// Landmark is a ball of a given radius centred away from the origin. Its scale
// stretches Euclidean distances so that the origin lies exactly Margin beyond
// the rim.
type Landmark struct {
	Center Handle
	// Position is the embedding of Center; with an odd degree its last entry is
	// moved to the middle of the half dimension.
	Position coord.LD
	Radius   int
	Margin   int
	// Scale converts embedding distances to landmark units.
	Scale float64
}

// PlaceLandmark walks randomly from the origin until the graph distance to the
// origin reaches radius+Margin and places a landmark there.
func (l *Lattice) PlaceLandmark(radius int, rng *rand.Rand) (*Landmark, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrLandmark)
	}
	target := radius + l.opts.LandmarkMargin
	h := l.origin
	for steps := 0; l.Distance(h, l.origin) < target; steps++ {
		if steps >= l.opts.LandmarkWalkLimit {
			return nil, fmt.Errorf("%w: no node at distance %d after %d steps", ErrLandmark, target, steps)
		}
		h = l.Move(h, rng.Intn(l.NodeDegree(h)))
	}
	klog.V(1).Infof("lattice: landmark centre %s", l.Coord(h).Format(l.s.Dimension()))
	return l.PlaceLandmarkAt(h, radius)
}

// PlaceLandmarkAt places a landmark of the given radius at center, which must
// not be the origin.
func (l *Lattice) PlaceLandmarkAt(center Handle, radius int) (*Landmark, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}
	if !l.Valid(center) || center == l.origin {
		return nil, fmt.Errorf("%w: invalid centre %d", ErrLandmark, center)
	}
	dim := l.s.Dimension()
	pos := l.Embedding(center)
	if l.s.HasHalfDimension() {
		pos[dim-1] = coord.HalfStep
	}
	dist := math.Sqrt(pos.SqDist(l.Embedding(l.origin), dim))
	if dist == 0 {
		return nil, fmt.Errorf("%w: centre coincides with the origin", ErrLandmark)
	}
	margin := l.opts.LandmarkMargin
	return &Landmark{
		Center:   center,
		Position: pos,
		Radius:   radius,
		Margin:   margin,
		Scale:    float64(radius+margin) / dist,
	}, nil
}

// ScaledDistance returns the Euclidean distance from the landmark centre to h
// in landmark units.
func (l *Lattice) ScaledDistance(lm *Landmark, h Handle) float64 {
	return lm.Scale * math.Sqrt(l.Embedding(h).SqDist(lm.Position, l.s.Dimension()))
}

// RelativeDistance returns the signed distance of h from the landmark rim:
// negative inside, zero on the rim, positive outside.
//
// Pure lattices measure graph distance to the centre. Bitruncated lattices
// measure the scaled Euclidean distance; an outside node with a neighbor
// inside is on the rim.
func (l *Lattice) RelativeDistance(lm *Landmark, h Handle) int {
	if l.v == Pure {
		return l.Distance(h, lm.Center) - lm.Radius
	}
	d := l.ScaledDistance(lm, h)
	if d < float64(lm.Radius) {
		return int(d) - lm.Radius
	}
	for _, nb := range l.Neighbors(h) {
		if l.ScaledDistance(lm, nb) < float64(lm.Radius) {
			return 0
		}
	}
	return int(d) + 1 - lm.Radius
}

// LandmarkDistance returns a distance from the landmark centre: exact for pure
// lattices, twice the scaled Euclidean distance (plus one) otherwise.
func (l *Lattice) LandmarkDistance(lm *Landmark, h Handle) int {
	if l.v == Pure {
		return l.Distance(h, lm.Center)
	}
	if h == lm.Center {
		return 0
	}
	return 1 + int(2*l.ScaledDistance(lm, h))
}

// LandmarkVolume returns the number of nodes inside the landmark: Ball(r-1) in
// a pure lattice, the Euclidean ball of radius r/Scale otherwise.
func (l *Lattice) LandmarkVolume(lm *Landmark) (*big.Int, error) {
	if l.v == Pure {
		return volume.Ball(l.volumes, l.s.Degree(), lm.Radius-1), nil
	}
	return l.EuclideanBallCount(lm.Position, float64(lm.Radius)/lm.Scale)
}

// LandmarkBoundary returns the number of rim nodes of a pure landmark.
func (l *Lattice) LandmarkBoundary(lm *Landmark) (*big.Int, error) {
	if l.v != Pure {
		return nil, ErrClosedForm
	}
	return volume.Shell(l.volumes, l.s.Degree(), lm.Radius), nil
}
