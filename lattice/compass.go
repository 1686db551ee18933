package lattice

import (
	"fmt"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/crystal/coord"
)

// compass is the accepted period table of one lattice.
type compass struct {
	axis    int
	modulus int // accepted window along the axis, in representative units
	cycle   int // BFS layers gained per window

	// full: first layer of every representative seen during warm-up
	full map[coord.Coord]int
	// base: layer of a window-reduced representative minus the windows crossed
	base map[coord.Coord]int

	zeroShift int
	listed    int
	layers    int
}

// CompassInfo describes an accepted compass.
type CompassInfo struct {
	Axis int
	// Period is the accepted window along the axis in coordinate units.
	Period int
	// Cycle is the number of BFS layers gained per period.
	Cycle int
	// ZeroShift is added to every periodic value so that the origin reads 0.
	// Beyond one period ahead of the seeds a reading equals the seed BFS layer
	// plus ZeroShift.
	ZeroShift int
	// Representatives is the number of representatives seen during warm-up.
	Representatives int
	// Listed is the number of nodes listed by the warm-up.
	Listed int
	// Layers is the number of BFS layers the warm-up reached.
	Layers int
}

// Representative returns the canonical representative of h used by the
// compass: the embedding scaled by CompassModulus/Period and rounded, reduced
// modulo CompassModulus on the axes below the axis of travel, with whole windows
// of the axes above it folded onto the axis of travel.
func (l *Lattice) Representative(h Handle) coord.Coord {
	axis, mod := l.opts.CompassAxis, l.opts.CompassModulus
	rep := coord.Round(l.Embedding(h).Scale(float64(mod) / coord.Period))
	for s := 0; s < axis; s++ {
		rep[s] = coord.GMod(rep[s], mod)
	}
	for s := axis + 1; s < l.s.Dimension(); s++ {
		v := coord.GDiv(rep[s], mod)
		rep[s] -= v * mod
		rep[axis] += v * mod
	}
	return rep
}

// CompassDistance returns the signed distance of h toward infinity along the
// axis of travel: 0 at the origin, growing by Cycle every period ahead and
// negative behind. Neighbors never differ by more than one. The compass is
// built on first use; ErrCompassUnstable reports a warm-up that hit its
// ceiling.
func (l *Lattice) CompassDistance(h Handle) (int, error) {
	c, err := l.ensureCompass()
	if err != nil {
		return 0, err
	}
	return c.value(l.Representative(h)), nil
}

// CompassInfo builds the compass if needed and describes it.
func (l *Lattice) CompassInfo() (CompassInfo, error) {
	c, err := l.ensureCompass()
	if err != nil {
		return CompassInfo{}, err
	}
	return CompassInfo{
		Axis:            c.axis,
		Period:          c.modulus * coord.Period / l.opts.CompassModulus,
		Cycle:           c.cycle,
		ZeroShift:       c.zeroShift,
		Representatives: len(c.full),
		Listed:          c.listed,
		Layers:          c.layers,
	}, nil
}

func (l *Lattice) ensureCompass() (*compass, error) {
	if l.compass != nil {
		return l.compass, nil
	}
	c, err := l.buildCompass()
	if err != nil {
		return nil, err
	}
	l.compass = c
	return c, nil
}

// value is the periodic reading of rep, shifted so the origin reads 0.
func (c *compass) value(rep coord.Coord) int {
	return c.extrapolate(rep) + c.zeroShift
}

// extrapolate reduces rep to the accepted window and adds one cycle per
// window crossed.
func (c *compass) extrapolate(rep coord.Coord) int {
	windows := coord.GDiv(rep[c.axis], c.modulus)
	rep[c.axis] -= windows * c.modulus
	return c.base[rep] + c.cycle*windows
}

// buildCompass runs the warm-up: a breadth-first expansion from the seeds that
// lists each representative once and watches the layer difference between a
// representative and the one a window behind it until it repeats often enough.
func (l *Lattice) buildCompass() (*compass, error) {
	o := l.opts
	axis, mod := o.CompassAxis, o.CompassModulus
	c := &compass{
		axis:    axis,
		modulus: mod,
		full:    make(map[coord.Coord]int),
		base:    make(map[coord.Coord]int),
	}

	var list []Handle
	seen := make(map[Handle]bool)
	add := func(h Handle) {
		if !seen[h] {
			seen[h] = true
			list = append(list, h)
		}
	}
	// one face per corner of the unit period cell spanned by the axes below
	for i := 0; i < 1<<axis; i++ {
		var s coord.Coord
		for j := 0; j < axis; j++ {
			s[j] = (i>>j)&1 * coord.FullStep
		}
		add(l.get(s))
	}

	steps, layerEnd := 0, len(list)
	need := o.CompassRepeatBase + len(list)
	repeats, observed, widen := 0, 0, 1
	accepted := false
	for i := 0; i < len(list); i++ {
		if repeats > need*widen {
			accepted = true
			break
		}
		if len(list) > o.CompassMaxWarmup {
			return nil, fmt.Errorf("%w: %d nodes listed, window %d, cycle %d",
				ErrCompassUnstable, len(list), c.modulus, c.cycle)
		}
		if i == layerEnd {
			steps++
			layerEnd = len(list)
		}
		h := list[i]
		rep := l.Representative(h)
		if rep[axis] < -mod {
			continue
		}
		if _, ok := c.full[rep]; ok {
			continue
		}
		c.full[rep] = steps

		behind := rep
		behind[axis] -= c.modulus
		if first, ok := c.full[behind]; ok {
			if cyc := steps - first; cyc != c.cycle {
				repeats, c.cycle = 1, cyc
			} else {
				repeats++
			}
			reduced := rep
			reduced[axis] = coord.GMod(reduced[axis], c.modulus)
			c.base[reduced] = steps - coord.GDiv(rep[axis], c.modulus)*c.cycle
			observed++
			if observed > o.CompassGrowth*need*widen {
				c.modulus += mod
				observed = 0
				widen++
				klog.V(2).Infof("lattice: compass widened to %d after %d layers", c.modulus, steps)
				if c.modulus > o.CompassMaxModulus {
					return nil, fmt.Errorf("%w: window %d exceeds %d", ErrCompassUnstable, c.modulus, o.CompassMaxModulus)
				}
			}
		} else {
			repeats = 0
			need++
			observed = 0
		}
		for _, nb := range l.Neighbors(h) {
			add(nb)
		}
	}
	if !accepted {
		return nil, fmt.Errorf("%w: warm-up exhausted after %d nodes", ErrCompassUnstable, len(list))
	}

	c.listed, c.layers = len(list), steps
	c.zeroShift = -c.extrapolate(l.Representative(list[0]))
	klog.Infof("lattice: compass cycle %d per window %d on axis %d (listed %d, zero shift %d)",
		c.cycle, c.modulus, axis, c.listed, c.zeroShift)
	o.Observer.CompassBuilt(c.cycle, c.modulus, c.listed)
	return c, nil
}
