package lattice

import (
	"math"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/crystal/coord"
)

// cylinder slack: how far behind the start and how far off the axis a
// search may stray, in coordinate units
const (
	behindSlack = coord.Period/2 + 0.1
	radialSlack = coord.Period + 0.1
)

// Distance returns the graph distance between a and b.
//
// Pure lattices use the closed form L1/FullStep. Bitruncated lattices run a
// breadth-first search from b toward a restricted to a cylinder around the
// segment between their embeddings; results are memoized in both directions.
// When the search fails (or exceeds the search limit) Distance logs the
// failure and returns NotFound.
func (l *Lattice) Distance(a, b Handle) int {
	if a == b {
		return 0
	}
	if l.v == Pure {
		return l.nodes[a].coord.Sub(l.nodes[b].coord).L1(l.s.Dimension()) / coord.FullStep
	}

	// the row owner is the origin if involved, else the node with the larger row
	if b == l.origin || (a != l.origin && len(l.memo[b]) > len(l.memo[a])) {
		a, b = b, a
	}
	row := l.memoRow(a)
	if d, ok := row[b]; ok {
		return d
	}

	// distance is pinned by neighbors known to be two apart
	zmin, zmax := math.MaxInt, math.MinInt
	for _, nb := range l.Neighbors(b) {
		if d, ok := row[nb]; ok {
			zmin, zmax = min(zmin, d), max(zmax, d)
		}
	}
	if zmin != math.MaxInt && zmin+1 == zmax-1 {
		row[b] = zmin + 1
		return zmin + 1
	}

	d, listed := l.cylinderSearch(a, b)
	found := d != NotFound
	l.opts.Observer.SearchFinished(found, listed)
	if !found {
		dim := l.s.Dimension()
		klog.Errorf("lattice: distance search from %s to %s failed after %d nodes",
			l.nodes[b].coord.Format(dim), l.nodes[a].coord.Format(dim), listed)
		return NotFound
	}
	row[b] = d
	l.memoRow(b)[a] = d
	return d
}

func (l *Lattice) memoRow(h Handle) map[Handle]int {
	row, ok := l.memo[h]
	if !ok {
		row = make(map[Handle]int)
		l.memo[h] = row
	}
	return row
}

// cylinderSearch runs the pruned BFS from src looking for dst. It returns the
// distance (or NotFound) and the number of nodes listed.
func (l *Lattice) cylinderSearch(dst, src Handle) (int, int) {
	dim := l.s.Dimension()
	base := l.Embedding(dst)
	axis := l.Embedding(src).Sub(base)
	length := axis.Norm()
	unit := axis.Div(length)

	list := []Handle{src}
	seen := map[Handle]bool{src: true}
	steps, layerEnd := 0, 1
	for i := 0; i < len(list); i++ {
		if i == layerEnd {
			steps++
			layerEnd = len(list)
		}
		for _, nb := range l.Neighbors(list[i]) {
			if seen[nb] {
				continue
			}
			if nb == dst {
				return steps + 1, len(list)
			}
			rel := l.Embedding(nb).Sub(base)
			along := rel.Dot(unit)
			if along > length+behindSlack || offAxis(rel, unit, along, dim) {
				continue
			}
			seen[nb] = true
			list = append(list, nb)
		}
		if len(list) > l.opts.SearchLimit {
			return NotFound, len(list)
		}
	}
	return NotFound, len(list)
}

// offAxis reports whether rel strays more than radialSlack from the axis on
// any coordinate.
func offAxis(rel, unit coord.LD, along float64, dim int) bool {
	for k := 0; k < dim; k++ {
		if math.Abs(rel[k]-along*unit[k]) > radialSlack {
			return true
		}
	}
	return false
}

// DistanceFromOrigin returns the exact graph distance from the origin. In the
// bitruncated lattice every answer lands in the origin's memo row.
func (l *Lattice) DistanceFromOrigin(h Handle) int {
	return l.Distance(l.origin, h)
}
