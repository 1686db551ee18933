package lattice

import (
	"math"

	"github.com/katalvlaran/crystal/coord"
)

// Embedding returns the Euclidean position of h. Faces sit on their coordinate;
// a corner sits at the average of its four faces.
func (l *Lattice) Embedding(h Handle) coord.LD {
	if n := l.nodes[h]; n.hasEmb {
		return n.emb
	}
	var e coord.LD
	if !l.IsCorner(h) {
		e = l.nodes[h].coord.LD()
	} else {
		faces := 0
		for d := 0; d < CornerDegree; d += 2 {
			e = e.Add(l.Embedding(l.Move(h, d)))
			faces++
		}
		e = e.Div(float64(faces))
	}
	l.nodes[h].emb, l.nodes[h].hasEmb = e, true
	return e
}

// CornerEmbedding returns the position of the tiling vertex between directions
// i-1 and i around h. In the pure lattice four cells meet there and the vertex
// is the midpoint of the two neighbors; in the bitruncated lattice three cells
// meet and it is the centroid of h and the two neighbors.
func (l *Lattice) CornerEmbedding(h Handle, i int) coord.LD {
	e := l.Embedding(l.Move(h, i)).Add(l.Embedding(l.Move(h, i-1)))
	if l.v == Pure {
		return e.Div(2)
	}
	return e.Add(l.Embedding(h)).Div(3)
}

// SpaceDistance returns the Euclidean distance between the embeddings of a and b.
func (l *Lattice) SpaceDistance(a, b Handle) float64 {
	return math.Sqrt(l.Embedding(a).SqDist(l.Embedding(b), l.s.Dimension()))
}
