package lattice_test

import (
	"testing"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/lattice"
)

// BenchmarkDistance_Bitruncated measures uncached cylinder searches.
func BenchmarkDistance_Bitruncated(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		l, err := lattice.New(8, lattice.Bitruncated)
		if err != nil {
			b.Fatal(err)
		}
		h, err := l.NodeAt(coord.Coord{6, -4, 2, 8})
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		_ = l.DistanceFromOrigin(h)
	}
}

// BenchmarkCompassDistance measures answers once the warm-up is done.
func BenchmarkCompassDistance(b *testing.B) {
	l, err := lattice.New(6, lattice.Bitruncated)
	if err != nil {
		b.Fatal(err)
	}
	h, err := l.NodeAt(coord.Coord{10, 200, -6})
	if err != nil {
		b.Fatal(err)
	}
	if _, err = l.CompassDistance(h); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.CompassDistance(h)
	}
}

// BenchmarkEuclideanBallCount measures the periodic count in four dimensions.
func BenchmarkEuclideanBallCount(b *testing.B) {
	l, err := lattice.New(8, lattice.Pure)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.EuclideanBallCount(coord.LD{0.3, -1.2, 0.7, 2.1}, 9.5)
	}
}
