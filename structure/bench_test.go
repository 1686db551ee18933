package structure_test

import (
	"testing"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/structure"
)

// BenchmarkBuild_MaxDegree measures the full lift to seven axes.
func BenchmarkBuild_MaxDegree(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = structure.Build(structure.MaxDegree)
	}
}

// BenchmarkWalker_Step measures a step on the 4D lattice.
func BenchmarkWalker_Step(b *testing.B) {
	s, err := structure.Build(8)
	if err != nil {
		b.Fatal(err)
	}
	w := s.WalkerAt(coord.Zero, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w = w.Step().Rotate(1)
	}
	_ = w
}
