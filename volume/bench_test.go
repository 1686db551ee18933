package volume_test

import (
	"testing"

	"github.com/katalvlaran/crystal/volume"
)

// BenchmarkBall_Cold measures a 5D ball of radius 100 from an empty table.
func BenchmarkBall_Cold(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = volume.Ball(volume.NewTable(), 10, 100)
	}
}

// BenchmarkShiftTree_Cold measures a 4D shifted count from an empty tree.
func BenchmarkShiftTree_Cold(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		n := volume.NewShiftTree().Child(0.25).Child(0.5).Child(0.75).Child(0.1)
		_ = n.Count(36)
	}
}
