package structure_test

import (
	"fmt"

	"github.com/katalvlaran/crystal/coord"
	"github.com/katalvlaran/crystal/structure"
)

// ExampleBuild prints the cyclic edge order of the square tiling.
func ExampleBuild() {
	s, err := structure.Build(4)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(s.Dimension(), s.Table())
	// Output:
	// 2 [[0 2 1 3] [0 2 1 3] [0 2 1 3] [0 2 1 3]]
}

// ExampleWalker_Step walks one edge of the 3D lattice and back.
func ExampleWalker_Step() {
	s, _ := structure.Build(6)
	w := s.WalkerAt(coord.Zero, 2)
	c := w.Advance(coord.Zero, coord.FullStep)
	w2 := w.Step()
	fmt.Println(c.Format(3), w2.ID, w2.Step() == w)
	// Output:
	// (0,-2,0) 2 true
}
