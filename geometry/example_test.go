package geometry_test

import (
	"fmt"

	"github.com/katalvlaran/crystal/geometry"
)

func ExampleParse() {
	for _, d := range []string{"6", "3.5D", "4D bitruncated"} {
		s, err := geometry.Parse(d)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(s.Degree, s.Variation, s)
	}
	// Output:
	// 6 pure 3D
	// 7 pure 3.5D
	// 8 bitruncated 4D bitruncated
}
