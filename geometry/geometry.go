// Package geometry parses lattice descriptors such as "6", "3.5D" or
// "4D bitruncated" and turns them into lattices.
//
// A degree names the number of edges at every face node; a dimension name
// is half of it, so odd degrees read as "N.5D". Both spellings are accepted.
package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/crystal/lattice"
	"github.com/katalvlaran/crystal/structure"
)

// ErrInvalidDescriptor is returned for a descriptor that does not name a
// supported lattice.
var ErrInvalidDescriptor = errors.New("geometry: invalid descriptor")

// Spec selects one lattice.
type Spec struct {
	Degree    int
	Variation lattice.Variation
}

// Default is the cubic lattice.
var Default = Spec{Degree: 6, Variation: lattice.Pure}

var descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Dims", Pattern: `\d+(\.5)?[dD]`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
	{Name: "whitespace", Pattern: `[\s,]+`},
})

type descriptorExpr struct {
	Size  *sizeExpr `parser:"@@"`
	Modes []string  `parser:"@Ident*"`
}

type sizeExpr struct {
	Dims   *string `parser:"  @Dims"`
	Degree *int    `parser:"| @Int"`
}

var parseDescriptor = participle.MustBuild[descriptorExpr](
	participle.Lexer(descriptorLexer),
	participle.Elide("whitespace"),
)

// Parse reads a descriptor: a degree or a dimension name followed by an
// optional variation.
func Parse(s string) (Spec, error) {
	expr, err := parseDescriptor.ParseString("", s)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %q: %v", ErrInvalidDescriptor, s, err)
	}

	var spec Spec
	switch {
	case expr.Size.Dims != nil:
		spec.Degree, err = degreeOf(*expr.Size.Dims)
		if err != nil {
			return Spec{}, err
		}
	case expr.Size.Degree != nil:
		spec.Degree = *expr.Size.Degree
	}
	if spec.Degree < structure.MinDegree || spec.Degree > structure.MaxDegree {
		return Spec{}, fmt.Errorf("%w: %q: degree %d outside %d..%d",
			ErrInvalidDescriptor, s, spec.Degree, structure.MinDegree, structure.MaxDegree)
	}

	switch len(expr.Modes) {
	case 0:
	case 1:
		spec.Variation, err = lattice.ParseVariation(expr.Modes[0])
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q: %w", ErrInvalidDescriptor, s, err)
		}
	default:
		return Spec{}, fmt.Errorf("%w: %q: more than one variation", ErrInvalidDescriptor, s)
	}
	return spec, nil
}

// degreeOf converts "3D" to 6 and "3.5D" to 7.
func degreeOf(dims string) (int, error) {
	body := strings.TrimRight(dims, "dD")
	half := strings.HasSuffix(body, ".5")
	n, err := strconv.Atoi(strings.TrimSuffix(body, ".5"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDescriptor, dims)
	}
	deg := 2 * n
	if half {
		deg++
	}
	return deg, nil
}

// DimensionName returns the name of a degree: "3D" for 6, "3.5D" for 7.
func DimensionName(degree int) string {
	if degree%2 == 1 {
		return fmt.Sprintf("%d.5D", degree/2)
	}
	return fmt.Sprintf("%dD", degree/2)
}

// String renders the spec so that Parse reads it back.
func (s Spec) String() string {
	if s.Variation == lattice.Pure {
		return DimensionName(s.Degree)
	}
	return DimensionName(s.Degree) + " " + s.Variation.String()
}

// Menu lists every supported spec of one variation, by increasing degree.
func Menu(v lattice.Variation) []Spec {
	out := make([]Spec, 0, structure.MaxDegree-structure.MinDegree+1)
	for deg := structure.MinDegree; deg <= structure.MaxDegree; deg++ {
		out = append(out, Spec{Degree: deg, Variation: v})
	}
	return out
}

// New builds the lattice named by s.
func (s Spec) New(opts ...lattice.Option) (*lattice.Lattice, error) {
	return lattice.New(s.Degree, s.Variation, opts...)
}
