package geometry

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/crystal/coord"
)

// ErrInvalidCoord is returned by ParseCoord.
var ErrInvalidCoord = errors.New("geometry: invalid coordinate")

var coordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "whitespace", Pattern: `\s+`},
})

type coordExpr struct {
	Values []int `parser:"\"(\"? (@Int (\",\" @Int)*)? \")\"?"`
}

var parseCoord = participle.MustBuild[coordExpr](
	participle.Lexer(coordLexer),
	participle.Elide("whitespace"),
)

// ParseCoord reads "4,-2,0" or "(4,-2,0)" into a coordinate; missing trailing
// entries are zero.
func ParseCoord(s string) (coord.Coord, error) {
	expr, err := parseCoord.ParseString("", s)
	if err != nil {
		return coord.Coord{}, fmt.Errorf("%w: %q: %v", ErrInvalidCoord, s, err)
	}
	var c coord.Coord
	if len(expr.Values) > coord.MaxDim {
		return c, fmt.Errorf("%w: %q has %d entries, at most %d", ErrInvalidCoord, s, len(expr.Values), coord.MaxDim)
	}
	copy(c[:], expr.Values)
	return c, nil
}
