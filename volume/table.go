package volume

import "math/big"

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

type tableKey struct{ dim, radius int }

// Table memoizes L1 ball sizes of Z^dim.
type Table struct {
	memo map[tableKey]*big.Int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{memo: make(map[tableKey]*big.Int)}
}

// Count returns the number of points of Z^dim with L1 norm at most radius.
// A negative radius gives 0, dimension 0 gives 1.
func (t *Table) Count(dim, radius int) *big.Int {
	return new(big.Int).Set(t.count(dim, radius))
}

// Len returns the number of memoized entries.
func (t *Table) Len() int { return len(t.memo) }

func (t *Table) count(dim, radius int) *big.Int {
	if radius < 0 || dim < 0 {
		return bigZero
	}
	if dim == 0 {
		return bigOne
	}
	k := tableKey{dim, radius}
	if v, ok := t.memo[k]; ok {
		return v
	}
	// the last axis is 0, or ±(radius - r') with the rest inside radius r'
	lower := new(big.Int)
	for r := 0; r < radius; r++ {
		lower.Add(lower, t.count(dim-1, r))
	}
	res := new(big.Int).Lsh(lower, 1)
	res.Add(res, t.count(dim-1, radius))
	t.memo[k] = res
	return res
}

// Ball returns the number of lattice points within graph distance radius of a
// point of the regular crystal lattice of the given degree.
func Ball(t *Table, degree, radius int) *big.Int {
	half := degree / 2
	res := t.Count(half, radius)
	if degree%2 == 1 {
		res.Add(res, t.count(half, radius-1))
	}
	return res
}

// Shell returns the number of lattice points at graph distance exactly radius.
func Shell(t *Table, degree, radius int) *big.Int {
	res := Ball(t, degree, radius)
	return res.Sub(res, Ball(t, degree, radius-1))
}
