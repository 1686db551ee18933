package volume

import (
	"math"
	"math/big"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Epsilon is the tolerance for comparing shifts and squared radii.
const Epsilon = 1e-6

// epsComparator orders float64 keys, treating values closer than Epsilon as equal.
func epsComparator(a, b interface{}) int {
	x, y := a.(float64), b.(float64)
	switch {
	case x < y-Epsilon:
		return -1
	case y < x-Epsilon:
		return 1
	}
	return 0
}

// ShiftNode is a node of the shift tree. The root stands for Z^0.
type ShiftNode struct {
	parent   *ShiftNode
	shift    float64
	depth    int
	children *redblacktree.Tree // shift -> *ShiftNode
	results  *redblacktree.Tree // squared radius -> *big.Int
}

// NewShiftTree returns an empty root.
func NewShiftTree() *ShiftNode {
	return newShiftNode(nil, 0)
}

func newShiftNode(parent *ShiftNode, shift float64) *ShiftNode {
	n := &ShiftNode{
		parent:   parent,
		shift:    shift,
		children: redblacktree.NewWith(epsComparator),
		results:  redblacktree.NewWith(epsComparator),
	}
	if parent != nil {
		n.depth = parent.depth + 1
	}
	return n
}

// Child returns the node for one more axis whose centre is shifted by shift,
// creating it on first use. Shifts within Epsilon share a node.
func (n *ShiftNode) Child(shift float64) *ShiftNode {
	if c, ok := n.children.Get(shift); ok {
		return c.(*ShiftNode)
	}
	c := newShiftNode(n, shift)
	n.children.Put(shift, c)
	return c
}

// Shift returns the shift of the node's own axis.
func (n *ShiftNode) Shift() float64 { return n.shift }

// Depth returns the number of axes the node stands for.
func (n *ShiftNode) Depth() int { return n.depth }

// Count returns the number of points x of Z^Depth with
// Σ (x_i - shift_i)^2 ≤ rad2.
func (n *ShiftNode) Count(rad2 float64) *big.Int {
	return new(big.Int).Set(n.count(rad2))
}

func (n *ShiftNode) count(rad2 float64) *big.Int {
	if v, ok := n.results.Get(rad2); ok {
		return v.(*big.Int)
	}
	res := new(big.Int)
	switch {
	case rad2 < 0:
	case n.parent == nil:
		res.SetInt64(1)
	default:
		sq := math.Sqrt(rad2)
		for x := int(-2 - sq); float64(x) <= sq+2; x++ {
			ax := float64(x) - n.shift
			if ax*ax <= rad2 {
				res.Add(res, n.parent.count(rad2-ax*ax))
			}
		}
	}
	n.results.Put(rad2, res)
	return res
}
