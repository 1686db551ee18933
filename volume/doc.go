// Package volume counts lattice points in balls.
//
// Two counters live here:
//
//   - Table counts points of Z^dim within L1 radius r, memoized over (dim, r).
//     Ball and Shell turn it into the ball and sphere sizes of the regular
//     crystal lattice of a given degree, where an odd degree adds a half
//     dimension contributing one extra layer.
//   - ShiftNode is the root (or an inner node) of the shift tree used for
//     Euclidean balls centred off-lattice. A node at depth k stands for the
//     sequence of fractional shifts of the centre along the first k axes; Count
//     returns the number of points of the shifted Z^k within a squared radius.
//     Shift and radius lookups are tolerant to 1e-6.
//
// All counts are *big.Int and callers receive their own copy. Neither type is
// safe for concurrent use.
package volume
