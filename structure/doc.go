// SPDX-License-Identifier: MIT
// Package: crystal/structure
//
// Package structure computes the combinatorial "crystal structure" of a lattice of
// a given degree and provides the walker that navigates it.
//
// What
//
//   - Build(degree) returns a *Structure for 4 ≤ degree ≤ 2*coord.MaxDim.
//     The structure has Dimension() = ceil(degree/2) axes and 2^Dimension()
//     local vertex identities. For every identity it fixes a cyclic order of the
//     degree edge codes (Code), its inverse (Order), and the successor and
//     predecessor tables (Next, Prev).
//   - A Walker is a (vertex identity, spin) pair bound to a structure. Rotate turns
//     it in place, Step crosses the edge it faces and arrives facing back.
//
// How
//
//	The build starts from the square tiling (degree 4, two axes, every identity
//	ordering its codes 0→2→1→3). Each lift adds one axis: the lower half of the
//	identities copies the previous table, the upper half copies it reflected, the
//	two new codes are spliced in around a few seed identities, and eight
//	relaxation sweeps propagate the splice along every square face. An odd
//	degree then unlinks one code of the last axis from every identity (a "half
//	dimension"). Finally the cyclic tables are derived.
//
// Consistency
//
//	Each lift and the final tables are checked: all identities reach full degree,
//	Next and Prev are mutual inverses, and walking around every square face
//	(step, turn, step, turn ...) closes after four edges with the opposite code
//	at the halfway point. Any failure is returned as a *BuildError that unwraps to
//	ErrInconsistent. The lattice must not be used after such an error.
//
// Complexity
//
//   - Build: O(2^dim * degree) per lift and check; at most 6 lifts.
//   - Walker operations: O(1).
package structure
