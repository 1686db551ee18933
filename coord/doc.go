// Package coord defines the integer and floating-point coordinate vectors used by
// the crystal lattice, together with the edge-code arithmetic shared by the
// structure builder, the walker and the lazy graph map.
//
// What
//
//   - Coord: an integer vector of MaxDim entries. Face nodes of the lattice sit on
//     coordinates whose entries are all multiples of FullStep; nodes inserted by
//     bitruncation sit on half steps (odd entries).
//   - LD: a float vector of the same width, used for embeddings and Euclidean
//     geometry.
//   - Edge codes: code = 2*axis + sign, where sign 1 means the positive direction.
//     Axis, Bit and Code convert between the packed form and its parts.
//
// Floor semantics
//
//	GMod and GDiv round toward negative infinity, so that periodic reductions of
//	negative coordinates land in [0, b). Round uses floor(x + 0.5136) rather than
//	floor(x + 0.5): values produced by averaging embeddings sit exactly on .5
//	boundaries and the offset keeps their rounding stable.
package coord
