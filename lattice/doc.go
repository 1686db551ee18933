// Package lattice is a lazily materialized, unbounded crystal lattice with a
// distance oracle and ball-volume queries.
//
// What
//
//   - New(degree, variation) builds the crystal structure (package structure)
//     and returns a Lattice holding only the origin.
//   - NodeAt, Move, Neighbors materialize nodes and edges on first use. The
//     pure variation connects faces directly; the bitruncated variation inserts
//     a degree-8 corner node at the centre of every square face.
//   - Distance answers exact graph distances: closed form for pure lattices,
//     a cylinder-pruned breadth-first search (memoized) for bitruncated ones.
//     SpaceDistance answers Euclidean distances between embeddings.
//   - CompassDistance uses the compass, a table of BFS layers over
//     representatives reduced modulo the detected period along one axis, to
//     answer "how far along the axis of travel" in O(1) after a warm-up. The
//     reading is signed: 0 at the origin, negative behind it.
//   - BallCount, BoundaryCount and EuclideanBallCount count nodes in balls;
//     landmarks (PlaceLandmark) give a Euclidean ball placed away from the
//     origin with its own relative distance and volume.
//   - Walk is a bounded breadth-first traversal over handles.
//
// Errors
//
//	Construction errors (bad degree, inconsistent structure, bad options) are
//	returned by New and are fatal for that lattice. A failed cylinder search is
//	not an error: Distance returns NotFound and logs the failure. A compass that
//	cannot accept a period returns ErrCompassUnstable.
//
// Memory
//
//	The arena, the distance memo, the compass tables and the ball-count caches
//	grow for the lifetime of the Lattice and are never evicted. Drop the Lattice
//	to release them.
//
// Concurrency
//
//	None. Every query may materialize nodes; callers sharing a Lattice across
//	goroutines must serialize all calls.
package lattice
