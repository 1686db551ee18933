// Package crystal is a toolkit for the crystal lattices: tilings by squares
// where four squares meet at every vertex, lifted to 2 through 7 dimensions.
//
// What is crystal?
//
//	A lazily built, unbounded lattice graph with exact geometry on top:
//		• Structure: the cycle table of every vertex identity, degree 4..14
//		• Lattice: nodes and edges materialized on demand, pure or bitruncated
//		• Distances: closed form, cylinder-pruned search, Euclidean, compass
//		• Volumes: ball and boundary counts with arbitrary precision
//		• Landmarks: Euclidean balls placed away from the origin
//
// Packages:
//
//	coord/       integer coordinates, step codes, floating embeddings
//	structure/   Build(degree): the cycle tables and the Walker
//	volume/      regular ball memo and the shift tree for Euclidean counts
//	lattice/     the lazy graph, distance oracle, compass, ball counts, landmarks
//	geometry/    descriptors such as "3.5D" or "4D bitruncated"
//	config/      TOML/YAML settings mapped onto lattice options
//	catalog/     badger-backed cache of computed counts
//	telemetry/   Prometheus metrics fed by lattice events
//	cmd/crystal  the command line front end
//
// Quick ASCII example, the 2D lattice (degree 4) and its bitruncation:
//
//	+---+---+       +   +   +
//	|   |   |         x   x
//	+---o---+       +   o   +
//	|   |   |         x   x
//	+---+---+       +   +   +
//
// In the bitruncated lattice every face o touches only the corner nodes x
// inserted at the centres of the squares around it.
//
//	go get github.com/katalvlaran/crystal
package crystal
