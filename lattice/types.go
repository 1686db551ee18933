package lattice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/crystal/coord"
)

// Sentinel errors.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("lattice: invalid option supplied")

	// ErrInvalidCoord is returned by NodeAt for a coordinate that is not a
	// node of the lattice.
	ErrInvalidCoord = errors.New("lattice: coordinate is not a lattice node")

	// ErrUnknownVariation is returned by ParseVariation.
	ErrUnknownVariation = errors.New("lattice: unknown variation")

	// ErrClosedForm is returned by counts that exist in closed form only for the
	// pure variation.
	ErrClosedForm = errors.New("lattice: closed form requires the pure variation")

	// ErrNegativeRadius is returned for a negative ball radius.
	ErrNegativeRadius = errors.New("lattice: negative radius")

	// ErrCompassUnstable is returned when the compass warm-up exceeds its
	// iteration ceiling without accepting a period.
	ErrCompassUnstable = errors.New("lattice: compass period did not stabilise")

	// ErrLandmark is returned when a landmark cannot be placed.
	ErrLandmark = errors.New("lattice: cannot place landmark")

	// ErrUnboundedWalk is returned by Walk without a positive depth limit.
	ErrUnboundedWalk = errors.New("lattice: walk needs a positive depth limit")
)

// NotFound is the distance reported when the cylinder search gives up.
const NotFound = 999999

// CornerDegree is the degree of a node inserted by bitruncation.
const CornerDegree = 8

// Handle identifies a node of one Lattice. Handles are dense indices and stay
// valid for the lifetime of the lattice.
type Handle int

// NoNode is the zero-value handle for an absent neighbor.
const NoNode Handle = -1

// Variation selects how faces are connected.
type Variation int

const (
	// Pure connects every face node directly to its degree neighbors.
	Pure Variation = iota
	// Bitruncated inserts a corner node at the centre of every square face
	// spanned by two cyclically adjacent edges; faces then touch only corners.
	Bitruncated
)

func (v Variation) String() string {
	switch v {
	case Pure:
		return "pure"
	case Bitruncated:
		return "bitruncated"
	}
	return fmt.Sprintf("Variation(%d)", int(v))
}

// ParseVariation parses "pure" or "bitruncated" (case-insensitive).
func ParseVariation(s string) (Variation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pure":
		return Pure, nil
	case "bitruncated":
		return Bitruncated, nil
	}
	return Pure, fmt.Errorf("%w: %q", ErrUnknownVariation, s)
}

// Observer receives lattice events. Implementations must be cheap; they run
// inline with node creation and searches.
type Observer interface {
	// NodeCreated is called once per materialized node.
	NodeCreated(v Variation, halfStep bool)
	// SearchFinished is called after every cylinder search.
	SearchFinished(found bool, listed int)
	// CompassBuilt is called once the compass accepts a period.
	CompassBuilt(cycle, modulus, visited int)
}

type nopObserver struct{}

func (nopObserver) NodeCreated(Variation, bool) {}
func (nopObserver) SearchFinished(bool, int)    {}
func (nopObserver) CompassBuilt(int, int, int)  {}

// Default tunables.
const (
	DefaultSearchLimit       = 1 << 20
	DefaultCompassAxis       = 1
	DefaultCompassModulus    = 64
	DefaultCompassRepeatBase = 16
	DefaultCompassGrowth     = 2
	DefaultCompassMaxWarmup  = 1 << 22
	DefaultCompassMaxModulus = 64 * DefaultCompassModulus
	DefaultLandmarkWalkLimit = 1 << 16
	DefaultLandmarkMargin    = 5
)

// Option configures a Lattice via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the tunables of a Lattice.
type Options struct {
	// Observer receives node, search and compass events.
	Observer Observer

	// SearchLimit caps the number of nodes one cylinder search may list.
	SearchLimit int

	// CompassAxis is the axis of travel of the compass.
	CompassAxis int
	// CompassModulus is the base window of the representative reduction. A
	// representative is the embedding scaled by CompassModulus/coord.Period, so
	// the window spans one period of the lattice. Must be a positive multiple of
	// coord.Period.
	CompassModulus int
	// CompassRepeatBase is the base number of consistent repeats needed to
	// accept a period; the seed count is added to it.
	CompassRepeatBase int
	// CompassGrowth scales how long an unstable window is tolerated before it
	// is enlarged by CompassModulus.
	CompassGrowth int
	// CompassMaxWarmup caps the number of nodes listed by the warm-up.
	CompassMaxWarmup int
	// CompassMaxModulus caps the enlarged window.
	CompassMaxModulus int

	// LandmarkWalkLimit caps the random walk of PlaceLandmark.
	LandmarkWalkLimit int
	// LandmarkMargin is the extra distance between the origin and a landmark's rim.
	LandmarkMargin int

	err error
}

// DefaultOptions returns the default tunables.
func DefaultOptions() Options {
	return Options{
		Observer:          nopObserver{},
		SearchLimit:       DefaultSearchLimit,
		CompassAxis:       DefaultCompassAxis,
		CompassModulus:    DefaultCompassModulus,
		CompassRepeatBase: DefaultCompassRepeatBase,
		CompassGrowth:     DefaultCompassGrowth,
		CompassMaxWarmup:  DefaultCompassMaxWarmup,
		CompassMaxModulus: DefaultCompassMaxModulus,
		LandmarkWalkLimit: DefaultLandmarkWalkLimit,
		LandmarkMargin:    DefaultLandmarkMargin,
	}
}

// WithObserver installs an event observer. nil is ignored.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// WithSearchLimit caps the cylinder search. n must be positive.
func WithSearchLimit(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: search limit must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.SearchLimit = n
	}
}

// WithCompassAxis selects the axis of travel. It must be below the lattice
// dimension; New checks the upper bound.
func WithCompassAxis(axis int) Option {
	return func(o *Options) {
		if axis < 0 || axis >= coord.MaxDim {
			o.err = fmt.Errorf("%w: compass axis %d", ErrOptionViolation, axis)
			return
		}
		o.CompassAxis = axis
	}
}

// WithCompassTuning sets the period-detection constants.
func WithCompassTuning(modulus, repeatBase, growth int) Option {
	return func(o *Options) {
		switch {
		case modulus <= 0 || modulus%coord.Period != 0:
			o.err = fmt.Errorf("%w: compass modulus %d must be a positive multiple of %d",
				ErrOptionViolation, modulus, coord.Period)
		case repeatBase <= 0:
			o.err = fmt.Errorf("%w: compass repeat base must be positive (%d)", ErrOptionViolation, repeatBase)
		case growth <= 0:
			o.err = fmt.Errorf("%w: compass growth must be positive (%d)", ErrOptionViolation, growth)
		default:
			o.CompassModulus, o.CompassRepeatBase, o.CompassGrowth = modulus, repeatBase, growth
		}
	}
}

// WithCompassLimits sets the iteration ceiling of the compass warm-up.
func WithCompassLimits(maxWarmup, maxModulus int) Option {
	return func(o *Options) {
		if maxWarmup <= 0 || maxModulus <= 0 {
			o.err = fmt.Errorf("%w: compass limits must be positive (%d, %d)", ErrOptionViolation, maxWarmup, maxModulus)
			return
		}
		o.CompassMaxWarmup, o.CompassMaxModulus = maxWarmup, maxModulus
	}
}

// WithLandmark sets the random-walk cap and the rim margin used by PlaceLandmark.
func WithLandmark(walkLimit, margin int) Option {
	return func(o *Options) {
		if walkLimit <= 0 || margin < 1 {
			o.err = fmt.Errorf("%w: landmark walk limit %d, margin %d", ErrOptionViolation, walkLimit, margin)
			return
		}
		o.LandmarkWalkLimit, o.LandmarkMargin = walkLimit, margin
	}
}
