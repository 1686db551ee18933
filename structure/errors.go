// SPDX-License-Identifier: MIT
// Package: crystal/structure
//
// errors.go: sentinel errors and the structured build report.
//
// Error policy:
//   • Callers branch with errors.Is(err, ErrX).
//   • Construction failures carry a *BuildError with the individual findings;
//     errors.As exposes it, errors.Is(err, ErrInconsistent) matches it.

package structure

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDegree indicates a degree outside [MinDegree, MaxDegree].
var ErrUnsupportedDegree = errors.New("structure: unsupported degree")

// ErrInconsistent indicates that the computed tables violate a structural
// invariant. It is construction-fatal.
var ErrInconsistent = errors.New("structure: inconsistent crystal structure")

// IssueKind classifies a single consistency finding.
type IssueKind int

const (
	// InsertMismatch: a relaxation sweep wanted a different neighbor than the one
	// already spliced in.
	InsertMismatch IssueKind = iota
	// Underfilled: an identity did not reach the full degree.
	Underfilled
	// InverseBroken: Prev is not the inverse of Next.
	InverseBroken
	// FaceOpen: a square face walk did not close after four edges.
	FaceOpen
	// CycleBroken: following Next from code 0 did not return to code 0.
	CycleBroken
)

func (k IssueKind) String() string {
	switch k {
	case InsertMismatch:
		return "insert mismatch"
	case Underfilled:
		return "underfilled"
	case InverseBroken:
		return "next/prev not inverse"
	case FaceOpen:
		return "open face"
	case CycleBroken:
		return "broken cycle"
	}
	return fmt.Sprintf("IssueKind(%d)", int(k))
}

// Inconsistency is one finding of a consistency check.
type Inconsistency struct {
	Kind   IssueKind
	Vertex int // local vertex identity
	Code   int // edge code, -1 when not applicable
}

func (i Inconsistency) String() string {
	return fmt.Sprintf("%s at vertex %d code %d", i.Kind, i.Vertex, i.Code)
}

// BuildError reports every inconsistency found at one stage of Build.
type BuildError struct {
	Degree    int
	Dimension int
	Stage     string
	Issues    []Inconsistency
}

func (e *BuildError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("structure: degree %d, dimension %d, %s: inconsistent", e.Degree, e.Dimension, e.Stage)
	}
	return fmt.Sprintf("structure: degree %d, dimension %d, %s: %d inconsistencies (first: %s)",
		e.Degree, e.Dimension, e.Stage, len(e.Issues), e.Issues[0])
}

// Unwrap makes errors.Is(err, ErrInconsistent) hold.
func (e *BuildError) Unwrap() error { return ErrInconsistent }
