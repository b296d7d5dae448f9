package dem

import "errors"

// Sentinel errors for dem. Callers branch on these via errors.Is; messages
// are never stringified into the sentinel itself (context is added with
// %w at the call site, per lvlath's convention).
var (
	// ErrNoDetectors indicates AddMechanism was called with zero detectors;
	// a mechanism must trigger either one (boundary) or two detectors.
	ErrNoDetectors = errors.New("dem: mechanism has no detectors")

	// ErrTooManyDetectors indicates AddMechanism was called with more than
	// two detectors; this decoder only models pairwise and boundary
	// mechanisms.
	ErrTooManyDetectors = errors.New("dem: mechanism triggers more than two detectors")

	// ErrEmptyDetectorID indicates one of the detector names was the empty
	// string.
	ErrEmptyDetectorID = errors.New("dem: detector ID is empty")

	// ErrInvalidProbability indicates p was outside the open interval
	// (0, 1); p=0 and p=1 correspond to infinite log-odds weight and are
	// not representable.
	ErrInvalidProbability = errors.New("dem: probability out of range")

	// ErrObservableOverflow indicates an observable index did not fit in
	// a MatchingGraph's 64-bit mask.
	ErrObservableOverflow = errors.New("dem: observable index exceeds mask width")

	// ErrDuplicateDetector indicates a two-detector mechanism named the
	// same detector twice.
	ErrDuplicateDetector = errors.New("dem: mechanism names the same detector twice")

	// ErrNoMechanisms indicates Discretize was called before any mechanism
	// was added; there is no graph to build.
	ErrNoMechanisms = errors.New("dem: no mechanisms added")

	// ErrResolutionOverflow indicates the requested discretization level
	// count is not positive or exceeds the largest count Discretize accepts
	// (maxDiscretizationLevels).
	ErrResolutionOverflow = errors.New("dem: discretization levels overflow integer resolution")
)
