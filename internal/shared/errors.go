package shared

import "errors"

// Failure kinds surfaced by reconcile services. Command drivers map each kind
// to a distinct process exit code, so services must wrap rather than replace
// them.
var (
	// ErrMalformedInput marks a required input whose content is not a JSON-like
	// object at the root or cannot be parsed at all.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingResource marks a mandatory file or object that is absent.
	ErrMissingResource = errors.New("missing required resource")

	// ErrDriftDetected marks a check-mode run whose persisted output differs
	// from the freshly computed output or does not exist.
	ErrDriftDetected = errors.New("drift detected")
)
