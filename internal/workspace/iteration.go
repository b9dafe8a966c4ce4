package workspace

import "fmt"

// IterationMethod selects the concurrency discipline used by ForEach.
type IterationMethod string

const (
	// IterateParallel launches every selected action at once with no
	// ordering constraint and no concurrency cap.
	IterateParallel IterationMethod = "parallel"
	// IterateSequential runs actions one at a time in dependency order.
	IterateSequential IterationMethod = "sequential"
	// IterateStream runs up to the configured concurrency at once, starting
	// a workspace only after its selected dependencies have settled.
	IterateStream IterationMethod = "stream"
	// IterateIndependent is IterateStream plus cascade skipping: dependents
	// of a failed workspace are marked skipped instead of run.
	IterateIndependent IterationMethod = "independent"
)

// ParseIterationMethod parses a method string, defaulting to "parallel".
func ParseIterationMethod(s string) (IterationMethod, error) {
	switch IterationMethod(s) {
	case IterateParallel, "":
		return IterateParallel, nil
	case IterateSequential:
		return IterateSequential, nil
	case IterateStream:
		return IterateStream, nil
	case IterateIndependent:
		return IterateIndependent, nil
	default:
		return "", fmt.Errorf("unknown iteration method: %q (must be parallel, sequential, stream, or independent)", s)
	}
}
