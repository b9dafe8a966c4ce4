package workspace

import "fmt"

// SelectionError reports a selection expression that could not be parsed.
// The whole Select call fails and no partial selection is applied.
type SelectionError struct {
	Expr string
	Err  error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid selection expression %q: %v", e.Expr, e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// GraphResolutionError reports an internal invariant violation that makes
// the workspace graph ill-formed, such as duplicate workspace names. It is
// fatal: no scheduling happens on an ill-formed graph. Unresolved external
// dependencies are not errors.
type GraphResolutionError struct {
	Reason string
}

func (e *GraphResolutionError) Error() string {
	return "workspace graph: " + e.Reason
}
