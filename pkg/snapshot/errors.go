package snapshot

import "fmt"

// RenderError wraps any capture failure that is not a provisioning problem.
// It is recoverable: the handler reports it to the user and the process
// keeps serving.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to generate screenshot: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
