package session

import "fmt"

// BackendError indicates the generation backend failed during a session
// operation. The session remains usable; a fallback assistant turn has
// already been recorded in the transcript.
type BackendError struct {
	Cause error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generation backend failed: %v", e.Cause)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// EmptyInputError indicates a turn was submitted with no usable text.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "empty message"
}

// InvalidStateError indicates an operation was invoked in a session state
// that does not permit it, such as sending to a terminated session or
// overlapping two in-flight turns.
type InvalidStateError struct {
	Op      string
	Message string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
