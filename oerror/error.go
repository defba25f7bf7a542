package oerror

import "fmt"

// Error is returned for invalid configuration and rejected setup of climbsim components.
type Error struct {
	Err string
}

// New creates an Error with a formatted message.
func New(format string, args ...any) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
