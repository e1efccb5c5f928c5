package marshal

import (
	"errors"
	"fmt"
)

// Errors reported while building kernel arguments. They reach callers wrapped in an
// *ArgError naming the offending argument.
var (
	ErrRankExceeded   = errors.New("number of dimensions exceeds limit (5)")
	ErrInvalidData    = errors.New("data pointer is invalid")
	ErrStrideOverflow = errors.New("stride or size does not fit in 32 bits")
	ErrArgListFull    = errors.New("argument list is full")
)

// ArgError ties a marshaling failure to the argument name the caller supplied.
type ArgError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Unwrap provides compatibility with errors.Is and errors.As.
func (e *ArgError) Unwrap() error {
	return e.Err
}

func argError(name string, err error) error {
	if err == nil {
		return nil
	}
	return &ArgError{Name: name, Err: err}
}
