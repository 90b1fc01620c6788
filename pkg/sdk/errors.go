package sdk

import (
	"errors"
	"fmt"
)

var errNoResolver = errors.New("no widget directory resolver configured")

// CallbackError reports a failed host callback: a null or missing callback
// pointer, a nonzero return from the host, or an argument that cannot cross
// the boundary.
type CallbackError struct {
	Op  string
	Err error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("engine callback %s: %v", e.Op, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }
