package state

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an element id is not in the scene.
var ErrNotFound = errors.New("element not found")

// PreconditionError reports a scene that does not match what the caller
// required, such as the wrong number of selected elements.
type PreconditionError struct {
	Subject  string
	Expected int
	Got      int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("expected %d %s; got %d", e.Expected, e.Subject, e.Got)
}
