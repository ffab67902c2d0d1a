package element

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind matches any ExhaustivenessError via errors.Is.
	ErrUnknownKind = errors.New("unknown element kind")

	// ErrOptionsMismatch is returned when kind-specific options are passed for another kind.
	ErrOptionsMismatch = errors.New("options do not apply to element kind")
)

// ExhaustivenessError reports a request for an element kind the factory does not implement.
// It is a programming error, never a condition to retry.
type ExhaustivenessError struct {
	Kind Kind
}

func (e *ExhaustivenessError) Error() string {
	return fmt.Sprintf("unimplemented element type %q", string(e.Kind))
}

func (e *ExhaustivenessError) Is(target error) bool {
	return target == ErrUnknownKind
}
