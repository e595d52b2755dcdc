package binding

import (
	"errors"
	"fmt"
)

// Sentinel errors of the query layer. Match with errors.Is. Failures
// returned by an Executor are never wrapped into these; they pass
// through Get unchanged so callers can inspect backend errors directly.
var (
	// ErrInvalidArgument indicates a malformed builder argument, e.g.
	// a From/To value that carries no usable entity identity.
	ErrInvalidArgument = errors.New("binding: invalid argument")

	// ErrNoExecutor indicates Get was called on a query that never had
	// an executor attached via WithExecutor.
	ErrNoExecutor = errors.New("binding: no query executor configured")

	// ErrUnsupported indicates a capability the current backend tier
	// does not provide. Concrete instances are *UnsupportedError.
	ErrUnsupported = errors.New("binding: capability not available")
)

// UnsupportedError reports a call into a capability that is not
// available in the current backend tier. It matches ErrUnsupported via
// errors.Is; use errors.As to recover the capability name.
type UnsupportedError struct {
	Capability string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("binding: %s is not available in the current backend tier", e.Capability)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

func errUnsupported(capability string) error {
	return &UnsupportedError{Capability: capability}
}
