package relationship

import (
	"errors"
)

var (
	ErrUnknownMember   = errors.New("unknown member")
	ErrUnsupportedVerb = errors.New("unsupported verb")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidRelation = errors.New("invalid relation")
)

// CallError is returned by all operations of the Synchronizer.
// It identifies the attempted method, the property that was tried last and the entity type.
// Use errors.Is with one of the sentinel errors to check for the kind of failure.
type CallError struct {
	Method   string
	Property string
	Entity   string
	Err      error
}

func (e *CallError) Error() string {
	msg := e.Err.Error() + ": method: " + e.Method

	if e.Property != "" && e.Property != e.Method {
		msg += ", or property: " + e.Property
	}

	return msg + " in: " + e.Entity
}

func (e *CallError) Unwrap() error {
	return e.Err
}
