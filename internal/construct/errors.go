package construct

import (
	"errors"
	"fmt"
)

var (
	// ErrModelConstraint reports a request that would break a model rule,
	// such as typing a construct with no type or a variant scope that adds
	// no theme to its name.
	ErrModelConstraint = errors.New("model constraint violation")

	// ErrIdentityConstraint reports an identifier that is already held by a
	// construct it cannot be merged with.
	ErrIdentityConstraint = errors.New("identity constraint violation")

	// ErrReificationConflict reports a topic that already reifies another
	// construct.
	ErrReificationConflict = errors.New("reification conflict")

	// ErrTopicInUse reports removal of a topic still referenced as a type,
	// player, theme or reifier.
	ErrTopicInUse = errors.New("topic in use")

	// ErrUnsupported reports a call whose preconditions do not hold: an
	// unknown handle, a handle of the wrong kind or a missing parent.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrInvalidLocator reports a malformed or relative locator.
	ErrInvalidLocator = errors.New("invalid locator")
)

// ReificationConflictError is returned when Reifier already reifies Existing
// and was asked to reify Requested.
type ReificationConflictError struct {
	Reifier   ID
	Existing  Ref
	Requested Ref
}

func (e *ReificationConflictError) Error() string {
	return fmt.Sprintf("reification conflict: topic %s already reifies %s, cannot reify %s", e.Reifier, e.Existing, e.Requested)
}

// Unwrap lets errors.Is match ErrReificationConflict.
func (e *ReificationConflictError) Unwrap() error { return ErrReificationConflict }

// Unknown wraps ErrUnsupported for a handle the caller should not have.
func Unknown(what string, id ID) error {
	return fmt.Errorf("%w: unknown %s %s", ErrUnsupported, what, id)
}
