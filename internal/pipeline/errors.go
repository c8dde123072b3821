package pipeline

import "errors"

var (
	// ErrForbidden means the requester role lacks the capability.
	ErrForbidden = errors.New("role not permitted for this transition")
	// ErrInvalidState means the current status does not permit the transition.
	ErrInvalidState = errors.New("transition not valid from current state")
)
