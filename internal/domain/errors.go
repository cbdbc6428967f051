package domain

import "errors"

// Sentinel errors shared across repositories, services and handlers.
// Handlers translate these into HTTP statuses; nothing below the API
// layer formats user-facing messages.
var (
	ErrNotFound           = errors.New("registry: not found")
	ErrEmailTaken         = errors.New("registry: email already registered")
	ErrInvalidInput       = errors.New("registry: invalid input")
	ErrInvalidCredentials = errors.New("registry: invalid email or password")
	ErrUnknownOwner       = errors.New("registry: owner does not reference an existing user")
	ErrInvalidTransition  = errors.New("registry: invalid status transition")
	ErrAlreadyDecided     = errors.New("registry: application already decided")
	ErrNotApproved        = errors.New("registry: application is not approved")
	ErrInvalidKind        = errors.New("registry: unknown record kind")
)
