package handlers

import (
	"errors"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain sentinel errors to HTTP statuses. Anything
// unrecognised is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidKind):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyDecided),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotApproved):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnknownOwner):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func parseKind(raw string) (domain.RecordKind, error) {
	kind := domain.RecordKind(raw)
	if !kind.Valid() {
		return "", domain.ErrInvalidKind
	}
	return kind, nil
}
