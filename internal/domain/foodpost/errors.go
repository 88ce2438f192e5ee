package foodpost

import "food-rescue/internal/pkg/errs"

var (
	ErrValidation    = errs.New("validation error")
	ErrNotFound      = errs.New("food post not found")
	ErrConflict      = errs.New("food post conflict")
	ErrExpired       = errs.New("food post expired")
	ErrNotReserved   = errs.New("food post not reserved by recipient")
	ErrForbidden     = errs.New("forbidden")
	ErrInvalidStatus = errs.New("invalid food post status")

	// ErrVersionConflict is returned by stores when the expected version is stale.
	ErrVersionConflict = errs.New("food post version conflict")
	// ErrInvalidTransition is returned when an edge is not part of the state machine.
	ErrInvalidTransition = errs.New("invalid status transition")
)

func validationErr(format string, args ...any) error {
	return errs.Mark(errs.Newf(format, args...), ErrValidation)
}
