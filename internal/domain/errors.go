package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrOrderNotFound  = errors.New("order not found")
	ErrUserNotFound   = errors.New("user not found")
)

var (
	ErrValidation         = errors.New("validation error")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrReviewExists       = errors.New("review for this flight already exists")
	ErrForbidden          = errors.New("access denied")
)

// InsufficientSeatsError aborts a checkout when a flight cannot cover the
// requested passenger count. An unknown flight id is reported the same way:
// the conditional seat decrement affects zero rows in both cases.
type InsufficientSeatsError struct {
	FlightID int64
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("not enough available seats for flight %d", e.FlightID)
}
