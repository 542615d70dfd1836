package request

import (
	"errors"
	"strings"
	"time"
)

// MovingRequest is a customer's moving order. It is created by the
// customer flow and is immutable to the driver-side matcher.
type MovingRequest struct {
	ID          int64
	UserID      int64
	MovingType  MovingType
	MovingDate  time.Time
	Origin      string
	Destination string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrEmptyOrigin      = errors.New("origin address is required")
	ErrEmptyDestination = errors.New("destination address is required")
	ErrPastMovingDate   = errors.New("moving date must not be in the past")
)

// NewMovingRequest validates the customer input and builds an unsaved request.
func NewMovingRequest(userID int64, mt MovingType, movingDate time.Time, origin, destination string) (*MovingRequest, error) {
	if !mt.Valid() {
		return nil, ErrInvalidMovingType
	}
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" {
		return nil, ErrEmptyOrigin
	}
	if destination == "" {
		return nil, ErrEmptyDestination
	}
	if movingDate.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		return nil, ErrPastMovingDate
	}
	return &MovingRequest{
		UserID:      userID,
		MovingType:  mt,
		MovingDate:  movingDate,
		Origin:      origin,
		Destination: destination,
	}, nil
}
