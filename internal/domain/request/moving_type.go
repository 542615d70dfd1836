package request

import (
	"errors"
	"strings"
)

// MovingType is the service category of a moving request as stored in
// the `moving_requests` table.
type MovingType string

const (
	MovingSmall  MovingType = "SMALL"
	MovingHome   MovingType = "HOME"
	MovingOffice MovingType = "OFFICE"
)

var ErrInvalidMovingType = errors.New("invalid moving type")

// ParseMovingType normalizes (uppercases+trims) and validates a moving type string.
func ParseMovingType(s string) (MovingType, error) {
	mt := MovingType(strings.ToUpper(strings.TrimSpace(s)))
	if mt.Valid() {
		return mt, nil
	}
	return "", ErrInvalidMovingType
}

// Valid reports whether mt is one of the allowed moving type constants.
func (mt MovingType) Valid() bool {
	switch mt {
	case MovingSmall, MovingHome, MovingOffice:
		return true
	default:
		return false
	}
}

// String returns the string representation of the MovingType.
func (mt MovingType) String() string {
	return string(mt)
}
