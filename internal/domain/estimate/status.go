package estimate

import (
	"errors"
	"strings"
)

// Status is an estimate status as stored in the `estimates` table.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	// StatusCompleted is produced by the settlement flow, never by the
	// decision engine; both transition predicates treat it as terminal.
	StatusCompleted Status = "COMPLETED"
)

var ErrInvalidStatus = errors.New("invalid estimate status")

// ParseStatus normalizes (uppercases+trims) and validates a status string.
func ParseStatus(in string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether status is one of the allowed estimate status constants.
func (status Status) Valid() bool {
	switch status {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}

// CanAccept reports whether an estimate in this status may move to
// ACCEPTED. A prior rejection may be reversed; a prior acceptance may not
// be repeated.
func (status Status) CanAccept() bool {
	switch status {
	case StatusPending, StatusRejected:
		return true
	default:
		return false
	}
}

// CanReject reports whether an estimate in this status may move to
// REJECTED. Decided estimates stay decided: no re-reject and no reversal
// out of ACCEPTED.
func (status Status) CanReject() bool {
	return status == StatusPending
}

// Decided reports whether the estimate already carries a driver decision.
func (status Status) Decided() bool {
	return status == StatusAccepted || status == StatusRejected || status == StatusCompleted
}
