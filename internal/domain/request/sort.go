package request

import (
	"errors"
	"strings"
)

// SortMode selects the ordering of a driver's request listing.
type SortMode string

const (
	// SortSoonest orders ascending by moving date (the default).
	SortSoonest SortMode = "soonest"
	// SortRecent orders descending by request creation time.
	SortRecent SortMode = "recent"
)

var ErrInvalidSortMode = errors.New("invalid sort mode")

// ParseSortMode validates a sort string; an empty string falls back to
// the default (soonest).
func ParseSortMode(s string) (SortMode, error) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(s)))
	if mode == "" {
		return SortSoonest, nil
	}
	if mode.Valid() {
		return mode, nil
	}
	return "", ErrInvalidSortMode
}

// Valid reports whether mode is one of the allowed sort constants.
func (mode SortMode) Valid() bool {
	return mode == SortSoonest || mode == SortRecent
}

// String returns the string representation of the SortMode.
func (mode SortMode) String() string {
	return string(mode)
}
