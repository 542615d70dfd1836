package estimate

import "time"

// RejectPrice is the placeholder price written on rejection.
const RejectPrice int64 = 0

// Estimate is a driver's price/decision record attached to a moving
// request. At most one row exists per (driver, request) pair; its status
// is the authoritative decision state for that pair.
type Estimate struct {
	ID        int64
	RequestID int64
	DriverID  int64
	Status    Status
	Price     int64
	Reason    string
	// IsRequest distinguishes a driver-initiated designation decision
	// from a general pool estimate.
	IsRequest bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
