package profile

import (
	"time"

	"move-market/internal/domain/region"
	"move-market/internal/domain/request"
)

// DriverProfile is a driver's configuration: the service categories the
// driver works and the regions the driver serves. A profile with zero
// categories or zero regions makes the driver ineligible for listing
// and deciding requests.
type DriverProfile struct {
	ID           int64
	UserID       int64
	Nickname     string
	ServiceTypes []request.MovingType
	Regions      []region.Code
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Configured reports whether the profile has at least one service
// category and one region.
func (p *DriverProfile) Configured() bool {
	return p != nil && len(p.ServiceTypes) > 0 && len(p.Regions) > 0
}

// Serves reports whether mt is one of the driver's service categories.
func (p *DriverProfile) Serves(mt request.MovingType) bool {
	for _, st := range p.ServiceTypes {
		if st == mt {
			return true
		}
	}
	return false
}

// Covers reports whether code is one of the driver's configured regions.
func (p *DriverProfile) Covers(code region.Code) bool {
	for _, r := range p.Regions {
		if r == code {
			return true
		}
	}
	return false
}
