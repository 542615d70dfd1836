package service

import (
	"context"
	"fmt"

	"move-market/internal/domain/profile"
	"move-market/internal/domain/user"
)

// resolveDriver confirms userID belongs to an active DRIVER with a
// configured profile and returns that profile. This is the sole
// authorization gate for every listing and decision operation.
// Must run inside a unit of work.
func (service *marketService) resolveDriver(ctx context.Context, userID int64) (*profile.DriverProfile, error) {
	u, err := service.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.Active() || u.Role != user.RoleDriver {
		return nil, ErrNotDriver
	}

	p, err := service.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load driver profile: %w", err)
	}
	if p == nil {
		return nil, ErrNotDriver
	}
	if !p.Configured() {
		return nil, ErrDriverNotConfigured
	}

	return p, nil
}
