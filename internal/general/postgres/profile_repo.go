package postgres

import (
	"context"
	"errors"
	"fmt"

	"move-market/internal/domain/profile"
	"move-market/internal/domain/region"
	"move-market/internal/domain/request"
	"move-market/internal/ports"

	"github.com/jackc/pgx/v5"
)

// DriverProfileRepo reads driver profiles with their service categories
// and regions using pgx and plain SQL.
type DriverProfileRepo struct{}

// NewDriverProfileRepo constructs a new DriverProfileRepo.
func NewDriverProfileRepo() ports.DriverProfileRepository {
	return &DriverProfileRepo{}
}

// GetByUserID fetches the driver profile owned by userID together with
// its configured service categories and regions. Returns (nil, nil)
// when the user has no profile row.
func (repo *DriverProfileRepo) GetByUserID(ctx context.Context, userID int64) (*profile.DriverProfile, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out profile.DriverProfile
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, nickname, created_at, updated_at
		FROM driver_profiles
		WHERE user_id = $1
	`, userID).Scan(&out.ID, &out.UserID, &out.Nickname, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query driver profile: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT moving_type
		FROM driver_services
		WHERE driver_id = $1
		ORDER BY moving_type
	`, out.ID)
	if err != nil {
		return nil, fmt.Errorf("query driver services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mt string
		if err := rows.Scan(&mt); err != nil {
			return nil, fmt.Errorf("scan driver service: %w", err)
		}
		out.ServiceTypes = append(out.ServiceTypes, request.MovingType(mt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	regionRows, err := tx.Query(ctx, `
		SELECT region
		FROM driver_regions
		WHERE driver_id = $1
		ORDER BY region
	`, out.ID)
	if err != nil {
		return nil, fmt.Errorf("query driver regions: %w", err)
	}
	defer regionRows.Close()

	for regionRows.Next() {
		var code string
		if err := regionRows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan driver region: %w", err)
		}
		out.Regions = append(out.Regions, region.Code(code))
	}
	if err := regionRows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &out, nil
}
