package postgres

import (
	"context"
	"errors"
	"fmt"

	"move-market/internal/domain/estimate"
	"move-market/internal/domain/request"
	"move-market/internal/ports"

	"github.com/jackc/pgx/v5"
)

// EstimateRepo persists estimates using pgx and plain SQL. One row
// exists per (driver, request) pair, enforced by a unique index.
type EstimateRepo struct{}

// NewEstimateRepo constructs a new EstimateRepo.
func NewEstimateRepo() ports.EstimateRepository {
	return &EstimateRepo{}
}

// Create inserts a new estimate row.
func (repo *EstimateRepo) Create(ctx context.Context, e *estimate.Estimate) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO estimates (request_id, driver_id, status, price, reason, is_request)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, e.RequestID, e.DriverID, e.Status.String(), e.Price, e.Reason, e.IsRequest,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert estimate: %w", err)
	}

	return nil
}

// FindLatestForPair returns the driver's most recent estimate on the
// request, or (nil, nil) when none exists.
func (repo *EstimateRepo) FindLatestForPair(ctx context.Context, driverID, requestID int64) (*estimate.Estimate, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out estimate.Estimate
	var status string

	err = tx.QueryRow(ctx, `
		SELECT id, request_id, driver_id, status, price, reason, is_request, created_at, updated_at
		FROM estimates
		WHERE driver_id = $1 AND request_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, driverID, requestID).Scan(
		&out.ID, &out.RequestID, &out.DriverID, &status, &out.Price, &out.Reason, &out.IsRequest, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest estimate: %w", err)
	}
	out.Status = estimate.Status(status)

	return &out, nil
}

// ApplyDecision moves an estimate to the decision's status only if the
// row still carries the expected current status (compare-and-swap).
// Returns false when zero rows matched, meaning a concurrent call
// decided the estimate first.
func (repo *EstimateRepo) ApplyDecision(ctx context.Context, id int64, from estimate.Status, d estimate.Decision) (bool, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE estimates
		SET status = $1,
		    price = $2,
		    reason = $3,
		    updated_at = now()
		WHERE id = $4 AND status = $5
	`, d.Status().String(), d.Price(), d.Reason(), id, from.String())
	if err != nil {
		return false, fmt.Errorf("update estimate decision: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListRejectedByDriver returns one page of the driver's rejected
// estimates joined with their requests, plus the total count.
func (repo *EstimateRepo) ListRejectedByDriver(ctx context.Context, driverID int64, limit, offset int) ([]ports.RejectedEstimate, int, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := tx.QueryRow(ctx, `
		SELECT count(*)
		FROM estimates
		WHERE driver_id = $1 AND status = 'REJECTED'
	`, driverID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rejected estimates: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT e.id, e.request_id, e.driver_id, e.status, e.price, e.reason, e.is_request, e.created_at, e.updated_at,
		       r.id, r.user_id, r.moving_type, r.moving_date, r.origin_address, r.destination_address, r.created_at, r.updated_at
		FROM estimates e
		JOIN moving_requests r ON r.id = e.request_id
		WHERE e.driver_id = $1 AND e.status = 'REJECTED'
		ORDER BY e.updated_at DESC
		LIMIT $2 OFFSET $3
	`, driverID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query rejected estimates: %w", err)
	}
	defer rows.Close()

	var out []ports.RejectedEstimate
	for rows.Next() {
		var re ports.RejectedEstimate
		var estStatus, mt string
		if err := rows.Scan(
			&re.Estimate.ID, &re.Estimate.RequestID, &re.Estimate.DriverID, &estStatus, &re.Estimate.Price,
			&re.Estimate.Reason, &re.Estimate.IsRequest, &re.Estimate.CreatedAt, &re.Estimate.UpdatedAt,
			&re.Request.ID, &re.Request.UserID, &mt, &re.Request.MovingDate, &re.Request.Origin,
			&re.Request.Destination, &re.Request.CreatedAt, &re.Request.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan rejected estimate: %w", err)
		}
		re.Estimate.Status = estimate.Status(estStatus)
		re.Request.MovingType = request.MovingType(mt)
		out = append(out, re)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return out, total, nil
}
