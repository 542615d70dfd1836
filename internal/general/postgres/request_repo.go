package postgres

import (
	"context"
	"fmt"
	"strconv"

	"move-market/internal/domain/estimate"
	"move-market/internal/domain/request"
	"move-market/internal/ports"
)

// RequestRepo persists moving requests using pgx and plain SQL.
type RequestRepo struct{}

// NewRequestRepo constructs a new RequestRepo.
func NewRequestRepo() ports.RequestRepository {
	return &RequestRepo{}
}

// CreateRequest inserts a new moving request row.
func (repo *RequestRepo) CreateRequest(ctx context.Context, r *request.MovingRequest) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO moving_requests (user_id, moving_type, moving_date, origin_address, destination_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.UserID, r.MovingType.String(), r.MovingDate, r.Origin, r.Destination,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert moving request: %w", err)
	}

	return nil
}

// ListByUser returns one page of a customer's own requests plus the
// total count, both read in the same transaction for consistency.
func (repo *RequestRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]request.MovingRequest, int, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := tx.QueryRow(ctx, `
		SELECT count(*) FROM moving_requests WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requests by user: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id, user_id, moving_type, moving_date, origin_address, destination_address, created_at, updated_at
		FROM moving_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query requests by user: %w", err)
	}
	defer rows.Close()

	var out []request.MovingRequest
	for rows.Next() {
		var r request.MovingRequest
		var mt string
		if err := rows.Scan(&r.ID, &r.UserID, &mt, &r.MovingDate, &r.Origin, &r.Destination, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan request: %w", err)
		}
		r.MovingType = request.MovingType(mt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return out, total, nil
}

// FindCandidates returns the driver-visible request pool for q together
// with the driver's own estimates per request (most recent first). The
// region post-filter and paging happen in the service layer, so this
// query is unbounded by design.
func (repo *RequestRepo) FindCandidates(ctx context.Context, q ports.CandidateQuery) ([]ports.Candidate, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	types := make([]string, 0, len(q.MovingTypes))
	for _, mt := range q.MovingTypes {
		types = append(types, mt.String())
	}

	sql := `
		SELECT r.id, r.user_id, r.moving_type, r.moving_date, r.origin_address, r.destination_address, r.created_at, r.updated_at
		FROM moving_requests r
		WHERE r.moving_type = ANY($1)`
	args := []any{types}

	if q.RequestID != nil {
		args = append(args, *q.RequestID)
		sql += ` AND r.id = $` + strconv.Itoa(len(args))
	}
	if q.Designated != nil {
		args = append(args, q.DriverID)
		sub := ` (SELECT 1 FROM estimates e WHERE e.request_id = r.id AND e.driver_id = $` + strconv.Itoa(len(args)) + `)`
		if *q.Designated {
			sql += ` AND EXISTS` + sub
		} else {
			sql += ` AND NOT EXISTS` + sub
		}
	}
	sql += ` ORDER BY r.created_at DESC`

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidate requests: %w", err)
	}
	defer rows.Close()

	var candidates []ports.Candidate
	var ids []int64
	index := make(map[int64]int)

	for rows.Next() {
		var r request.MovingRequest
		var mt string
		if err := rows.Scan(&r.ID, &r.UserID, &mt, &r.MovingDate, &r.Origin, &r.Destination, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan candidate request: %w", err)
		}
		r.MovingType = request.MovingType(mt)
		index[r.ID] = len(candidates)
		ids = append(ids, r.ID)
		candidates = append(candidates, ports.Candidate{Request: r})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if len(ids) == 0 {
		return candidates, nil
	}

	estRows, err := tx.Query(ctx, `
		SELECT id, request_id, driver_id, status, price, reason, is_request, created_at, updated_at
		FROM estimates
		WHERE driver_id = $1 AND request_id = ANY($2)
		ORDER BY created_at DESC
	`, q.DriverID, ids)
	if err != nil {
		return nil, fmt.Errorf("query driver estimates: %w", err)
	}
	defer estRows.Close()

	for estRows.Next() {
		var e estimate.Estimate
		var status string
		if err := estRows.Scan(&e.ID, &e.RequestID, &e.DriverID, &status, &e.Price, &e.Reason, &e.IsRequest, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver estimate: %w", err)
		}
		e.Status = estimate.Status(status)
		if i, ok := index[e.RequestID]; ok {
			candidates[i].Estimates = append(candidates[i].Estimates, e)
		}
	}
	if err := estRows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return candidates, nil
}
