package service

import (
	"context"

	"move-market/internal/general/paging"
	"move-market/internal/ports"
)

// GetDriverRequestList returns one page of the requests visible to the
// driver under the given filters.
func (service *marketService) GetDriverRequestList(ctx context.Context, userID int64, f ports.RequestFilters) (ports.RequestListResult, error) {
	f.Page, f.PageSize = paging.Normalize(f.Page, f.PageSize)

	var (
		total      int
		candidates []ports.Candidate
	)
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		p, err := service.resolveDriver(txCtx, userID)
		if err != nil {
			return err
		}
		if err := validateFilters(p, f); err != nil {
			return err
		}
		total, candidates, err = service.findRequests(txCtx, p, f)
		return err
	})
	if err != nil {
		service.logger.Error(ctx, "driver_request_list_failed", "Failed to list driver requests", err, map[string]any{
			"user_id": userID,
		})
		return ports.RequestListResult{}, err
	}

	return assembleList(f.Page, f.PageSize, total, candidates), nil
}

// GetDriverDesignatedRequestList is the request listing with the
// designation filter forced on.
func (service *marketService) GetDriverDesignatedRequestList(ctx context.Context, userID int64, f ports.RequestFilters) (ports.RequestListResult, error) {
	designated := true
	f.IsDesignated = &designated
	return service.GetDriverRequestList(ctx, userID, f)
}

// GetDriverRejectedEstimates returns one page of the driver's rejected
// estimates joined with their requests.
func (service *marketService) GetDriverRejectedEstimates(ctx context.Context, userID int64, page, pageSize int) (ports.RejectedListResult, error) {
	page, pageSize = paging.Normalize(page, pageSize)

	var (
		total int
		rows  []ports.RejectedEstimate
	)
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		p, err := service.resolveDriver(txCtx, userID)
		if err != nil {
			return err
		}
		rows, total, err = service.estimates.ListRejectedByDriver(txCtx, p.ID, pageSize, (page-1)*pageSize)
		return err
	})
	if err != nil {
		service.logger.Error(ctx, "rejected_estimates_list_failed", "Failed to list rejected estimates", err, map[string]any{
			"user_id": userID,
		})
		return ports.RejectedListResult{}, err
	}

	items := make([]ports.RejectedEstimateItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.RejectedEstimateItem{
			EstimateID:  row.Estimate.ID,
			RequestID:   row.Request.ID,
			MovingType:  row.Request.MovingType.String(),
			MovingDate:  row.Request.MovingDate,
			Origin:      row.Request.Origin,
			Destination: row.Request.Destination,
			Reason:      row.Estimate.Reason,
			RejectedAt:  row.Estimate.UpdatedAt,
		})
	}

	return ports.RejectedListResult{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: paging.TotalPages(total, pageSize),
		Items:      items,
	}, nil
}
