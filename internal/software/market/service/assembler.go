package service

import (
	"move-market/internal/general/paging"
	"move-market/internal/ports"
)

// assembleList shapes one page of candidates into the response
// envelope: each request carries the driver's own latest estimate (if
// any) and a designation flag; designatedCount covers the current page.
func assembleList(page, pageSize, totalItems int, candidates []ports.Candidate) ports.RequestListResult {
	items := make([]ports.RequestListItem, 0, len(candidates))
	designated := 0

	for _, c := range candidates {
		item := ports.RequestListItem{
			RequestID:    c.Request.ID,
			MovingType:   c.Request.MovingType.String(),
			MovingDate:   c.Request.MovingDate,
			Origin:       c.Request.Origin,
			Destination:  c.Request.Destination,
			CreatedAt:    c.Request.CreatedAt,
			IsDesignated: len(c.Estimates) > 0,
		}
		if item.IsDesignated {
			designated++
			latest := c.Estimates[0] // most recent first
			status := latest.Status.String()
			item.EstimateID = &latest.ID
			item.EstimateStatus = &status
			item.EstimatePrice = &latest.Price
		}
		items = append(items, item)
	}

	return ports.RequestListResult{
		Page:            page,
		PageSize:        pageSize,
		TotalItems:      totalItems,
		TotalPages:      paging.TotalPages(totalItems, pageSize),
		DesignatedCount: designated,
		Items:           items,
	}
}
