package service

import (
	"context"
	"fmt"
	"sort"

	"move-market/internal/domain/profile"
	"move-market/internal/domain/region"
	"move-market/internal/domain/request"
	"move-market/internal/general/paging"
	"move-market/internal/ports"
)

// validateFilters rejects queries outside the driver's own scope: a
// driver may not filter by a moving type they do not serve or a region
// they do not cover.
func validateFilters(p *profile.DriverProfile, f ports.RequestFilters) error {
	if f.MovingType != nil && !p.Serves(*f.MovingType) {
		return ErrFilterOutOfScope
	}
	if f.Region != nil && !p.Covers(*f.Region) {
		return ErrFilterOutOfScope
	}
	return nil
}

// findRequests builds the driver's filtered request pool. The database
// narrows by moving type, designation and exact id; the region
// membership of the origin address is a post-filter in memory because
// the address text has no structured region column. The total count is
// taken after that post-filter. Must run inside a unit of work.
func (service *marketService) findRequests(ctx context.Context, p *profile.DriverProfile, f ports.RequestFilters) (int, []ports.Candidate, error) {
	movingTypes := p.ServiceTypes
	if f.MovingType != nil {
		movingTypes = []request.MovingType{*f.MovingType}
	}

	candidates, err := service.requests.FindCandidates(ctx, ports.CandidateQuery{
		DriverID:    p.ID,
		MovingTypes: movingTypes,
		Designated:  f.IsDesignated,
		RequestID:   f.RequestID,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("load candidate requests: %w", err)
	}

	// an explicit region filter narrows below the driver's full set
	allowedRegions := p.Regions
	if f.Region != nil {
		allowedRegions = []region.Code{*f.Region}
	}

	filtered := candidates[:0:0]
	for _, c := range candidates {
		if region.InRegions(c.Request.Origin, allowedRegions) {
			filtered = append(filtered, c)
		}
	}

	sortCandidates(filtered, f.Sort)

	return len(filtered), paging.Slice(filtered, f.Page, f.PageSize), nil
}

// sortCandidates orders the filtered set: "recent" by descending
// creation time, otherwise ("soonest", the default) by ascending moving
// date.
func sortCandidates(candidates []ports.Candidate, mode request.SortMode) {
	switch mode {
	case request.SortRecent:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Request.CreatedAt.After(candidates[j].Request.CreatedAt)
		})
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Request.MovingDate.Before(candidates[j].Request.MovingDate)
		})
	}
}

// ensureRequestAccessible verifies the request appears in the driver's
// filtered pool (service category + region membership) and returns it.
// Must run inside a unit of work.
func (service *marketService) ensureRequestAccessible(ctx context.Context, p *profile.DriverProfile, requestID int64) (*ports.Candidate, error) {
	_, page, err := service.findRequests(ctx, p, ports.RequestFilters{
		Page:      1,
		PageSize:  1,
		RequestID: &requestID,
	})
	if err != nil {
		return nil, err
	}
	if len(page) == 0 {
		return nil, ErrRequestNotFound
	}
	return &page[0], nil
}
