package ports

import (
	"context"
	"time"

	"move-market/internal/domain/region"
	"move-market/internal/domain/request"
)

// ----- DTOs for the driver market service -----

// RequestFilters is the coerced query-string input for driver listings.
type RequestFilters struct {
	Page         int
	PageSize     int
	MovingType   *request.MovingType
	Region       *region.Code
	IsDesignated *bool
	Sort         request.SortMode
	RequestID    *int64
}

// RequestListItem is one request in a driver's listing, with the
// driver's own latest estimate attached when present.
type RequestListItem struct {
	RequestID      int64     `json:"request_id"`
	MovingType     string    `json:"moving_type"`
	MovingDate     time.Time `json:"moving_date"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	CreatedAt      time.Time `json:"created_at"`
	IsDesignated   bool      `json:"is_designated"`
	EstimateID     *int64    `json:"estimate_id,omitempty"`
	EstimateStatus *string   `json:"estimate_status,omitempty"`
	EstimatePrice  *int64    `json:"estimate_price,omitempty"`
}

// RequestListResult is the paginated envelope for driver listings.
type RequestListResult struct {
	Page            int               `json:"page"`
	PageSize        int               `json:"page_size"`
	TotalItems      int               `json:"total_items"`
	TotalPages      int               `json:"total_pages"`
	DesignatedCount int               `json:"designated_count"`
	Items           []RequestListItem `json:"items"`
}

// SubmitEstimateInput is the validated input for a general-pool estimate.
type SubmitEstimateInput struct {
	RequestID int64
	Price     int64
	Reason    string
}

// DecisionInput is the validated input for accept/reject on a designation.
type DecisionInput struct {
	RequestID int64
	Reason    string
	Price     int64 // ignored on reject
}

// EstimateActionResult is returned by estimate writes (submit/accept/reject).
type EstimateActionResult struct {
	EstimateID int64     `json:"estimate_id"`
	RequestID  int64     `json:"request_id"`
	Status     string    `json:"status"`
	Price      int64     `json:"price"`
	Reason     string    `json:"reason,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RejectedEstimateItem is one row of a driver's rejected-estimates listing.
type RejectedEstimateItem struct {
	EstimateID  int64     `json:"estimate_id"`
	RequestID   int64     `json:"request_id"`
	MovingType  string    `json:"moving_type"`
	MovingDate  time.Time `json:"moving_date"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Reason      string    `json:"reason,omitempty"`
	RejectedAt  time.Time `json:"rejected_at"`
}

// RejectedListResult is the paginated envelope for rejected estimates.
type RejectedListResult struct {
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalItems int                    `json:"total_items"`
	TotalPages int                    `json:"total_pages"`
	Items      []RejectedEstimateItem `json:"items"`
}

// ----- Driver market service interface -----

// MarketService exposes the driver-side request pool and estimate decisions.
type MarketService interface {
	GetDriverRequestList(ctx context.Context, userID int64, f RequestFilters) (RequestListResult, error)
	GetDriverDesignatedRequestList(ctx context.Context, userID int64, f RequestFilters) (RequestListResult, error)
	SubmitEstimate(ctx context.Context, userID int64, in SubmitEstimateInput) (EstimateActionResult, error)
	AcceptRequest(ctx context.Context, userID int64, in DecisionInput) (EstimateActionResult, error)
	RejectRequest(ctx context.Context, userID int64, in DecisionInput) (EstimateActionResult, error)
	GetDriverRejectedEstimates(ctx context.Context, userID int64, page, pageSize int) (RejectedListResult, error)
}

// ----- DTOs for the customer service -----

// CreateRequestInput is the validated input to create a moving request.
type CreateRequestInput struct {
	MovingType  request.MovingType
	MovingDate  time.Time
	Origin      string
	Destination string
}

// CreateRequestResult is returned by CustomerService.CreateRequest.
type CreateRequestResult struct {
	RequestID  int64     `json:"request_id"`
	MovingType string    `json:"moving_type"`
	MovingDate time.Time `json:"moving_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// MyRequestsResult is the paginated envelope for a customer's own requests.
type MyRequestsResult struct {
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
	Items      []RequestListItem `json:"items"`
}

// ----- Customer service interface -----

// CustomerService exposes the customer-side moving request operations.
type CustomerService interface {
	CreateRequest(ctx context.Context, userID int64, in CreateRequestInput) (CreateRequestResult, error)
	ListMyRequests(ctx context.Context, userID int64, page, pageSize int) (MyRequestsResult, error)
}
