package ports

import (
	"context"

	"move-market/internal/domain/estimate"
	"move-market/internal/domain/profile"
	"move-market/internal/domain/request"
	"move-market/internal/domain/user"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the methods for managing user data.
type UserRepository interface {
	CreateUser(ctx context.Context, u *user.User) error
	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// DriverProfileRepository reads driver configuration (profile row plus
// service categories and regions). Profiles are managed by an external
// flow and are read-only inputs here.
type DriverProfileRepository interface {
	// GetByUserID returns (nil, nil) when the user has no driver profile.
	GetByUserID(ctx context.Context, userID int64) (*profile.DriverProfile, error)
}

// CandidateQuery selects the request pool visible to one driver before
// the in-memory region post-filter is applied.
type CandidateQuery struct {
	DriverID int64
	// MovingTypes holds either the single explicit filter value or the
	// driver's full set of service categories.
	MovingTypes []request.MovingType
	// Designated filters on existence of the driver's own estimate:
	// true = has one, false = has none, nil = no filter.
	Designated *bool
	// RequestID restricts to an exact request (direct lookup flows).
	RequestID *int64
}

// Candidate is a request together with the querying driver's own
// estimates on it, most recent first.
type Candidate struct {
	Request   request.MovingRequest
	Estimates []estimate.Estimate
}

// RejectedEstimate joins a rejected estimate with its request.
type RejectedEstimate struct {
	Estimate estimate.Estimate
	Request  request.MovingRequest
}

// RequestRepository defines the methods for managing moving request data.
type RequestRepository interface {
	CreateRequest(ctx context.Context, r *request.MovingRequest) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]request.MovingRequest, int, error)
	// FindCandidates returns the driver-visible pool for q. The region
	// post-filter is applied by the caller, so no paging happens here.
	FindCandidates(ctx context.Context, q CandidateQuery) ([]Candidate, error)
}

// EstimateRepository defines the methods for managing estimate data.
type EstimateRepository interface {
	Create(ctx context.Context, e *estimate.Estimate) error
	// FindLatestForPair returns (nil, nil) when the driver has no
	// estimate on the request.
	FindLatestForPair(ctx context.Context, driverID, requestID int64) (*estimate.Estimate, error)
	// ApplyDecision performs a compare-and-swap update: the row moves to
	// the decision's status only if it still has status `from`. It
	// returns false when the row was concurrently decided.
	ApplyDecision(ctx context.Context, id int64, from estimate.Status, d estimate.Decision) (bool, error)
	ListRejectedByDriver(ctx context.Context, driverID int64, limit, offset int) ([]RejectedEstimate, int, error)
}
