package service

import "errors"

var (
	// ErrNotDriver: the user is missing, soft-deleted, not role DRIVER,
	// or has no driver profile row.
	ErrNotDriver = errors.New("user is not an active driver")
	// ErrDriverNotConfigured: the driver has zero service categories or
	// zero regions configured.
	ErrDriverNotConfigured = errors.New("driver profile has no service categories or regions")
	// ErrFilterOutOfScope: the driver queried a moving type or region
	// outside their own configuration.
	ErrFilterOutOfScope = errors.New("filter outside driver's configured scope")
	// ErrRequestNotFound: the request id is not in the driver's
	// accessible pool.
	ErrRequestNotFound = errors.New("request not accessible to driver")
	// ErrAlreadyDecided: a redundant decision on an already-decided estimate.
	ErrAlreadyDecided = errors.New("already decided")
	// ErrEstimateExists: the driver already has an estimate on the request.
	ErrEstimateExists = errors.New("estimate already exists for this request")
	// ErrInvalidPrice: a general-pool estimate needs a positive price.
	ErrInvalidPrice = errors.New("estimate price must be positive")
)
