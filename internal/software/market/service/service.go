package service

import (
	"move-market/internal/general/logger"
	"move-market/internal/ports"
)

// marketService implements the driver-side request pool and the
// estimate decision workflow.
type marketService struct {
	logger    *logger.Logger
	uow       ports.UnitOfWork
	users     ports.UserRepository
	profiles  ports.DriverProfileRepository
	requests  ports.RequestRepository
	estimates ports.EstimateRepository
	pub       ports.EventPublisher
}

// NewMarketService creates a new MarketService with the provided dependencies.
func NewMarketService(
	log *logger.Logger,
	uow ports.UnitOfWork,
	users ports.UserRepository,
	profiles ports.DriverProfileRepository,
	requests ports.RequestRepository,
	estimates ports.EstimateRepository,
	pub ports.EventPublisher,
) ports.MarketService {
	return &marketService{
		logger:    log,
		uow:       uow,
		users:     users,
		profiles:  profiles,
		requests:  requests,
		estimates: estimates,
		pub:       pub,
	}
}
