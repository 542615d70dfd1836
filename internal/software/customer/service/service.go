package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"move-market/internal/domain/request"
	"move-market/internal/domain/user"
	"move-market/internal/general/contracts"
	"move-market/internal/general/logger"
	"move-market/internal/general/paging"
	"move-market/internal/ports"
)

var (
	ErrNotCustomer = errors.New("user is not an active customer")
)

type customerService struct {
	logger   *logger.Logger
	uow      ports.UnitOfWork
	users    ports.UserRepository
	requests ports.RequestRepository
	pub      ports.EventPublisher
}

// NewCustomerService wires the customer-side request operations.
func NewCustomerService(
	log *logger.Logger,
	uow ports.UnitOfWork,
	users ports.UserRepository,
	requests ports.RequestRepository,
	pub ports.EventPublisher,
) ports.CustomerService {
	return &customerService{
		logger:   log,
		uow:      uow,
		users:    users,
		requests: requests,
		pub:      pub,
	}
}

// CreateRequest validates and persists a new moving request, then
// announces it to drivers serving the request's moving type.
func (service *customerService) CreateRequest(ctx context.Context, userID int64, in ports.CreateRequestInput) (ports.CreateRequestResult, error) {
	row, err := request.NewMovingRequest(userID, in.MovingType, in.MovingDate, in.Origin, in.Destination)
	if err != nil {
		return ports.CreateRequestResult{}, err
	}

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		u, err := service.users.GetByID(txCtx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if u == nil || !u.Active() || u.Role != user.RoleUser {
			return ErrNotCustomer
		}
		return service.requests.CreateRequest(txCtx, row)
	})
	if err != nil {
		service.logger.Error(ctx, "request_create_failed", "Failed to create moving request", err, map[string]any{
			"user_id": userID,
		})
		return ports.CreateRequestResult{}, err
	}

	service.publishCreated(ctx, row)

	service.logger.Info(ctx, "request_created", fmt.Sprintf("Moving request %d created", row.ID), map[string]any{
		"request_id":  row.ID,
		"user_id":     userID,
		"moving_type": row.MovingType.String(),
	})

	return ports.CreateRequestResult{
		RequestID:  row.ID,
		MovingType: row.MovingType.String(),
		MovingDate: row.MovingDate,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// ListMyRequests returns one page of the customer's own requests, most
// recent first.
func (service *customerService) ListMyRequests(ctx context.Context, userID int64, page, pageSize int) (ports.MyRequestsResult, error) {
	page, pageSize = paging.Normalize(page, pageSize)

	var (
		rows  []request.MovingRequest
		total int
	)
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, total, err = service.requests.ListByUser(txCtx, userID, pageSize, (page-1)*pageSize)
		return err
	})
	if err != nil {
		service.logger.Error(ctx, "my_requests_list_failed", "Failed to list own requests", err, map[string]any{
			"user_id": userID,
		})
		return ports.MyRequestsResult{}, err
	}

	items := make([]ports.RequestListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.RequestListItem{
			RequestID:   row.ID,
			MovingType:  row.MovingType.String(),
			MovingDate:  row.MovingDate,
			Origin:      row.Origin,
			Destination: row.Destination,
			CreatedAt:   row.CreatedAt,
		})
	}

	return ports.MyRequestsResult{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: paging.TotalPages(total, pageSize),
		Items:      items,
	}, nil
}

// publishCreated announces a new request. Publish failures are logged,
// not surfaced: the request is already committed.
func (service *customerService) publishCreated(ctx context.Context, row *request.MovingRequest) {
	msg := contracts.RequestCreatedMessage{
		RequestID:  row.ID,
		OwnerID:    row.UserID,
		MovingType: row.MovingType.String(),
		MovingDate: row.MovingDate,
		Origin:     row.Origin,
		Envelope: contracts.Envelope{
			Producer: "api-service",
			SentAt:   time.Now().UTC(),
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		service.logger.Error(ctx, "request_encode_failed", "Failed to encode request message", err, nil)
		return
	}

	routingKey := contracts.RouteRequestCreatedPrefix + row.MovingType.String()
	if err := service.pub.Publish(contracts.ExchangeNotifyTopic, routingKey, body); err != nil {
		service.logger.Error(ctx, "request_publish_failed", "Failed to publish request message", err, map[string]any{
			"routing_key": routingKey,
			"request_id":  row.ID,
		})
	}
}
