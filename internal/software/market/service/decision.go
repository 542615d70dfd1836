package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"move-market/internal/domain/estimate"
	"move-market/internal/general/contracts"
	"move-market/internal/ports"
)

// AcceptRequest moves the driver's estimate on the request to ACCEPTED.
// With no prior estimate a new designation row is created; a prior
// rejection may be reversed; a prior acceptance fails as already decided.
func (service *marketService) AcceptRequest(ctx context.Context, userID int64, in ports.DecisionInput) (ports.EstimateActionResult, error) {
	return service.decide(ctx, userID, in.RequestID, estimate.Accept(in.Price, in.Reason))
}

// RejectRequest moves the driver's estimate on the request to REJECTED
// with the sentinel price. Decided estimates (accepted or rejected)
// cannot be rejected again.
func (service *marketService) RejectRequest(ctx context.Context, userID int64, in ports.DecisionInput) (ports.EstimateActionResult, error) {
	return service.decide(ctx, userID, in.RequestID, estimate.Reject(in.Reason))
}

// decide runs one state transition of the (driver, request) pair and
// persists exactly one estimate row mutation (create or update).
func (service *marketService) decide(ctx context.Context, userID, requestID int64, d estimate.Decision) (ports.EstimateActionResult, error) {
	var (
		row     *estimate.Estimate
		ownerID int64
	)

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		p, err := service.resolveDriver(txCtx, userID)
		if err != nil {
			return err
		}

		candidate, err := service.ensureRequestAccessible(txCtx, p, requestID)
		if err != nil {
			return err
		}
		ownerID = candidate.Request.UserID

		latest, err := service.estimates.FindLatestForPair(txCtx, p.ID, requestID)
		if err != nil {
			return fmt.Errorf("load latest estimate: %w", err)
		}

		if latest == nil {
			row = &estimate.Estimate{
				RequestID: requestID,
				DriverID:  p.ID,
				Status:    d.Status(),
				Price:     d.Price(),
				Reason:    d.Reason(),
				IsRequest: true,
			}
			return service.estimates.Create(txCtx, row)
		}

		allowed := latest.Status.CanReject()
		if d.Accepted() {
			allowed = latest.Status.CanAccept()
		}
		if !allowed {
			return ErrAlreadyDecided
		}

		ok, err := service.estimates.ApplyDecision(txCtx, latest.ID, latest.Status, d)
		if err != nil {
			return fmt.Errorf("apply decision: %w", err)
		}
		if !ok {
			// lost the race: another call decided this estimate first
			return ErrAlreadyDecided
		}

		latest.Status = d.Status()
		latest.Price = d.Price()
		latest.Reason = d.Reason()
		latest.UpdatedAt = time.Now().UTC()
		row = latest
		return nil
	})
	if err != nil {
		service.logger.Error(ctx, "estimate_decision_failed", "Failed to apply estimate decision", err, map[string]any{
			"user_id":    userID,
			"request_id": requestID,
			"status":     d.Status().String(),
		})
		return ports.EstimateActionResult{}, err
	}

	service.publishDecision(ctx, row, ownerID)

	service.logger.Info(ctx, "estimate_decided", fmt.Sprintf("Estimate %d moved to %s", row.ID, row.Status), map[string]any{
		"estimate_id": row.ID,
		"request_id":  requestID,
		"driver_id":   row.DriverID,
		"status":      row.Status.String(),
	})

	return actionResult(row), nil
}

// SubmitEstimate creates a general-pool PENDING estimate with the
// driver's price. The request must be accessible and the pair must not
// already carry an estimate.
func (service *marketService) SubmitEstimate(ctx context.Context, userID int64, in ports.SubmitEstimateInput) (ports.EstimateActionResult, error) {
	if in.Price <= 0 {
		return ports.EstimateActionResult{}, ErrInvalidPrice
	}

	var (
		row     *estimate.Estimate
		ownerID int64
	)
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		p, err := service.resolveDriver(txCtx, userID)
		if err != nil {
			return err
		}

		candidate, err := service.ensureRequestAccessible(txCtx, p, in.RequestID)
		if err != nil {
			return err
		}
		ownerID = candidate.Request.UserID

		latest, err := service.estimates.FindLatestForPair(txCtx, p.ID, in.RequestID)
		if err != nil {
			return fmt.Errorf("load latest estimate: %w", err)
		}
		if latest != nil {
			return ErrEstimateExists
		}

		row = &estimate.Estimate{
			RequestID: in.RequestID,
			DriverID:  p.ID,
			Status:    estimate.StatusPending,
			Price:     in.Price,
			Reason:    in.Reason,
			IsRequest: false,
		}
		return service.estimates.Create(txCtx, row)
	})
	if err != nil {
		service.logger.Error(ctx, "estimate_submit_failed", "Failed to submit estimate", err, map[string]any{
			"user_id":    userID,
			"request_id": in.RequestID,
		})
		return ports.EstimateActionResult{}, err
	}

	service.publishDecision(ctx, row, ownerID)

	return actionResult(row), nil
}

// publishDecision notifies the request owner. Publish failures are
// logged, not surfaced: the decision is already committed.
func (service *marketService) publishDecision(ctx context.Context, row *estimate.Estimate, ownerID int64) {
	msg := contracts.EstimateDecidedMessage{
		EstimateID: row.ID,
		RequestID:  row.RequestID,
		DriverID:   row.DriverID,
		OwnerID:    ownerID,
		Status:     row.Status.String(),
		Price:      row.Price,
		Reason:     row.Reason,
		Envelope: contracts.Envelope{
			Producer: "api-service",
			SentAt:   time.Now().UTC(),
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		service.logger.Error(ctx, "decision_encode_failed", "Failed to encode decision message", err, nil)
		return
	}

	routingKey := fmt.Sprintf("%s%d", contracts.RouteEstimateDecidedPrefix, ownerID)
	if err := service.pub.Publish(contracts.ExchangeNotifyTopic, routingKey, body); err != nil {
		service.logger.Error(ctx, "decision_publish_failed", "Failed to publish decision message", err, map[string]any{
			"routing_key": routingKey,
			"estimate_id": row.ID,
		})
	}
}

func actionResult(row *estimate.Estimate) ports.EstimateActionResult {
	updatedAt := row.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = row.CreatedAt
	}
	return ports.EstimateActionResult{
		EstimateID: row.ID,
		RequestID:  row.RequestID,
		Status:     row.Status.String(),
		Price:      row.Price,
		Reason:     row.Reason,
		UpdatedAt:  updatedAt,
	}
}
