package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"move-market/internal/ports"
)

// EstimateRequest is the submit-estimate request body.
type EstimateRequest struct {
	Price  int64  `json:"price"`
	Reason string `json:"reason"`
}

// DecisionRequest is the accept/reject request body. Price is only
// meaningful on accept.
type DecisionRequest struct {
	Price  int64  `json:"price"`
	Reason string `json:"reason"`
}

func (handler *MarketHTTPHandler) handleSubmitEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	userID, ok := handler.claimsUserID(ctx, w, r)
	if !ok {
		return
	}
	requestID, ok := handler.pathRequestID(ctx, w, r)
	if !ok {
		return
	}

	var body EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := handler.svc.SubmitEstimate(ctx, userID, ports.SubmitEstimateInput{
		RequestID: requestID,
		Price:     body.Price,
		Reason:    body.Reason,
	})
	if err != nil {
		handler.serviceError(ctx, w, err)
		return
	}
	handler.jsonResponse(ctx, w, http.StatusCreated, result)
}

func (handler *MarketHTTPHandler) handleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	userID, ok := handler.claimsUserID(ctx, w, r)
	if !ok {
		return
	}
	requestID, ok := handler.pathRequestID(ctx, w, r)
	if !ok {
		return
	}

	var body DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := handler.svc.AcceptRequest(ctx, userID, ports.DecisionInput{
		RequestID: requestID,
		Reason:    body.Reason,
		Price:     body.Price,
	})
	if err != nil {
		handler.serviceError(ctx, w, err)
		return
	}
	handler.jsonResponse(ctx, w, http.StatusOK, result)
}

func (handler *MarketHTTPHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	userID, ok := handler.claimsUserID(ctx, w, r)
	if !ok {
		return
	}
	requestID, ok := handler.pathRequestID(ctx, w, r)
	if !ok {
		return
	}

	var body DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := handler.svc.RejectRequest(ctx, userID, ports.DecisionInput{
		RequestID: requestID,
		Reason:    body.Reason,
	})
	if err != nil {
		handler.serviceError(ctx, w, err)
		return
	}
	handler.jsonResponse(ctx, w, http.StatusOK, result)
}

// pathRequestID parses the {request_id} path segment.
func (handler *MarketHTTPHandler) pathRequestID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("request_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid request_id: "+raw, err)
		return 0, false
	}
	return id, true
}
