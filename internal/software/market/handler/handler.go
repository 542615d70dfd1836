package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"move-market/internal/domain/user"
	"move-market/internal/general/jwt"
	"move-market/internal/general/logger"
	"move-market/internal/ports"
	"move-market/internal/software/market/service"

	"github.com/jackc/pgx/v5/pgconn"
)

// MarketHTTPHandler adapts HTTP requests to the MarketService.
type MarketHTTPHandler struct {
	svc    ports.MarketService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewMarketHTTPHandler wires an HTTP handler around the MarketService.
func NewMarketHTTPHandler(svc ports.MarketService, log *logger.Logger, auth *jwt.Manager) *MarketHTTPHandler {
	return &MarketHTTPHandler{svc: svc, logger: log, auth: auth}
}

// RegisterRoutes mounts driver market endpoints on the provided mux.
func (handler *MarketHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	driverOnly := jwt.AuthMiddlewareFunc(handler.auth, user.RoleDriver)

	mux.HandleFunc("GET /driver/requests", driverOnly(handler.handleRequestList))
	mux.HandleFunc("GET /driver/requests/designated", driverOnly(handler.handleDesignatedList))
	mux.HandleFunc("POST /driver/requests/{request_id}/estimates", driverOnly(handler.handleSubmitEstimate))
	mux.HandleFunc("POST /driver/requests/{request_id}/accept", driverOnly(handler.handleAccept))
	mux.HandleFunc("POST /driver/requests/{request_id}/reject", driverOnly(handler.handleReject))
	mux.HandleFunc("GET /driver/estimates/rejected", driverOnly(handler.handleRejectedList))

	mux.HandleFunc("POST /tokens", handler.handleCreateToken)
	mux.HandleFunc("GET /health", handler.handleHealth)
}

// ----- general helpers -----

// TokenRequest is the dev token issuance request body.
type TokenRequest struct {
	UserID int64     `json:"user_id"`
	Role   user.Role `json:"role"`
}

// TokenResponse represents the response for token generation.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    int64     `json:"user_id"`
	Role      user.Role `json:"role"`
}

func (handler *MarketHTTPHandler) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID <= 0 {
		handler.httpError(ctx, w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	tokenString, claims, err := handler.auth.IssueUserToken(req.UserID, req.Role)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Failed to generate token: "+err.Error(), err)
		return
	}

	handler.logger.Info(ctx, "token_generated", "JWT token generated successfully",
		map[string]any{"user_id": req.UserID, "role": req.Role.String()})

	handler.jsonResponse(ctx, w, http.StatusCreated, TokenResponse{
		Token:     tokenString,
		ExpiresAt: claims.ExpiresAt.Time,
		UserID:    req.UserID,
		Role:      req.Role,
	})
}

func (handler *MarketHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	handler.jsonResponse(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse encodes data to the HTTP response, controlling status on failure.
func (handler *MarketHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	var buf []byte
	var err error

	if data != nil {
		buf, err = json.Marshal(data)
		if err != nil {
			handler.logger.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
			return
		}
	} else {
		buf = []byte("{}")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// httpError sends a JSON error response with a message.
func (handler *MarketHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	action := "request_failed"
	if status >= 500 {
		action = "http_internal_error"
	} else if status == http.StatusBadRequest {
		action = "validation_failed"
	}
	handler.logger.Error(ctx, action, msg, err, nil)

	type errBody struct {
		Error string `json:"error"`
	}
	handler.jsonResponse(ctx, w, status, errBody{Error: msg})
}

// serviceError maps service-layer errors to HTTP status codes.
func (handler *MarketHTTPHandler) serviceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotDriver), errors.Is(err, service.ErrFilterOutOfScope):
		handler.httpError(ctx, w, http.StatusForbidden, err.Error(), err)
	case errors.Is(err, service.ErrDriverNotConfigured),
		errors.Is(err, service.ErrAlreadyDecided),
		errors.Is(err, service.ErrEstimateExists),
		errors.Is(err, service.ErrInvalidPrice):
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrRequestNotFound):
		handler.httpError(ctx, w, http.StatusNotFound, err.Error(), err)
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			handler.httpError(ctx, w, http.StatusInternalServerError, "database error", err)
			return
		}
		handler.httpError(ctx, w, http.StatusInternalServerError, "internal error", err)
	}
}

// claimsUserID extracts the authenticated user id or writes a 401.
func (handler *MarketHTTPHandler) claimsUserID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims := jwt.RequireClaims(r)
	if claims == nil {
		handler.httpError(ctx, w, http.StatusUnauthorized, "missing auth claims", errors.New("no claims"))
		return 0, false
	}
	userID, err := claims.UserID()
	if err != nil {
		handler.httpError(ctx, w, http.StatusUnauthorized, "invalid token subject", err)
		return 0, false
	}
	return userID, true
}

// withReqID extracts or generates a request ID and adds it to the context.
func (handler *MarketHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	return handler.logger.WithRequestID(ctx, reqID)
}

// randID generates a random 24-char hex string suitable for request IDs.
func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
