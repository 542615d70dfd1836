package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"move-market/internal/domain/request"
	"move-market/internal/domain/user"
	"move-market/internal/general/jwt"
	"move-market/internal/general/logger"
	"move-market/internal/ports"
	"move-market/internal/software/customer/service"

	"github.com/jackc/pgx/v5/pgconn"
)

// CustomerHTTPHandler adapts HTTP requests to the CustomerService.
type CustomerHTTPHandler struct {
	svc    ports.CustomerService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewCustomerHTTPHandler wires an HTTP handler around the CustomerService.
func NewCustomerHTTPHandler(svc ports.CustomerService, log *logger.Logger, auth *jwt.Manager) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{svc: svc, logger: log, auth: auth}
}

// RegisterRoutes mounts customer endpoints on the provided mux.
func (handler *CustomerHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	customerOnly := jwt.AuthMiddlewareFunc(handler.auth, user.RoleUser)

	mux.HandleFunc("POST /requests", customerOnly(handler.handleCreateRequest))
	mux.HandleFunc("GET /requests/my", customerOnly(handler.handleMyRequests))
}

// CreateRequestBody is the create-request request body. MovingDate uses
// the YYYY-MM-DD form.
type CreateRequestBody struct {
	MovingType  string `json:"moving_type"`
	MovingDate  string `json:"moving_date"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func (handler *CustomerHTTPHandler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	userID, ok := handler.claimsUserID(ctx, w, r)
	if !ok {
		return
	}

	var body CreateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mt, err := request.ParseMovingType(body.MovingType)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid moving_type: "+body.MovingType, err)
		return
	}

	movingDate, err := time.Parse("2006-01-02", body.MovingDate)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid moving_date: "+body.MovingDate, err)
		return
	}

	result, err := handler.svc.CreateRequest(ctx, userID, ports.CreateRequestInput{
		MovingType:  mt,
		MovingDate:  movingDate,
		Origin:      body.Origin,
		Destination: body.Destination,
	})
	if err != nil {
		handler.serviceError(ctx, w, err)
		return
	}
	handler.jsonResponse(ctx, w, http.StatusCreated, result)
}

func (handler *CustomerHTTPHandler) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	userID, ok := handler.claimsUserID(ctx, w, r)
	if !ok {
		return
	}

	page, ok := handler.queryInt(ctx, w, r, "page")
	if !ok {
		return
	}
	pageSize, ok := handler.queryInt(ctx, w, r, "pageSize")
	if !ok {
		return
	}

	result, err := handler.svc.ListMyRequests(ctx, userID, page, pageSize)
	if err != nil {
		handler.serviceError(ctx, w, err)
		return
	}
	handler.jsonResponse(ctx, w, http.StatusOK, result)
}

// ----- helpers -----

func (handler *CustomerHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	buf, err := json.Marshal(data)
	if err != nil {
		handler.logger.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

func (handler *CustomerHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
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

// serviceError maps service and domain validation errors to HTTP status codes.
func (handler *CustomerHTTPHandler) serviceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotCustomer):
		handler.httpError(ctx, w, http.StatusForbidden, err.Error(), err)
	case errors.Is(err, request.ErrInvalidMovingType),
		errors.Is(err, request.ErrEmptyOrigin),
		errors.Is(err, request.ErrEmptyDestination),
		errors.Is(err, request.ErrPastMovingDate):
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			handler.httpError(ctx, w, http.StatusInternalServerError, "database error", err)
			return
		}
		handler.httpError(ctx, w, http.StatusInternalServerError, "internal error", err)
	}
}

func (handler *CustomerHTTPHandler) claimsUserID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int64, bool) {
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

func (handler *CustomerHTTPHandler) queryInt(ctx context.Context, w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid "+name+": "+raw, err)
		return 0, false
	}
	return v, true
}

func (handler *CustomerHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	return handler.logger.WithRequestID(ctx, reqID)
}

func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
