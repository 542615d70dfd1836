package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"move-market/internal/domain/user"
	"move-market/internal/general/jwt"
	"move-market/internal/general/logger"
	"move-market/internal/ports"
	"move-market/internal/software/market/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService returns canned values and records the inputs it saw.
type stubService struct {
	listResult ports.RequestListResult
	listErr    error
	actionErr  error

	gotFilters ports.RequestFilters
	gotUserID  int64
}

func (s *stubService) GetDriverRequestList(ctx context.Context, userID int64, f ports.RequestFilters) (ports.RequestListResult, error) {
	s.gotUserID = userID
	s.gotFilters = f
	return s.listResult, s.listErr
}

func (s *stubService) GetDriverDesignatedRequestList(ctx context.Context, userID int64, f ports.RequestFilters) (ports.RequestListResult, error) {
	return s.GetDriverRequestList(ctx, userID, f)
}

func (s *stubService) SubmitEstimate(ctx context.Context, userID int64, in ports.SubmitEstimateInput) (ports.EstimateActionResult, error) {
	s.gotUserID = userID
	return ports.EstimateActionResult{EstimateID: 1, RequestID: in.RequestID, Status: "PENDING", Price: in.Price}, s.actionErr
}

func (s *stubService) AcceptRequest(ctx context.Context, userID int64, in ports.DecisionInput) (ports.EstimateActionResult, error) {
	s.gotUserID = userID
	return ports.EstimateActionResult{EstimateID: 1, RequestID: in.RequestID, Status: "ACCEPTED", Price: in.Price}, s.actionErr
}

func (s *stubService) RejectRequest(ctx context.Context, userID int64, in ports.DecisionInput) (ports.EstimateActionResult, error) {
	s.gotUserID = userID
	return ports.EstimateActionResult{EstimateID: 1, RequestID: in.RequestID, Status: "REJECTED"}, s.actionErr
}

func (s *stubService) GetDriverRejectedEstimates(ctx context.Context, userID int64, page, pageSize int) (ports.RejectedListResult, error) {
	s.gotUserID = userID
	return ports.RejectedListResult{Page: 1, PageSize: 10}, s.listErr
}

func newTestServer(t *testing.T, svc ports.MarketService) (*http.ServeMux, string) {
	t.Helper()

	mgr := jwt.NewManager("handler-test-secret", time.Hour)
	mux := http.NewServeMux()
	NewMarketHTTPHandler(svc, logger.New("test"), mgr).RegisterRoutes(mux)

	token, _, err := mgr.IssueUserToken(77, user.RoleDriver)
	require.NoError(t, err)
	return mux, token
}

func doRequest(mux *http.ServeMux, method, target, token, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestRequestList_ParsesFilters(t *testing.T) {
	stub := &stubService{listResult: ports.RequestListResult{Page: 2, PageSize: 5}}
	mux, token := newTestServer(t, stub)

	w := doRequest(mux, "GET", "/driver/requests?page=2&pageSize=5&movingType=small&region=seoul&isDesignated=true&sort=recent", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(77), stub.gotUserID)
	assert.Equal(t, 2, stub.gotFilters.Page)
	assert.Equal(t, 5, stub.gotFilters.PageSize)
	require.NotNil(t, stub.gotFilters.MovingType)
	assert.Equal(t, "SMALL", stub.gotFilters.MovingType.String())
	require.NotNil(t, stub.gotFilters.Region)
	assert.Equal(t, "SEOUL", stub.gotFilters.Region.String())
	require.NotNil(t, stub.gotFilters.IsDesignated)
	assert.True(t, *stub.gotFilters.IsDesignated)
	assert.Equal(t, "recent", stub.gotFilters.Sort.String())

	var result ports.RequestListResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Page)
}

func TestRequestList_BadQueryValues(t *testing.T) {
	mux, token := newTestServer(t, &stubService{})

	for _, target := range []string{
		"/driver/requests?page=abc",
		"/driver/requests?movingType=PIANO",
		"/driver/requests?region=ATLANTIS",
		"/driver/requests?isDesignated=maybe",
		"/driver/requests?sort=alphabetical",
	} {
		w := doRequest(mux, "GET", target, token, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestRequestList_AuthRequired(t *testing.T) {
	mux, _ := newTestServer(t, &stubService{})

	w := doRequest(mux, "GET", "/driver/requests", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestList_CustomerRoleForbidden(t *testing.T) {
	mux, _ := newTestServer(t, &stubService{})

	mgr := jwt.NewManager("handler-test-secret", time.Hour)
	token, _, err := mgr.IssueUserToken(2, user.RoleUser)
	require.NoError(t, err)

	w := doRequest(mux, "GET", "/driver/requests", token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrNotDriver, http.StatusForbidden},
		{service.ErrFilterOutOfScope, http.StatusForbidden},
		{service.ErrDriverNotConfigured, http.StatusBadRequest},
		{service.ErrAlreadyDecided, http.StatusBadRequest},
		{service.ErrInvalidPrice, http.StatusBadRequest},
		{service.ErrRequestNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			mux, token := newTestServer(t, &stubService{listErr: tc.err, actionErr: tc.err})

			w := doRequest(mux, "GET", "/driver/requests", token, "")
			assert.Equal(t, tc.want, w.Code)

			w = doRequest(mux, "POST", "/driver/requests/100/accept", token, `{"price":180000}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestDecisionEndpoints(t *testing.T) {
	stub := &stubService{}
	mux, token := newTestServer(t, stub)

	w := doRequest(mux, "POST", "/driver/requests/100/accept", token, `{"price":180000,"reason":"ok"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result ports.EstimateActionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "ACCEPTED", result.Status)
	assert.Equal(t, int64(100), result.RequestID)
	assert.Equal(t, int64(180000), result.Price)

	w = doRequest(mux, "POST", "/driver/requests/100/reject", token, `{"reason":"booked"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(mux, "POST", "/driver/requests/100/estimates", token, `{"price":120000}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// non-numeric path segment
	w = doRequest(mux, "POST", "/driver/requests/abc/accept", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateToken(t *testing.T) {
	mux, _ := newTestServer(t, &stubService{})

	w := doRequest(mux, "POST", "/tokens", "", `{"user_id":5,"role":"DRIVER"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(5), resp.UserID)

	w = doRequest(mux, "POST", "/tokens", "", `{"user_id":0,"role":"DRIVER"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(mux, "POST", "/tokens", "", `{"user_id":5,"role":"ADMIN"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	mux, _ := newTestServer(t, &stubService{})

	w := doRequest(mux, "GET", "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
