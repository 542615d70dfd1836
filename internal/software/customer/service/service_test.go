package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"move-market/internal/domain/request"
	"move-market/internal/domain/user"
	"move-market/internal/general/contracts"
	"move-market/internal/general/logger"
	"move-market/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUoW struct{}

func (f *fakeUoW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUsers struct {
	byID map[int64]*user.User
}

func (f *fakeUsers) CreateUser(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return f.byID[id], nil
}

type fakeRequests struct {
	rows []request.MovingRequest
}

func (f *fakeRequests) CreateRequest(ctx context.Context, r *request.MovingRequest) error {
	r.ID = int64(len(f.rows) + 1)
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	f.rows = append(f.rows, *r)
	return nil
}

func (f *fakeRequests) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]request.MovingRequest, int, error) {
	var all []request.MovingRequest
	for _, r := range f.rows {
		if r.UserID == userID {
			all = append(all, r)
		}
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeRequests) FindCandidates(ctx context.Context, q ports.CandidateQuery) ([]ports.Candidate, error) {
	return nil, nil
}

type fakePublisher struct {
	routingKeys []string
	bodies      [][]byte
}

func (f *fakePublisher) Publish(exchange, routingKey string, body []byte) error {
	f.routingKeys = append(f.routingKeys, routingKey)
	f.bodies = append(f.bodies, body)
	return nil
}

func newService(t *testing.T) (ports.CustomerService, *fakeUsers, *fakeRequests, *fakePublisher) {
	t.Helper()

	users := &fakeUsers{byID: map[int64]*user.User{
		1: {ID: 1, Role: user.RoleUser},
		2: {ID: 2, Role: user.RoleDriver},
	}}
	requests := &fakeRequests{}
	pub := &fakePublisher{}
	svc := NewCustomerService(logger.New("test"), &fakeUoW{}, users, requests, pub)
	return svc, users, requests, pub
}

func TestCreateRequest(t *testing.T) {
	svc, _, requests, pub := newService(t)
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	result, err := svc.CreateRequest(context.Background(), 1, ports.CreateRequestInput{
		MovingType:  request.MovingSmall,
		MovingDate:  tomorrow,
		Origin:      "서울 강남구",
		Destination: "경기도 성남시",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RequestID)
	assert.Equal(t, "SMALL", result.MovingType)
	require.Len(t, requests.rows, 1)

	// drivers serving the category get notified
	require.Len(t, pub.routingKeys, 1)
	assert.Equal(t, "notify.request.SMALL", pub.routingKeys[0])

	var msg contracts.RequestCreatedMessage
	require.NoError(t, json.Unmarshal(pub.bodies[0], &msg))
	assert.Equal(t, int64(1), msg.RequestID)
	assert.Equal(t, int64(1), msg.OwnerID)
	assert.Equal(t, "서울 강남구", msg.Origin)
}

func TestCreateRequest_Validation(t *testing.T) {
	svc, users, _, pub := newService(t)
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, 1, ports.CreateRequestInput{
		MovingType: request.MovingSmall,
		MovingDate: time.Now().UTC().Add(-48 * time.Hour),
		Origin:     "a", Destination: "b",
	})
	assert.ErrorIs(t, err, request.ErrPastMovingDate)

	_, err = svc.CreateRequest(ctx, 1, ports.CreateRequestInput{
		MovingType: request.MovingSmall,
		MovingDate: tomorrow,
		Origin:     " ", Destination: "b",
	})
	assert.ErrorIs(t, err, request.ErrEmptyOrigin)

	// drivers cannot open moving requests
	_, err = svc.CreateRequest(ctx, 2, ports.CreateRequestInput{
		MovingType: request.MovingSmall,
		MovingDate: tomorrow,
		Origin:     "a", Destination: "b",
	})
	assert.ErrorIs(t, err, ErrNotCustomer)

	// soft-deleted users are treated as missing
	deleted := time.Now().UTC()
	users.byID[3] = &user.User{ID: 3, Role: user.RoleUser, DeletedAt: &deleted}
	_, err = svc.CreateRequest(ctx, 3, ports.CreateRequestInput{
		MovingType: request.MovingSmall,
		MovingDate: tomorrow,
		Origin:     "a", Destination: "b",
	})
	assert.ErrorIs(t, err, ErrNotCustomer)

	assert.Empty(t, pub.routingKeys)
}

func TestListMyRequests(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateRequest(ctx, 1, ports.CreateRequestInput{
			MovingType:  request.MovingHome,
			MovingDate:  tomorrow,
			Origin:      "서울 강남구",
			Destination: "부산 해운대구",
		})
		require.NoError(t, err)
	}

	result, err := svc.ListMyRequests(ctx, 1, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.PageSize)
	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Items, 2)

	result, err = svc.ListMyRequests(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	// another user sees nothing
	result, err = svc.ListMyRequests(ctx, 42, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, result.TotalItems)
	assert.Empty(t, result.Items)
}
