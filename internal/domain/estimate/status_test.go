package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	// a pending estimate can go either way
	assert.True(t, StatusPending.CanAccept())
	assert.True(t, StatusPending.CanReject())

	// a rejection can still be reversed into an acceptance
	assert.True(t, StatusRejected.CanAccept())
	assert.False(t, StatusRejected.CanReject())

	// an acceptance is final for both verbs
	assert.False(t, StatusAccepted.CanAccept())
	assert.False(t, StatusAccepted.CanReject())

	// completed is terminal
	assert.False(t, StatusCompleted.CanAccept())
	assert.False(t, StatusCompleted.CanReject())
}

func TestStatusDecided(t *testing.T) {
	assert.False(t, StatusPending.Decided())
	assert.True(t, StatusAccepted.Decided())
	assert.True(t, StatusRejected.Decided())
	assert.True(t, StatusCompleted.Decided())
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" pending ")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	_, err = ParseStatus("DECLINED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDecisionConstructors(t *testing.T) {
	acc := Accept(120000, "  available that day ")
	assert.Equal(t, StatusAccepted, acc.Status())
	assert.Equal(t, int64(120000), acc.Price())
	assert.Equal(t, "available that day", acc.Reason())
	assert.True(t, acc.Accepted())

	// negative prices collapse to zero rather than failing
	assert.Equal(t, int64(0), Accept(-5, "").Price())

	rej := Reject("fully booked")
	assert.Equal(t, StatusRejected, rej.Status())
	assert.Equal(t, RejectPrice, rej.Price())
	assert.False(t, rej.Accepted())
}
