package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovingRequest(t *testing.T) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	r, err := NewMovingRequest(7, MovingSmall, tomorrow, " 서울 강남구 ", "경기도 성남시")
	require.NoError(t, err)
	assert.Equal(t, int64(7), r.UserID)
	assert.Equal(t, MovingSmall, r.MovingType)
	assert.Equal(t, "서울 강남구", r.Origin)
	assert.Equal(t, "경기도 성남시", r.Destination)

	_, err = NewMovingRequest(7, MovingType("HUGE"), tomorrow, "a", "b")
	assert.ErrorIs(t, err, ErrInvalidMovingType)

	_, err = NewMovingRequest(7, MovingHome, tomorrow, "  ", "b")
	assert.ErrorIs(t, err, ErrEmptyOrigin)

	_, err = NewMovingRequest(7, MovingHome, tomorrow, "a", "")
	assert.ErrorIs(t, err, ErrEmptyDestination)

	yesterday := time.Now().UTC().Add(-48 * time.Hour)
	_, err = NewMovingRequest(7, MovingOffice, yesterday, "a", "b")
	assert.ErrorIs(t, err, ErrPastMovingDate)
}

func TestParseMovingType(t *testing.T) {
	mt, err := ParseMovingType(" office ")
	require.NoError(t, err)
	assert.Equal(t, MovingOffice, mt)

	_, err = ParseMovingType("PIANO")
	assert.ErrorIs(t, err, ErrInvalidMovingType)
}

func TestParseSortMode(t *testing.T) {
	mode, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SortSoonest, mode)

	mode, err = ParseSortMode("RECENT")
	require.NoError(t, err)
	assert.Equal(t, SortRecent, mode)

	_, err = ParseSortMode("alphabetical")
	assert.ErrorIs(t, err, ErrInvalidSortMode)
}
