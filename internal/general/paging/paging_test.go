package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name                   string
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{"zero values take defaults", 0, 0, 1, 10},
		{"negatives take defaults", -3, -1, 1, 10},
		{"valid values pass through", 4, 25, 4, 25},
		{"oversized pageSize is capped", 1, 500, 1, 100},
		{"boundary pageSize stays", 1, 100, 1, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, pageSize := Normalize(tc.page, tc.pageSize)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPageSize, pageSize)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(25, 0))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Slice(items, 1, 2))
	assert.Equal(t, []int{5}, Slice(items, 3, 2))
	assert.Nil(t, Slice(items, 4, 2))
}
