package services_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"fakestore/internal/services"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"valid", 2, 20, 2, 20},
		{"zero page", 0, 20, 1, 20},
		{"negative page", -3, 20, 1, 20},
		{"zero limit uses default", 1, 0, 1, 20},
		{"negative limit uses default", 1, -5, 1, 20},
		{"limit capped", 1, 1000, 1, services.MaxPageLimit},
		{"huge page capped", math.MaxInt, 20, math.MaxInt / 20, 20},
		{"huge page with default limit", math.MaxInt, 0, math.MaxInt / 20, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := services.NormalizePage(tt.page, tt.limit, 20)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNormalizePage_OffsetNeverOverflows(t *testing.T) {
	for _, limit := range []int{1, 7, 20, services.MaxPageLimit} {
		page, limit := services.NormalizePage(math.MaxInt, limit, 20)
		assert.GreaterOrEqual(t, (page-1)*limit, 0)
	}
}
