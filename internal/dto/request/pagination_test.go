package request

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedRequest(t *testing.T) {
	tests := []struct {
		name          string
		page, perPage int
		wantPage      int
		wantPerPage   int
		wantOffset    int
	}{
		{name: "defaults", page: 0, perPage: 0, wantPage: 1, wantPerPage: 10, wantOffset: 0},
		{name: "negative page", page: -4, perPage: 5, wantPage: 1, wantPerPage: 5, wantOffset: 0},
		{name: "third page", page: 3, perPage: 20, wantPage: 3, wantPerPage: 20, wantOffset: 40},
		{name: "per_page capped", page: 2, perPage: 500, wantPage: 2, wantPerPage: 100, wantOffset: 100},
		{name: "huge page capped", page: math.MaxInt, perPage: 100, wantPage: MaxPage, wantPerPage: 100, wantOffset: (MaxPage - 1) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewPaginatedRequest(tt.page, tt.perPage)

			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantPerPage, req.PerPage)
			assert.Equal(t, tt.wantOffset, req.Offset())
			assert.GreaterOrEqual(t, req.Offset(), 0)
		})
	}
}
