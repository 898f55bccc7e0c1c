package request

import "trip-booking/pkg/utils"

// MaxPage keeps page*per_page well inside the range postgres accepts for OFFSET.
const MaxPage = 100000

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1,max=100000"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest clamps page into [1, MaxPage] and per_page into [1, 100].
func NewPaginatedRequest(page, perPage int) *PaginatedRequest {
	p := &PaginatedRequest{Page: min(max(page, 1), MaxPage), PerPage: perPage}
	p.PerPage = p.Limit()
	return p
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(min(p.Page, MaxPage), p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
