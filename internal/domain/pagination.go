package domain

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination normalized page/limit/sort options from the query string
type Pagination struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// Normalize clamp values into usable ranges
func (p *Pagination) Normalize() *Pagination {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.SortOrder != "asc" && p.SortOrder != "desc" {
		p.SortOrder = "asc"
	}
	return p
}

func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ListMeta pagination metadata attached to list responses
type ListMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
