package dto

// PageRequest carries the structured list/sort/filter parameters the
// conversation listing passes through to the query-translation layer.
type PageRequest struct {
	Page    int
	Size    int
	Sorts   []SortField
	Filters []FilterField
}

type SortField struct {
	Property  string `json:"property"`
	Direction string `json:"direction"` // "ASC" | "DESC"
}

type FilterField struct {
	Property string      `json:"property"`
	Rule     string      `json:"rule"` // "eq" | "neq" | "like"
	Value    interface{} `json:"value"`
}

func (p PageRequest) Limit() int {
	if p.Size <= 0 {
		return 20
	}
	if p.Size > 100 {
		return 100
	}
	return p.Size
}

func (p PageRequest) Offset() int {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * p.Limit()
}
