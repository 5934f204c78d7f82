package query

// Pagination - метаданные страницы, согласованные с окном плана
type Pagination struct {
	CurrentPage int
	TotalPages  int
	Total       int64
	HasNextPage bool
	HasPrevPage bool
	Limit       int
}

// NewPagination считает totalPages = ceil(total/limit)
func NewPagination(plan Plan, total int64) Pagination {
	totalPages := 0
	switch {
	case plan.Limit > 0:
		limit := int64(plan.Limit)
		totalPages = int((total + limit - 1) / limit)
	case total > 0:
		totalPages = 1
	}

	return Pagination{
		CurrentPage: plan.Page,
		TotalPages:  totalPages,
		Total:       total,
		HasNextPage: plan.Page < totalPages,
		HasPrevPage: plan.Page > 1,
		Limit:       plan.Limit,
	}
}
