// Package pagination implements offset-based page selection over an already
// filtered and sorted collection.
package pagination

// PageArgs identifies one page. Both fields are 1-based.
type PageArgs struct {
	PageNumber int `form:"page_number,default=1"`
	PageSize   int `form:"page_size,default=20"`
}

// Valid reports whether the page selection is structurally usable.
func (p PageArgs) Valid() bool {
	return p.PageNumber >= 1 && p.PageSize >= 1
}

// Offset returns the number of items preceding the requested page.
func (p PageArgs) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// PagedResult is one page of a larger collection. TotalCount counts the
// unsliced collection, not the page.
type PagedResult[T any] struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalCount  int `json:"total_count"`
	Items       []T `json:"items"`
}

// Paginate slices items into the requested page. A page past the end of the
// collection yields an empty item list while TotalCount still reflects the
// full collection.
func Paginate[T any](items []T, args PageArgs) PagedResult[T] {
	total := len(items)

	start := args.Offset()
	if start > total {
		start = total
	}
	end := start + args.PageSize
	if end > total {
		end = total
	}

	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	return PagedResult[T]{
		CurrentPage: args.PageNumber,
		PageSize:    args.PageSize,
		TotalCount:  total,
		Items:       page,
	}
}
