package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalResults int `json:"total_results"`
	TotalPages   int `json:"total_pages"`
}

// ParsePage reads the 1-based "page" query parameter, defaulting to 1.
func ParsePage(r *http.Request) (int, error) {
	page := 1

	if p := r.URL.Query().Get("page"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("invalid page")
		}
		page = v
	}

	return page, nil
}

// Build computes the page envelope for a fixed page size.
func Build(page, pageSize, total int) Pagination {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return Pagination{
		Page:         page,
		PageSize:     pageSize,
		TotalResults: total,
		TotalPages:   pages,
	}
}
