package response

import "fmt"

const PageSize = 10

type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage links to the neighbouring pages of page under basePath when they
// exist.
func NewPage[T any](basePath string, page int, count int64, results []T) Page[T] {
	p := Page[T]{Count: count, Results: results}
	if p.Results == nil {
		p.Results = []T{}
	}
	if int64(page*PageSize) < count {
		next := fmt.Sprintf("%s?page=%d", basePath, page+1)
		p.Next = &next
	}
	if page > 1 {
		previous := fmt.Sprintf("%s?page=%d", basePath, page-1)
		p.Previous = &previous
	}
	return p
}

// LastPage is the highest valid page number for count rows. An empty listing
// still has page 1.
func LastPage(count int64) int {
	if count == 0 {
		return 1
	}
	return int((count + PageSize - 1) / PageSize)
}
