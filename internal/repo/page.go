package repo

import (
	"math"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// Page is one bounded slice of an ordered result set, addressed by a
// 1-based page number.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Total      int64
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }
func (p Page[T]) PrevPage() int { return p.Number - 1 }
func (p Page[T]) NextPage() int { return p.Number + 1 }

// clampPage resolves a requested page number against the total count.
// Out-of-range requests fail soft: anything below 1 becomes page 1 and
// anything past the end becomes the last page, never an error.
func clampPage(page int, total int64) (number, totalPages, offset int) {
	totalPages = int(math.Ceil(float64(total) / float64(PageSize)))
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages, (page - 1) * PageSize
}
