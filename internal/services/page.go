package services

import "gorm.io/gorm"

// PerPage is the listing page size everywhere: the public board,
// search results, and both admin listings.
const PerPage = 10

// Page is one window of a paginated listing.
type Page[T any] struct {
	Items   []T
	Number  int // 1-based
	PerPage int
	Total   int64
}

func (p Page[T]) Pages() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.Pages() }
func (p Page[T]) Prev() int     { return p.Number - 1 }
func (p Page[T]) Next() int     { return p.Number + 1 }

// paginate counts the filtered set, then fetches one window in the
// given order. The order is applied to the fetch only; counting an
// ordered query trips some drivers.
func paginate[T any](tx *gorm.DB, page int, order string) (Page[T], error) {
	if page < 1 {
		page = 1
	}
	// New session so the chain survives two finisher calls.
	tx = tx.Session(&gorm.Session{})
	out := Page[T]{Number: page, PerPage: PerPage}
	if err := tx.Count(&out.Total).Error; err != nil {
		return out, err
	}
	err := tx.Order(order).
		Offset((page - 1) * PerPage).
		Limit(PerPage).
		Find(&out.Items).Error
	return out, err
}
