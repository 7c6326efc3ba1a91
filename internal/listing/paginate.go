// Package listing holds the pure view logic shared by the donor and volunteer pages:
// pagination, search filters, expiry derivation and action gating.
package listing

// Page sizes per view.
const (
	MyFoodsPageSize             = 5
	DonorCommunityPageSize      = 5
	VolunteerAvailablePageSize  = 6
	CartPageSize                = 4
	VolunteerDeliveriesPageSize = 4
)

// Page is one window over a filtered list.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// PrevNumber is the previous page number, clamped to 1.
func (p Page[T]) PrevNumber() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return 1
}

// NextNumber is the next page number, clamped to the last page.
func (p Page[T]) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

// Paginate returns items [(page-1)*size, page*size). The page number is clamped
// to [1, max(1, TotalPages)] so a shrinking list never strands the viewer.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = len(items)
		if size == 0 {
			size = 1
		}
	}
	total := len(items)
	totalPages := (total + size - 1) / size

	last := totalPages
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}
