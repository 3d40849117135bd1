// Package paginate slices ordered views into fixed-size pages.
package paginate

// DefaultPageSize matches the dashboard's table page length.
const DefaultPageSize = 8

type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`

	// Start and End are the 1-based bounds shown as "showing X-Y of Z";
	// both are 0 for an empty view.
	Start int `json:"start"`
	End   int `json:"end"`
}

// Paginate slices view into pages of the given size and returns the page
// with the requested number clamped into [1, totalPages].
func Paginate[T any](view []T, size, number int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(view), size)
	if number < 1 {
		number = 1
	}
	if number > total {
		number = total
	}

	lo := (number - 1) * size
	hi := min(lo+size, len(view))
	if lo > len(view) {
		lo = len(view)
	}

	p := Page[T]{
		Items:      view[lo:hi],
		Number:     number,
		TotalPages: total,
		TotalItems: len(view),
	}
	if len(view) > 0 {
		p.Start = lo + 1
		p.End = hi
	}
	return p
}

// TotalPages is ceil(n/size), minimum 1 even for an empty view.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := (n + size - 1) / size
	if total < 1 {
		total = 1
	}
	return total
}

// Pager tracks the active page of a view. Out-of-range navigation is a
// no-op rather than an error; any view change resets to the first page.
type Pager struct {
	size  int
	page  int
	total int
}

func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size, page: 1, total: 1}
}

func (p *Pager) Page() int       { return p.page }
func (p *Pager) TotalPages() int { return p.total }

// SetView records a new view length and resets the active page to 1.
func (p *Pager) SetView(n int) {
	p.total = TotalPages(n, p.size)
	p.page = 1
}

// SetPage moves to the requested page; it reports whether the move
// happened. Requests outside [1, totalPages] leave the page unchanged.
func (p *Pager) SetPage(n int) bool {
	if n < 1 || n > p.total {
		return false
	}
	p.page = n
	return true
}

// Slice returns the active page of the given view.
func Slice[T any](p *Pager, view []T) Page[T] {
	return Paginate(view, p.size, p.page)
}
