package session

import (
	"slices"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/query"
)

// DefaultPageSize is the initial rows per page.
const DefaultPageSize = 10

// PageSizes are the selectable rows-per-page options.
var PageSizes = []int{10, 20, 30, 40, 50}

func validPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// View is one rendered page of the current results.
type View struct {
	Status     Status          `json:"status"`
	Error      string          `json:"error,omitempty"`
	Leads      []model.Lead    `json:"leads"`
	SortBy     query.SortField `json:"sort_by"`
	SortDir    query.Direction `json:"sort_dir"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Window     query.Window    `json:"window"`
}

// View orders the current results by the sort state and returns the
// current page.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := query.Order(s.results, s.sort, s.dir)
	total := len(ordered)
	return View{
		Status:     s.status,
		Error:      s.errMsg,
		Leads:      query.Paginate(ordered, s.page, s.pageSize),
		SortBy:     s.sort,
		SortDir:    s.dir,
		Page:       s.page,
		PageSize:   s.pageSize,
		Total:      total,
		TotalPages: query.TotalPages(total, s.pageSize),
		Window:     query.PageWindow(s.page, s.pageSize, total),
	}
}

// SortBy toggles the direction when field is already the sort field;
// otherwise it switches to field ascending.
func (s *Session) SortBy(field query.SortField) (query.SortField, query.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sort == field {
		s.dir = s.dir.Toggle()
	} else {
		s.sort = field
		s.dir = query.Asc
	}
	return s.sort, s.dir
}

// SetPage moves to page, clamped to the available pages.
func (s *Session) SetPage(page int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = s.clampPage(page)
	return s.page
}

// SetPageSize changes rows per page. The current page is clamped so it
// stays within range.
func (s *Session) SetPageSize(size int) error {
	if !validPageSize(size) {
		return eris.Errorf("session: page size %d not one of %v", size, PageSizes)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = size
	s.page = s.clampPage(s.page)
	return nil
}

// clampPage must be called with mu held.
func (s *Session) clampPage(page int) int {
	return min(max(page, 1), query.TotalPages(len(s.results), s.pageSize))
}
