package query

import (
	"github.com/sells-group/leadfinder/internal/model"
)

// Paginate returns the 1-indexed page of leads. Pages outside the
// collection, and non-positive page or size, yield an empty slice.
func Paginate(leads []model.Lead, page, size int) []model.Lead {
	if page < 1 || size < 1 {
		return []model.Lead{}
	}
	start := (page - 1) * size
	if start >= len(leads) {
		return []model.Lead{}
	}
	end := min(start+size, len(leads))
	return model.CloneAll(leads[start:end])
}

// TotalPages is ceil(total/size), never less than 1.
func TotalPages(total, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return max(1, (total+size-1)/size)
}

// Window is the 1-based range of rows shown on a page, as in "11–20 of 36".
// From is greater than To when the page is empty.
type Window struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Total int `json:"total"`
}

// PageWindow computes the row range for page.
func PageWindow(page, size, total int) Window {
	if page < 1 || size < 1 {
		return Window{From: 1, To: 0, Total: total}
	}
	return Window{
		From:  (page-1)*size + 1,
		To:    min(page*size, total),
		Total: total,
	}
}
