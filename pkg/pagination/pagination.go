package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	// PageSize is the fixed number of rows per page across the portal.
	PageSize = 10
	// MaxVisibleLinks is how many numbered page links the widget shows
	// before collapsing the remainder behind an ellipsis.
	MaxVisibleLinks = 5
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// FromContext extracts pagination parameters from the echo context.
// Pages are 1-based; anything missing or invalid resolves to page 1.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	return Params{
		Page:   page,
		Limit:  PageSize,
		Offset: (page - 1) * PageSize,
	}
}

// Response wraps a paginated API response.
type Response struct {
	Results    interface{} `json:"results"`
	Count      int         `json:"count"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	PageLinks  []PageLink  `json:"page_links"`
}

// PageLink is a single entry in the page-count widget. Ellipsis entries
// carry Page == 0.
type PageLink struct {
	Page     int  `json:"page"`
	Current  bool `json:"current"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func NewResponse(results interface{}, total, page int) *Response {
	tp := TotalPages(total)
	return &Response{
		Results:    results,
		Count:      total,
		Page:       page,
		TotalPages: tp,
		PageLinks:  Links(page, tp),
	}
}

// TotalPages returns ceil(total / PageSize), never less than 1.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// Links builds the visible page-link set for the widget: up to
// MaxVisibleLinks numbered links centered on the current page, with
// leading/trailing ellipsis entries when pages are collapsed.
func Links(current, totalPages int) []PageLink {
	if totalPages <= MaxVisibleLinks {
		links := make([]PageLink, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			links = append(links, PageLink{Page: p, Current: p == current})
		}
		return links
	}

	start := current - MaxVisibleLinks/2
	if start < 1 {
		start = 1
	}
	end := start + MaxVisibleLinks - 1
	if end > totalPages {
		end = totalPages
		start = end - MaxVisibleLinks + 1
	}

	var links []PageLink
	if start > 1 {
		links = append(links, PageLink{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		links = append(links, PageLink{Page: p, Current: p == current})
	}
	if end < totalPages {
		links = append(links, PageLink{Ellipsis: true})
	}
	return links
}

// Slice returns the bounds of page `page` over a collection of length n,
// for client-side pagination of responses the backend did not page.
func Slice(page, n int) (lo, hi int) {
	lo = (page - 1) * PageSize
	if lo > n {
		lo = n
	}
	hi = lo + PageSize
	if hi > n {
		hi = n
	}
	return lo, hi
}

// HasNext reports whether there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Page < TotalPages(total)
}

// HasPrevious reports whether there are results before the current page.
func (p Params) HasPrevious() bool {
	return p.Page > 1
}
