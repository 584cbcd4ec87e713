package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func ctxWithQuery(q string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+q, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(ctxWithQuery(""))
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.Limit != PageSize {
		t.Errorf("expected limit %d, got %d", PageSize, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_Page(t *testing.T) {
	p := FromContext(ctxWithQuery("page=3"))
	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.Offset != 20 {
		t.Errorf("expected offset 20, got %d", p.Offset)
	}
}

func TestFromContext_InvalidPage(t *testing.T) {
	for _, q := range []string{"page=0", "page=-2", "page=abc"} {
		p := FromContext(ctxWithQuery(q))
		if p.Page != 1 {
			t.Errorf("%s: expected page 1, got %d", q, p.Page)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, want int
	}{
		{0, 1}, {1, 1}, {10, 1}, {11, 2}, {25, 3}, {100, 10}, {101, 11},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestSlice_FullPages(t *testing.T) {
	// 25 rows: pages 1 and 2 have exactly PageSize rows, page 3 has 5
	lo, hi := Slice(1, 25)
	if hi-lo != PageSize {
		t.Errorf("page 1: expected %d rows, got %d", PageSize, hi-lo)
	}
	lo, hi = Slice(2, 25)
	if hi-lo != PageSize {
		t.Errorf("page 2: expected %d rows, got %d", PageSize, hi-lo)
	}
	lo, hi = Slice(3, 25)
	if hi-lo != 5 {
		t.Errorf("page 3: expected 5 rows, got %d", hi-lo)
	}
}

func TestSlice_PastEnd(t *testing.T) {
	lo, hi := Slice(9, 25)
	if lo != 25 || hi != 25 {
		t.Errorf("expected empty slice bounds, got %d..%d", lo, hi)
	}
}

func TestLinks_FewPages(t *testing.T) {
	links := Links(2, 3)
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	if !links[1].Current {
		t.Error("expected page 2 to be current")
	}
	for _, l := range links {
		if l.Ellipsis {
			t.Error("no ellipsis expected with 3 pages")
		}
	}
}

func TestLinks_ManyPages_Middle(t *testing.T) {
	links := Links(10, 20)
	// leading ellipsis + 5 pages + trailing ellipsis
	if len(links) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(links))
	}
	if !links[0].Ellipsis || !links[6].Ellipsis {
		t.Error("expected ellipsis at both ends")
	}
	if links[1].Page != 8 || links[5].Page != 12 {
		t.Errorf("expected pages 8..12, got %d..%d", links[1].Page, links[5].Page)
	}
}

func TestLinks_ManyPages_Start(t *testing.T) {
	links := Links(1, 20)
	if links[0].Page != 1 || !links[0].Current {
		t.Error("expected first link to be current page 1")
	}
	if !links[len(links)-1].Ellipsis {
		t.Error("expected trailing ellipsis")
	}
}

func TestLinks_ManyPages_End(t *testing.T) {
	links := Links(20, 20)
	if !links[0].Ellipsis {
		t.Error("expected leading ellipsis")
	}
	last := links[len(links)-1]
	if last.Page != 20 || !last.Current {
		t.Error("expected last link to be current page 20")
	}
}

func TestHasNextPrevious(t *testing.T) {
	p := Params{Page: 1, Limit: PageSize}
	if p.HasPrevious() {
		t.Error("page 1 should have no previous")
	}
	if !p.HasNext(25) {
		t.Error("page 1 of 25 rows should have next")
	}
	p.Page = 3
	if p.HasNext(25) {
		t.Error("page 3 of 25 rows should have no next")
	}
	if !p.HasPrevious() {
		t.Error("page 3 should have previous")
	}
}
