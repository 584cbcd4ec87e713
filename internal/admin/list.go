package admin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/careportal/careportal/internal/registry"
	"github.com/careportal/careportal/pkg/pagination"
)

// Query captures everything the list screens let an admin do to a collection.
type Query struct {
	Search  string
	Filters map[string]string
	SortBy  string
	SortDir string // "asc" or "desc"
	Page    int
}

// Page is one rendered page of a collection.
type Page struct {
	Rows       []map[string]interface{} `json:"rows"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	TotalPages int                      `json:"total_pages"`
	PageLinks  []pagination.PageLink    `json:"page_links"`
}

// Apply runs search, filters, sort and pagination over a fetched collection.
// Server-paginated collections keep the upstream total and page slice; bare
// collections are paginated here.
func Apply(col *Collection, q Query) *Page {
	items := col.Items

	if q.Search != "" {
		items = searchItems(items, q.Search)
	}
	for field, value := range q.Filters {
		items = filterItems(items, field, value)
	}
	if q.SortBy != "" {
		sortItems(items, q.SortBy, q.SortDir == "desc")
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	total := len(items)
	var rows []map[string]interface{}
	if col.ServerPaginated && q.Search == "" && len(q.Filters) == 0 {
		// The server already sliced this page and knows the real total.
		total = col.Total
		rows = items
	} else {
		lo, hi := pagination.Slice(page, total)
		rows = items[lo:hi]
	}

	totalPages := pagination.TotalPages(total)
	return &Page{
		Rows:       rows,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		PageLinks:  pagination.Links(page, totalPages),
	}
}

// FilterQuery picks the registry's filterable fields out of raw query params.
func FilterQuery(params map[string]string) map[string]string {
	filters := make(map[string]string)
	for _, field := range registry.FilterableFields() {
		if v, ok := params[field]; ok && v != "" {
			filters[field] = v
		}
	}
	return filters
}

// searchItems keeps rows with a case-insensitive substring match in any
// string or number field, or in the name/title/username of a one-level
// nested object.
func searchItems(items []map[string]interface{}, term string) []map[string]interface{} {
	term = strings.ToLower(term)
	var out []map[string]interface{}
	for _, item := range items {
		if itemMatches(item, term) {
			out = append(out, item)
		}
	}
	return out
}

func itemMatches(item map[string]interface{}, term string) bool {
	for _, v := range item {
		switch val := v.(type) {
		case string:
			if strings.Contains(strings.ToLower(val), term) {
				return true
			}
		case float64:
			if strings.Contains(fmt.Sprint(val), term) {
				return true
			}
		case map[string]interface{}:
			for _, k := range []string{"name", "title", "username"} {
				if s, ok := val[k].(string); ok && strings.Contains(strings.ToLower(s), term) {
					return true
				}
			}
		}
	}
	return false
}

// filterItems matches a single field by case-insensitive equality or
// substring.
func filterItems(items []map[string]interface{}, field, value string) []map[string]interface{} {
	value = strings.ToLower(value)
	var out []map[string]interface{}
	for _, item := range items {
		v, ok := item[field]
		if !ok || v == nil {
			continue
		}
		s := strings.ToLower(fmt.Sprint(v))
		if s == value || strings.Contains(s, value) {
			out = append(out, item)
		}
	}
	return out
}

// sortItems orders rows by one column: numbers numerically, strings
// case-folded, nulls and missing values last regardless of direction.
func sortItems(items []map[string]interface{}, field string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, aok := items[i][field]
		b, bok := items[j][field]
		if a == nil {
			aok = false
		}
		if b == nil {
			bok = false
		}
		if !aok || !bok {
			return aok && !bok
		}

		af, aNum := a.(float64)
		bf, bNum := b.(float64)
		if aNum && bNum {
			if desc {
				return af > bf
			}
			return af < bf
		}

		as := strings.ToLower(fmt.Sprint(a))
		bs := strings.ToLower(fmt.Sprint(b))
		if desc {
			return as > bs
		}
		return as < bs
	})
}
