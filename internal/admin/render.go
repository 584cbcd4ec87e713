package admin

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Cell is one rendered table cell.
type Cell struct {
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
	Badge bool   `json:"badge,omitempty"`
}

// Renderer turns raw field values into display cells. Image paths resolve
// against the API base when they are server-relative (leading slash) and
// against the app origin otherwise.
type Renderer struct {
	APIBase   string
	AppOrigin string
	Location  *time.Location
}

func NewRenderer(apiBase, appOrigin string, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{
		APIBase:   strings.TrimRight(apiBase, "/"),
		AppOrigin: strings.TrimRight(appOrigin, "/"),
		Location:  loc,
	}
}

var imageFields = map[string]bool{"image": true, "profile_picture": true}

// RenderCell applies the display rules for one field value.
func (r *Renderer) RenderCell(field string, v interface{}) Cell {
	if v == nil {
		return Cell{Text: "-"}
	}

	switch val := v.(type) {
	case bool:
		if val {
			return Cell{Text: "Yes"}
		}
		return Cell{Text: "No"}

	case string:
		if imageFields[field] {
			return Cell{Text: "View Image", URL: r.resolveURL(val)}
		}
		if t, ok := parseISO(val); ok {
			return Cell{Text: t.In(r.Location).Format("Jan 2, 2006 15:04")}
		}
		if field == "status" {
			return Cell{Text: val, Badge: true}
		}
		return Cell{Text: val}

	case map[string]interface{}:
		return Cell{Text: displayName(val)}

	case []interface{}:
		return Cell{Text: fmt.Sprintf("[%d items]", len(val))}

	default:
		return Cell{Text: fmt.Sprint(val)}
	}
}

// RenderRow renders the given columns of one record.
func (r *Renderer) RenderRow(item map[string]interface{}, columns []string) []Cell {
	cells := make([]Cell, 0, len(columns))
	for _, col := range columns {
		cells = append(cells, r.RenderCell(col, item[col]))
	}
	return cells
}

// Columns falls back to the record's first five keys when the registry has
// no whitelist for the resource.
func Columns(registryCols []string, item map[string]interface{}) []string {
	if registryCols != nil {
		return registryCols
	}
	var cols []string
	for k := range item {
		cols = append(cols, k)
	}
	// Map iteration is unordered; fix it for a stable table.
	sort.Strings(cols)
	if len(cols) > 5 {
		cols = cols[:5]
	}
	return cols
}

func (r *Renderer) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return r.APIBase + path
	}
	return r.AppOrigin + "/" + path
}

// parseISO recognizes the date shapes upstream services emit.
func parseISO(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// displayName extracts a label from a nested record: name, then username,
// then first/last name, then the bare id.
func displayName(obj map[string]interface{}) string {
	if s, ok := obj["name"].(string); ok && s != "" {
		return s
	}
	if s, ok := obj["username"].(string); ok && s != "" {
		return s
	}
	if first, ok := obj["first_name"].(string); ok && first != "" {
		if last, ok := obj["last_name"].(string); ok && last != "" {
			return first + " " + last
		}
		return first
	}
	if id, ok := obj["id"]; ok {
		return fmt.Sprintf("ID: %v", id)
	}
	return "-"
}
