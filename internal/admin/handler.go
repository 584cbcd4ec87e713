package admin

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careportal/careportal/internal/platform/auth"
	"github.com/careportal/careportal/internal/registry"
)

// Handler is the management console's API: generic list, delete, create and
// update over every registered resource. Admin only.
type Handler struct {
	client   *Client
	renderer *Renderer
}

func NewHandler(client *Client, renderer *Renderer) *Handler {
	return &Handler{client: client, renderer: renderer}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/admin", auth.RequireRole("admin"))
	g.GET("/resources/", h.ListResources)
	g.GET("/:resource/", h.List)
	g.POST("/:resource/", h.Create)
	g.PUT("/:resource/:id/", h.Update)
	g.DELETE("/:resource/:id/", h.Delete)
}

// upstream calls the guarded API with the caller's own credentials, so the
// console works wherever its admin can already reach the resources.
func (h *Handler) upstream(c echo.Context) *Client {
	return h.client.WithAuthorization(c.Request().Header.Get("Authorization"))
}

// ListResources feeds the console's sidebar.
func (h *Handler) ListResources(c echo.Context) error {
	type entry struct {
		Key         string `json:"key"`
		DisplayName string `json:"display_name"`
		Restricted  bool   `json:"restricted"`
	}
	var out []entry
	for _, key := range registry.Keys() {
		out = append(out, entry{
			Key:         key,
			DisplayName: registry.DisplayName(key),
			Restricted:  registry.Restricted(key),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func restrictedPayload(key string) map[string]interface{} {
	return map[string]interface{}{
		"resource": key,
		"detail":   "access to this resource is restricted",
	}
}

func (h *Handler) List(c echo.Context) error {
	key := c.Param("resource")
	if registry.Restricted(key) {
		return c.JSON(http.StatusForbidden, restrictedPayload(key))
	}

	q := Query{
		Search:  c.QueryParam("search"),
		SortBy:  c.QueryParam("sort"),
		SortDir: c.QueryParam("dir"),
		Page:    1,
	}
	if p := c.QueryParam("page"); p != "" {
		if err := echo.QueryParamsBinder(c).Int("page", &q.Page).BindError(); err != nil || q.Page < 1 {
			q.Page = 1
		}
	}
	params := make(map[string]string)
	for k, vs := range c.QueryParams() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	q.Filters = FilterQuery(params)

	col, err := h.upstream(c).Fetch(c.Request().Context(), key, q.Page)
	if err != nil {
		if errors.Is(err, ErrUnknownResource) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	page := Apply(col, q)

	columns := registry.Columns(key)
	if columns == nil && len(page.Rows) > 0 {
		columns = Columns(nil, page.Rows[0])
	}
	rendered := make([][]Cell, 0, len(page.Rows))
	for _, row := range page.Rows {
		rendered = append(rendered, h.renderer.RenderRow(row, columns))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"resource":     key,
		"display_name": registry.DisplayName(key),
		"columns":      columns,
		"cells":        rendered,
		"rows":         page.Rows,
		"total":        page.Total,
		"page":         page.Page,
		"total_pages":  page.TotalPages,
		"page_links":   page.PageLinks,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	key := c.Param("resource")
	if registry.Restricted(key) {
		return c.JSON(http.StatusForbidden, restrictedPayload(key))
	}
	err := h.upstream(c).Delete(c.Request().Context(), key, c.Param("id"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	case errors.Is(err, ErrAlreadyGone):
		// Gone upstream already; the console treats this as done.
		return c.JSON(http.StatusOK, map[string]string{"status": "already removed"})
	case errors.Is(err, ErrUnknownResource):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrRejected):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
}

func (h *Handler) Create(c echo.Context) error {
	key := c.Param("resource")
	if registry.Restricted(key) {
		return c.JSON(http.StatusForbidden, restrictedPayload(key))
	}
	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.upstream(c).Create(c.Request().Context(), key, fields)
	if err != nil {
		if errors.Is(err, ErrUnknownResource) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) Update(c echo.Context) error {
	key := c.Param("resource")
	if registry.Restricted(key) {
		return c.JSON(http.StatusForbidden, restrictedPayload(key))
	}
	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.upstream(c).Update(c.Request().Context(), key, c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, ErrUnknownResource) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
