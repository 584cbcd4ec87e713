package notification

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careportal/careportal/internal/platform/auth"
	"github.com/careportal/careportal/pkg/pagination"
)

type Handler struct {
	svc *Service
	now func() time.Time
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/notifications/", h.List)
	api.GET("/notifications/unread-count", h.UnreadCount)
	api.POST("/notifications/:id/read", h.MarkRead)
	api.POST("/notifications/read-all", h.MarkAllRead)
}

// feedEntry decorates a stored notification with its display fields.
type feedEntry struct {
	*Notification
	Target       string `json:"target,omitempty"`
	RelativeTime string `json:"relative_time"`
}

func (h *Handler) userID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "no authenticated user")
	}
	return id, nil
}

func (h *Handler) List(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	onlyUnread := c.QueryParam("unread") == "true"
	items, total, err := h.svc.List(c.Request().Context(), userID, onlyUnread, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	now := h.now()
	entries := make([]feedEntry, 0, len(items))
	for _, n := range items {
		entries = append(entries, feedEntry{
			Notification: n,
			Target:       ResolveTarget(n),
			RelativeTime: RelativeTime(n.CreatedAt, now),
		})
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, pg.Page))
}

func (h *Handler) UnreadCount(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return err
	}
	count, err := h.svc.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"unread_count": count})
}

func (h *Handler) MarkRead(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.MarkRead(c.Request().Context(), userID, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "notification not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return err
	}
	if err := h.svc.MarkAllRead(c.Request().Context(), userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
