package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careportal/careportal/internal/domain/identity"
	"github.com/careportal/careportal/internal/platform/auth"
	"github.com/careportal/careportal/pkg/pagination"
)

type Handler struct {
	svc      *Service
	mediaDir string
}

func NewHandler(svc *Service, mediaDir string) *Handler {
	return &Handler{svc: svc, mediaDir: mediaDir}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/profiles/", h.ListProfiles)
	api.GET("/profiles/:id/", h.GetProfile)
	api.GET("/profiles/me/", h.GetOwnProfile)

	write := api.Group("", auth.RequireRole("admin", "assistant"))
	write.POST("/profiles/", h.CreateProfile)
	write.PUT("/profiles/:id/", h.UpdateProfile)
	write.PATCH("/profiles/:id/", h.UpdateProfile)
	write.DELETE("/profiles/:id/", h.DeleteProfile)
	api.POST("/profiles/:id/picture/", h.UploadPicture)
}

// payload carries the profile fields plus every historical user-reference
// shape. The reference is resolved explicitly; a payload without one is
// rejected rather than guessed at.
type payload struct {
	PhoneNumber *string         `json:"phone_number"`
	Address     *string         `json:"address"`
	DateOfBirth *string         `json:"date_of_birth"`
	Gender      *string         `json:"gender"`
	UserData    json.RawMessage `json:"user_data,omitempty"`
	User        json.RawMessage `json:"user,omitempty"`
	UserID      json.RawMessage `json:"user_id,omitempty"`
}

func (in *payload) apply(p *Profile) error {
	p.PhoneNumber = in.PhoneNumber
	p.Address = in.Address
	p.Gender = in.Gender
	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", *in.DateOfBirth)
		if err != nil {
			return fmt.Errorf("date_of_birth: expected YYYY-MM-DD")
		}
		p.DateOfBirth = &dob
	}
	return nil
}

func (h *Handler) CreateProfile(c echo.Context) error {
	var in payload
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID, err := identity.ResolveUserRef(in.UserData, in.User, in.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := &Profile{UserID: userID}
	if err := in.apply(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProfile(c.Request().Context(), p); err != nil {
		if errors.Is(err, ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "profile not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetOwnProfile(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no authenticated user")
	}
	p, err := h.svc.GetProfileByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "profile not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListProfiles(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListProfiles(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Page))
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "profile not found")
	}
	var in payload
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := in.apply(existing); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateProfile(c.Request().Context(), existing); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *Handler) DeleteProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteProfile(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPicture stores a multipart image and records its served path. The
// stored profile is untouched when no file field is present. Staff may set
// any picture; everyone else only their own.
func (h *Handler) UploadPicture(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	if role := auth.RoleFromContext(ctx); role != "admin" && role != "assistant" {
		callerID, err := uuid.Parse(auth.UserIDFromContext(ctx))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "no authenticated user")
		}
		p, err := h.svc.GetProfile(ctx, id)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		if p.UserID != callerID {
			return echo.NewHTTPError(http.StatusForbidden, "not your profile")
		}
	}
	fh, err := c.FormFile("profile_picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "profile_picture file is required")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported image type")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	dir := filepath.Join(h.mediaDir, "profiles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	name := id.String() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	p, err := h.svc.SetPicture(c.Request().Context(), id, "/media/profiles/"+name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "profile not found")
	}
	return c.JSON(http.StatusOK, p)
}
