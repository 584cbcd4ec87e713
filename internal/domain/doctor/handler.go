package doctor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careportal/careportal/internal/domain/identity"
	"github.com/careportal/careportal/internal/platform/auth"
	"github.com/careportal/careportal/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors/", h.ListDoctors)
	api.GET("/doctors/:id/", h.GetDoctor)

	write := api.Group("", auth.RequireRole("admin", "assistant"))
	write.POST("/doctors/", h.CreateDoctor)
	write.PUT("/doctors/:id/", h.UpdateDoctor)
	write.PATCH("/doctors/:id/", h.UpdateDoctor)
	write.DELETE("/doctors/:id/", h.DeleteDoctor)
}

type payload struct {
	Specialty         *string         `json:"specialty"`
	LicenseNumber     *string         `json:"license_number"`
	YearsOfExperience *int            `json:"years_of_experience"`
	ConsultationFee   *float64        `json:"consultation_fee"`
	Bio               *string         `json:"bio"`
	Gender            *string         `json:"gender"`
	UserData          json.RawMessage `json:"user_data,omitempty"`
	User              json.RawMessage `json:"user,omitempty"`
	UserID            json.RawMessage `json:"user_id,omitempty"`
}

func (in *payload) apply(d *Doctor) {
	if in.Specialty != nil {
		d.Specialty = *in.Specialty
	}
	if in.LicenseNumber != nil {
		d.LicenseNumber = *in.LicenseNumber
	}
	if in.YearsOfExperience != nil {
		d.YearsOfExperience = *in.YearsOfExperience
	}
	if in.ConsultationFee != nil {
		d.ConsultationFee = in.ConsultationFee
	}
	if in.Bio != nil {
		d.Bio = in.Bio
	}
	if in.Gender != nil {
		d.Gender = in.Gender
	}
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var in payload
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID, err := identity.ResolveUserRef(in.UserData, in.User, in.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d := &Doctor{UserID: userID}
	in.apply(d)
	if err := h.svc.CreateDoctor(c.Request().Context(), d); err != nil {
		if errors.Is(err, ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDoctors(c.Request().Context(), c.QueryParam("specialty"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Page))
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	var in payload
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in.apply(existing)
	if err := h.svc.UpdateDoctor(c.Request().Context(), existing); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
