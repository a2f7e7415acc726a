package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type ActivityHandler struct {
	activity ports.ActivityService
}

func NewActivityHandler(activity ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// Recent returns the newest activity events.
//
// @Summary      Recent activity
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of events (default 10)"
// @Success      200    {object}  ports.Envelope[[]domain.ActivityEvent]
// @Router       /api/activity [get]
func (h *ActivityHandler) Recent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fail(c, domain.Invalid("limit must be a number"))
		}
		limit = n
	}

	events, err := h.activity.Recent(c.Request().Context(), limit)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, events, "Activity retrieved successfully")
}
