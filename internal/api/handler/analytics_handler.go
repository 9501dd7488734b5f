package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ga-Alves/open-flag/internal/core/ports"
)

// AnalyticsHandler serves the usage chart for a flag.
type AnalyticsHandler struct {
	service ports.FlagService
}

func NewAnalyticsHandler(service ports.FlagService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Usage handles GET /flags/:name/analytics. Without a day query parameter
// the chart shows the full daily history; with ?day=DD/MM/YYYY it drills
// into that day's 24 hourly buckets. Day selection is a toggle in the view:
// re-selecting the current day means issuing the request without the
// parameter again.
//
// @Summary      Usage chart for a flag
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true   "Flag name"
// @Param        day   query     string  false  "Drill-down day (DD/MM/YYYY)"
// @Success      200   {object}  analytics.Chart
// @Failure      404   {object}  map[string]string
// @Router       /flags/{name}/analytics [get]
func (h *AnalyticsHandler) Usage(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	chart, err := h.service.Usage(c.Request().Context(), sess, c.Param("name"), c.QueryParam("day"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, chart)
}
