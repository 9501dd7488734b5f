package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ga-Alves/open-flag/internal/api/metrics"
	"github.com/Ga-Alves/open-flag/internal/core/ports"
)

// FlagHandler exposes the flag list and its mutations. Mutation responses
// carry the reloaded list so the view never renders stale local state.
type FlagHandler struct {
	service ports.FlagService
}

func NewFlagHandler(service ports.FlagService) *FlagHandler {
	return &FlagHandler{service: service}
}

type createFlagRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type updateFlagRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Value       *bool   `json:"value"`
}

// List handles GET /flags.
//
// @Summary      List all feature flags
// @Tags         flags
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.FeatureFlag
// @Failure      401  {object}  map[string]string
// @Router       /flags [get]
func (h *FlagHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	flags, err := h.service.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, flags)
}

// Create handles POST /flags. New flags always start disabled; any value in
// the payload is ignored.
//
// @Summary      Create a feature flag
// @Tags         flags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFlagRequest  true  "Flag to create"
// @Success      201   {array}   domain.FeatureFlag
// @Failure      400   {object}  map[string]string
// @Router       /flags [post]
func (h *FlagHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createFlagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	flags, err := h.service.Create(c.Request().Context(), sess, ports.CreateFlagInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.FlagMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, flags)
}

// Update handles PUT /flags/:name with a partial body.
//
// @Summary      Update a feature flag
// @Tags         flags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string             true  "Flag name"
// @Param        body  body      updateFlagRequest  true  "Fields to change"
// @Success      200   {array}   domain.FeatureFlag
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /flags/{name} [put]
func (h *FlagHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateFlagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	flags, err := h.service.Update(c.Request().Context(), sess, c.Param("name"), ports.UpdateFlagInput{
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
	})
	if err != nil {
		return err
	}

	metrics.FlagMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, flags)
}

// Delete handles DELETE /flags/:name.
//
// @Summary      Delete a feature flag
// @Tags         flags
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Flag name"
// @Success      200   {array}   domain.FeatureFlag
// @Failure      404   {object}  map[string]string
// @Router       /flags/{name} [delete]
func (h *FlagHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	flags, err := h.service.Delete(c.Request().Context(), sess, c.Param("name"))
	if err != nil {
		return err
	}

	metrics.FlagMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, flags)
}

// Toggle handles PUT /flags/:name/toggle. The server flips the value in
// place; the response carries its answer plus the reloaded list.
//
// @Summary      Toggle a feature flag
// @Tags         flags
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Flag name"
// @Success      200   {object}  ports.ToggleOutcome
// @Failure      404   {object}  map[string]string
// @Router       /flags/{name}/toggle [put]
func (h *FlagHandler) Toggle(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	outcome, err := h.service.Toggle(c.Request().Context(), sess, c.Param("name"))
	if err != nil {
		return err
	}

	metrics.FlagMutationsTotal.WithLabelValues("toggle").Inc()
	return c.JSON(http.StatusOK, outcome)
}

// Check handles GET /flags/:name/check. The flags server records a usage
// timestamp for the flag when answering.
//
// @Summary      Check a single flag's value
// @Tags         flags
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Flag name"
// @Success      200   {object}  domain.FlagCheck
// @Failure      404   {object}  map[string]string
// @Router       /flags/{name}/check [get]
func (h *FlagHandler) Check(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	check, err := h.service.Check(c.Request().Context(), sess, c.Param("name"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, check)
}
