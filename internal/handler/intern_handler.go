package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "internhub/internal/errors"
	"internhub/internal/service"
)

// InternHandler serves the read endpoints behind the intern table view.
type InternHandler struct {
	svc service.InternService
}

// NewInternHandler creates a handler layer.
func NewInternHandler(svc service.InternService) *InternHandler {
	return &InternHandler{svc: svc}
}

// ListInterns godoc
// @Summary List interns
// @Tags interns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Intern
// @Failure 500 {object} errors.ErrorResponse
// @Router /interns [get]
func (h *InternHandler) ListInterns(c echo.Context) error {
	interns, err := h.svc.ListInterns(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, interns)
}

// GetIntern godoc
// @Summary Get intern by id
// @Tags interns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Intern ID"
// @Success 200 {object} model.Intern
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interns/{id} [get]
func (h *InternHandler) GetIntern(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	intern, err := h.svc.GetIntern(c.Request().Context(), uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, intern)
}
