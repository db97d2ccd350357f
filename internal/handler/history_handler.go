package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"meetbook/internal/errors"
	"meetbook/internal/service"
)

// HistoryHandler exposes the operator-facing audit trail listing.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// List godoc
// @Summary List audit trail entries, newest first
// @Tags history
// @Produce json
// @Success 200 {array} model.History
// @Failure 500 {object} errors.ErrorResponse
// @Router /history [get]
func (h *HistoryHandler) List(c echo.Context) error {
	entries, err := h.historyService.List(c.Request().Context())
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, entries)
}
