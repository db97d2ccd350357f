package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"meetbook/internal/errors"
	"meetbook/internal/service"
)

// NotificationHandler handles notification listing.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListByUser godoc
// @Summary List a user's notifications, newest first
// @Tags notifications
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.Notification
// @Failure 400 {object} errors.ErrorResponse
// @Router /notifications/user/{id} [get]
func (h *NotificationHandler) ListByUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid id", Code: "INVALID_ID"})
	}

	notifications, err := h.notificationService.ListByUser(c.Request().Context(), uint(id))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, notifications)
}
