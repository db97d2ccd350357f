package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"meetbook/internal/errors"
	"meetbook/internal/service"
)

// timestampLayouts are accepted for the slot time/date fields, most
// specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// SlotHandler handles slot endpoints.
type SlotHandler struct {
	slotService service.SlotService
}

// NewSlotHandler creates a new slot handler.
func NewSlotHandler(slotService service.SlotService) *SlotHandler {
	return &SlotHandler{slotService: slotService}
}

// SlotRequest represents a slot create/update request.
type SlotRequest struct {
	ID          uint   `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	UserID      uint   `json:"userId" validate:"required"`
	Active      *bool  `json:"active"`
}

func (r *SlotRequest) toInput() (service.SlotInput, *echo.HTTPError) {
	input := service.SlotInput{
		Title:       r.Title,
		Description: r.Description,
		UserID:      r.UserID,
		Active:      true,
	}
	if r.Active != nil {
		input.Active = *r.Active
	}

	var err error
	if input.StartTime, err = parseTimestamp(r.StartTime); err != nil {
		return input, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid startTime", Code: "INVALID_TIMESTAMP"})
	}
	if input.EndTime, err = parseTimestamp(r.EndTime); err != nil {
		return input, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid endTime", Code: "INVALID_TIMESTAMP"})
	}
	if input.StartDate, err = parseTimestamp(r.StartDate); err != nil {
		return input, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid startDate", Code: "INVALID_TIMESTAMP"})
	}
	if input.EndDate, err = parseTimestamp(r.EndDate); err != nil {
		return input, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid endDate", Code: "INVALID_TIMESTAMP"})
	}
	return input, nil
}

// CreateSlot godoc
// @Summary Create a slot
// @Tags slots
// @Accept json
// @Produce json
// @Param request body SlotRequest true "Slot data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /slot/create [post]
func (h *SlotHandler) CreateSlot(c echo.Context) error {
	var req SlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, httpErr := req.toInput()
	if httpErr != nil {
		return httpErr
	}

	slot, err := h.slotService.CreateSlot(c.Request().Context(), input)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "slot created successfully",
		"slot":    slot,
	})
}

// UpdateSlot godoc
// @Summary Update a slot
// @Tags slots
// @Accept json
// @Produce json
// @Param request body SlotRequest true "Slot data with id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /slot/update [put]
func (h *SlotHandler) UpdateSlot(c echo.Context) error {
	var req SlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "id is required", Code: "MISSING_ID"})
	}

	input, httpErr := req.toInput()
	if httpErr != nil {
		return httpErr
	}

	slot, err := h.slotService.UpdateSlot(c.Request().Context(), req.ID, input)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "slot updated successfully",
		"slot":    slot,
	})
}

// GetAllSlots godoc
// @Summary List all slots
// @Tags slots
// @Produce json
// @Success 200 {array} model.Slot
// @Failure 500 {object} errors.ErrorResponse
// @Router /slot/allslot [get]
func (h *SlotHandler) GetAllSlots(c echo.Context) error {
	slots, err := h.slotService.ListSlots(c.Request().Context())
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, slots)
}

// GetSlot godoc
// @Summary Get slot by id
// @Tags slots
// @Produce json
// @Param id path int true "Slot ID"
// @Success 200 {object} model.Slot
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /slot/single/{id} [get]
func (h *SlotHandler) GetSlot(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid id", Code: "INVALID_ID"})
	}

	slot, err := h.slotService.GetSlot(c.Request().Context(), uint(id))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, slot)
}

// GetSlotsByUser godoc
// @Summary List slots of a user
// @Tags slots
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.Slot
// @Failure 400 {object} errors.ErrorResponse
// @Router /slot/user/{id} [get]
func (h *SlotHandler) GetSlotsByUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid id", Code: "INVALID_ID"})
	}

	slots, err := h.slotService.ListSlotsByUser(c.Request().Context(), uint(id))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, slots)
}

// GetSlotsForDates godoc
// @Summary Slots for a user over a 7-day window, grouped by day
// @Tags slots
// @Produce json
// @Param date path string true "Window start (YYYY-MM-DD)"
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /slot/date/{date}/user/{userId} [get]
func (h *SlotHandler) GetSlotsForDates(c echo.Context) error {
	start, err := parseTimestamp(c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid date", Code: "INVALID_TIMESTAMP"})
	}
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid userId", Code: "INVALID_ID"})
	}

	grouped, err := h.slotService.SlotsForWeek(c.Request().Context(), uint(userID), start)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "slots fetched successfully",
		"groupedSlots": grouped,
	})
}

// DeleteSlotRequest identifies the slot to deactivate.
type DeleteSlotRequest struct {
	ID uint `json:"id" validate:"required"`
}

// DeleteSlot godoc
// @Summary Deactivate a slot
// @Tags slots
// @Accept json
// @Produce json
// @Param request body DeleteSlotRequest true "Slot id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /slot/delete [put]
func (h *SlotHandler) DeleteSlot(c echo.Context) error {
	var req DeleteSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slot, err := h.slotService.DeactivateSlot(c.Request().Context(), req.ID)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "slot deactivated successfully",
		"slot":    slot,
	})
}
