package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"meetbook/internal/errors"
	"meetbook/internal/model"
	"meetbook/internal/service"
)

// MeetingHandler handles meeting endpoints.
type MeetingHandler struct {
	meetingService service.MeetingService
}

// NewMeetingHandler creates a new meeting handler.
func NewMeetingHandler(meetingService service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

// CreateMeetingRequest represents a meeting creation request.
type CreateMeetingRequest struct {
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	SlotID      uint   `json:"slotId" validate:"required"`
	HostID      uint   `json:"hostId" validate:"required"`
	GuestIDs    []uint `json:"guestIds"`
}

// CreateMeeting godoc
// @Summary Create a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body CreateMeetingRequest true "Meeting data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meet/create [post]
func (h *MeetingHandler) CreateMeeting(c echo.Context) error {
	var req CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseTimestamp(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid date", Code: "INVALID_TIMESTAMP"})
	}

	meeting, err := h.meetingService.CreateMeeting(c.Request().Context(), service.MeetingInput{
		Description: req.Description,
		Date:        date,
		SlotID:      req.SlotID,
		HostID:      req.HostID,
		GuestIDs:    req.GuestIDs,
	})
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "meeting created successfully",
		"meeting": meeting,
	})
}

// GetAllMeetings godoc
// @Summary List all meetings
// @Tags meetings
// @Produce json
// @Success 200 {array} model.Meeting
// @Failure 500 {object} errors.ErrorResponse
// @Router /meet/allmeet [get]
func (h *MeetingHandler) GetAllMeetings(c echo.Context) error {
	meetings, err := h.meetingService.ListMeetings(c.Request().Context())
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, meetings)
}

// GetMeeting godoc
// @Summary Get meeting by id
// @Tags meetings
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} model.Meeting
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meet/single/{id} [get]
func (h *MeetingHandler) GetMeeting(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid id", Code: "INVALID_ID"})
	}

	meeting, err := h.meetingService.GetMeeting(c.Request().Context(), uint(id))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, meeting)
}

// GetMeetingsByHost godoc
// @Summary List meetings hosted by a user
// @Tags meetings
// @Produce json
// @Param hostId path int true "Host user ID"
// @Success 200 {array} model.Meeting
// @Failure 400 {object} errors.ErrorResponse
// @Router /meet/user/{hostId} [get]
func (h *MeetingHandler) GetMeetingsByHost(c echo.Context) error {
	hostID, err := strconv.Atoi(c.Param("hostId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid hostId", Code: "INVALID_ID"})
	}

	meetings, err := h.meetingService.ListMeetingsByHost(c.Request().Context(), uint(hostID))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, meetings)
}

// GetMeetingsBySlot godoc
// @Summary List meetings booked against a slot
// @Tags meetings
// @Produce json
// @Param slotId path int true "Slot ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /meet/slot/{slotId} [get]
func (h *MeetingHandler) GetMeetingsBySlot(c echo.Context) error {
	slotID, err := strconv.Atoi(c.Param("slotId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid slotId", Code: "INVALID_ID"})
	}

	meetings, err := h.meetingService.ListMeetingsBySlot(c.Request().Context(), uint(slotID))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "meetings fetched successfully",
		"meetings": meetings,
	})
}

// GetMeetingsForDates godoc
// @Summary Meetings for a host over a 7-day window, grouped by day
// @Tags meetings
// @Produce json
// @Param date path string true "Window start (YYYY-MM-DD)"
// @Param userId path int true "Host user ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /meet/date/{date}/user/{userId} [get]
func (h *MeetingHandler) GetMeetingsForDates(c echo.Context) error {
	start, err := parseTimestamp(c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid date", Code: "INVALID_TIMESTAMP"})
	}
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid userId", Code: "INVALID_ID"})
	}

	grouped, err := h.meetingService.MeetingsForWeek(c.Request().Context(), uint(userID), start)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "meetings fetched successfully",
		"groupedMeetings": grouped,
	})
}

// ChangeStatus godoc
// @Summary Change meeting status
// @Tags meetings
// @Produce json
// @Param status path int true "New status: 0 cancelled, 1 pending, 2 completed"
// @Param meetingId path int true "Meeting ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meet/status/{status}/id/{meetingId} [put]
func (h *MeetingHandler) ChangeStatus(c echo.Context) error {
	status, err := strconv.Atoi(c.Param("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid status", Code: "INVALID_STATUS"})
	}
	meetingID, err := strconv.Atoi(c.Param("meetingId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid meetingId", Code: "INVALID_ID"})
	}

	meeting, err := h.meetingService.ChangeStatus(c.Request().Context(), uint(meetingID), model.MeetingStatus(status))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "meeting status updated successfully",
		"meeting": meeting,
	})
}

// DeleteMeeting godoc
// @Summary Delete a meeting and its guest links
// @Tags meetings
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meet/del/{id} [delete]
func (h *MeetingHandler) DeleteMeeting(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid id", Code: "INVALID_ID"})
	}

	if err := h.meetingService.DeleteMeeting(c.Request().Context(), uint(id)); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "meeting and guests deleted successfully",
	})
}
