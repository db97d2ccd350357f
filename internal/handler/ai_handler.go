package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"meetbook/internal/errors"
	"meetbook/internal/service"
)

// AIHandler handles the LLM ranking endpoints. The model's array is returned
// as the response body verbatim.
type AIHandler struct {
	rankingService service.RankingService
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(rankingService service.RankingService) *AIHandler {
	return &AIHandler{rankingService: rankingService}
}

// GuestMatchRequest carries a guest's free-text requirement.
type GuestMatchRequest struct {
	UserID uint   `json:"userId" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// RankMeetingsForSlot godoc
// @Summary Rank a slot's meetings by relevance to the host's profession
// @Tags ai
// @Produce json
// @Param slotId path int true "Slot ID"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/body/{slotId} [post]
func (h *AIHandler) RankMeetingsForSlot(c echo.Context) error {
	slotID, err := strconv.Atoi(c.Param("slotId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid slotId", Code: "INVALID_ID"})
	}

	ranking, err := h.rankingService.RankMeetingsForSlot(c.Request().Context(), uint(slotID))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSONBlob(http.StatusOK, ranking)
}

// RankSlotsForGuest godoc
// @Summary Rank all other users' active slots against a guest requirement
// @Tags ai
// @Accept json
// @Produce json
// @Param request body GuestMatchRequest true "Guest requirement"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/guest [post]
func (h *AIHandler) RankSlotsForGuest(c echo.Context) error {
	var req GuestMatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ranking, err := h.rankingService.RankSlotsForGuest(c.Request().Context(), req.UserID, req.Text)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSONBlob(http.StatusOK, ranking)
}
