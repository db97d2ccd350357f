package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrSlotNotFound is returned when a referenced slot does not exist.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrMeetingNotFound is returned when a referenced meeting does not exist.
	ErrMeetingNotFound = errors.New("meeting not found")
	// ErrSlotConflict is returned when a slot overlaps an existing active slot.
	ErrSlotConflict = errors.New("user already has an active slot in this time range")
	// ErrMeetingExists is returned when an identical meeting already exists.
	ErrMeetingExists = errors.New("meeting with similar details already exists")
	// ErrInvalidStatus is returned when a meeting status is out of range.
	ErrInvalidStatus = errors.New("invalid status, valid values are 0 (cancelled), 1 (pending), 2 (completed)")
	// ErrNoEligibleHosts is returned when no other user has an active slot.
	ErrNoEligibleHosts = errors.New("no other users with active slots found")

	// ErrUpstreamUnavailable is returned when the model call itself fails.
	ErrUpstreamUnavailable = errors.New("upstream model unavailable")
	// ErrNoStructuredOutput is returned when no JSON array is found in model output.
	ErrNoStructuredOutput = errors.New("no structured output in model response")
	// ErrMalformedModelOutput is returned when the extracted array is not valid JSON.
	ErrMalformedModelOutput = errors.New("malformed model output")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The three model-output
// kinds all map to 500 with the specific kind preserved in the code.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrSlotNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SLOT_NOT_FOUND")
	case errors.Is(err, ErrMeetingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEETING_NOT_FOUND")
	case errors.Is(err, ErrNoEligibleHosts):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_ELIGIBLE_HOSTS")
	case errors.Is(err, ErrSlotConflict):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SLOT_CONFLICT")
	case errors.Is(err, ErrMeetingExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MEETING_EXISTS")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrUpstreamUnavailable):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "UPSTREAM_UNAVAILABLE")
	case errors.Is(err, ErrNoStructuredOutput):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "NO_STRUCTURED_OUTPUT")
	case errors.Is(err, ErrMalformedModelOutput):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "MALFORMED_MODEL_OUTPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
