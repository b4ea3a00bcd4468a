package handlers

import "net/http"

// apiError is the error body for PIN endpoints. It intentionally exposes the
// remaining attempt budget on unlock failures so a human can self-correct,
// and nothing else.
type apiError struct {
	status            int
	Message           string `json:"error"`
	RemainingAttempts *int64 `json:"remainingAttempts,omitempty"`
}

func (e *apiError) Error() string {
	return e.Message
}

func (e *apiError) GetStatus() int {
	return e.status
}

func errUnauthorized() error {
	return &apiError{status: http.StatusUnauthorized, Message: "Unauthorized"}
}

func errInternal() error {
	return &apiError{status: http.StatusInternalServerError, Message: "Internal server error"}
}

func errInvalidPinFormat() error {
	return &apiError{status: http.StatusBadRequest, Message: "PIN must be exactly 4 digits"}
}

func errWrongPin(remaining int64) error {
	return &apiError{status: http.StatusUnauthorized, Message: "Invalid PIN", RemainingAttempts: &remaining}
}

func errLockedOut() error {
	zero := int64(0)

	return &apiError{
		status:            http.StatusTooManyRequests,
		Message:           "Too many failed attempts, try again later",
		RemainingAttempts: &zero,
	}
}
