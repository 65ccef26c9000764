package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jask/tenantadmin/internal/service"
)

// messageBody is the error envelope shared by server and client.
type messageBody struct {
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, messageBody{Message: msg})
}

// DecodeJSON decodes the request body into target, rejecting unknown fields.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

// RespondError maps service errors onto status codes. Unknown failures keep
// their details in the log, not the response.
func RespondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := http.StatusText(status)
	var serr *service.ServiceError
	if errors.As(err, &serr) && serr.Message != "" && status != http.StatusInternalServerError {
		msg = serr.Message
	}
	Message(w, status, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrUnknownPlan):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
