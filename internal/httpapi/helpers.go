package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-places/internal/places"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for key, ferr := range verrs {
			fields[key] = ferr.Error()
		}
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: "request failed validation",
			Fields:  fields,
		}
	}

	var notFound *places.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
		}
	}

	if errors.Is(err, places.ErrPlaceIDRequired) || errors.Is(err, places.ErrLanguageInvalid) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}
