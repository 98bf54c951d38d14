package httpapi

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-places/internal/places"
	"github.com/google/uuid"
)

type submissionsListResponse struct {
	Submissions []*places.Place `json:"submissions"`
}

type submissionIDPayload struct {
	ID uuid.UUID `json:"id"`
}

type approveResponse struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message"`
	Translated bool          `json:"translated"`
	Place      *places.Place `json:"place"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type verifyAdminPayload struct {
	Password string `json:"password"`
}

func (api *API) handleSubmissionsList(w http.ResponseWriter, r *http.Request) {
	if api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	pending, err := api.service.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissionsListResponse{Submissions: pending})
}

func (api *API) handleSubmissionUpdate(w http.ResponseWriter, r *http.Request) {
	if api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload places.UpdatePlaceRequest
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	updated, err := api.service.Update(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	api.invalidateCache()
	writeJSON(w, http.StatusOK, updated)
}

func (api *API) handleSubmissionApprove(w http.ResponseWriter, r *http.Request) {
	if api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload submissionIDPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	result, err := api.service.Approve(r.Context(), payload.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	api.invalidateCache()

	message := "submission approved"
	if !result.Translated {
		message = "submission approved without translation"
	}
	writeJSON(w, http.StatusOK, approveResponse{
		Success:    true,
		Message:    message,
		Translated: result.Translated,
		Place:      result.Place,
	})
}

func (api *API) handleSubmissionDelete(w http.ResponseWriter, r *http.Request) {
	if api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload submissionIDPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	if err := api.service.Delete(r.Context(), payload.ID); err != nil {
		writeError(w, err)
		return
	}

	api.invalidateCache()
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (api *API) handleVerifyAdmin(w http.ResponseWriter, r *http.Request) {
	var payload verifyAdminPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	if api.adminSecret == "" ||
		subtle.ConstantTimeCompare([]byte(payload.Password), []byte(api.adminSecret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: "invalid password",
		})
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
