package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-places/internal/notify"
	"github.com/goliatone/go-places/internal/places"
)

type contactPayload struct {
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

type notifyPayload struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// handleContact sends the contact message synchronously. Unlike the
// submission announcement, delivery is the whole point here, so a failed
// send surfaces to the caller.
func (api *API) handleContact(w http.ResponseWriter, r *http.Request) {
	if api.notifier == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload contactPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "message is required",
		})
		return
	}

	notification := notify.ContactNotification(payload.Email, payload.Message)
	if err := api.notifier.Send(r.Context(), api.contactTopic, notification); err != nil {
		api.logger.Error("contact delivery failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// handleNotify re-triggers a push for an existing record, used when the
// original submission-time announcement was missed.
func (api *API) handleNotify(w http.ResponseWriter, r *http.Request) {
	if api.dispatcher == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload notifyPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	switch payload.Type {
	case "new_entry":
		var record places.Place
		if err := json.Unmarshal(payload.Payload, &record); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid payload"})
			return
		}
		api.dispatcher.Enqueue(api.entryTopic, notify.NewEntryNotification(&record))
		writeJSON(w, http.StatusAccepted, successResponse{Success: true})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "unknown notification type",
		})
	}
}
