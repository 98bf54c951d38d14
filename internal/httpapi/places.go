package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-places/internal/places"
)

type placesListResponse struct {
	Places     []places.UiPlace  `json:"places"`
	Pagination places.Pagination `json:"pagination"`
}

type submitResponse struct {
	ID string `json:"id"`
}

func (api *API) handlePlacesList(w http.ResponseWriter, r *http.Request) {
	if api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	query := r.URL.Query()
	page := parseIntParam(query.Get("page"), 0)
	limit := parseIntParam(query.Get("limit"), 0)
	search := strings.TrimSpace(query.Get("search"))
	lang := places.NormalizeLanguage(query.Get("language"))

	if api.cache != nil {
		result, err := api.cache.Get(r.Context(), page, limit, search, lang)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, placesListResponse{
			Places:     result.Places,
			Pagination: result.Pagination,
		})
		return
	}

	result, err := api.service.ListApproved(r.Context(), places.ListApprovedRequest{
		Page:     page,
		Limit:    limit,
		Search:   search,
		Language: lang,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, placesListResponse{
		Places:     places.UiPlacesFromPlaces(result.Places, lang),
		Pagination: result.Pagination,
	})
}

func (api *API) handlePlaceSubmit(w http.ResponseWriter, r *http.Request) {
	if api.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload places.SubmitPlaceRequest
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	created, err := api.service.Submit(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{ID: created.ID.String()})
}

func parseIntParam(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
