// Package httpapi exposes the public and moderation endpoints over
// net/http. Handlers stay thin: decode, call the service, map errors.
package httpapi

import (
	"net/http"

	"github.com/goliatone/go-places/internal/cache"
	"github.com/goliatone/go-places/internal/logging"
	"github.com/goliatone/go-places/internal/notify"
	"github.com/goliatone/go-places/internal/places"
	"github.com/goliatone/go-places/pkg/interfaces"
)

// Config carries the collaborators the API needs. Service is required;
// everything else degrades gracefully when absent.
type Config struct {
	Service      places.Service
	Cache        *cache.PlacesCache
	Notifier     interfaces.Notifier
	Dispatcher   *notify.Dispatcher
	EntryTopic   string
	ContactTopic string
	AdminSecret  string
	Logger       interfaces.Logger
}

// API hosts the HTTP handlers for the places service.
type API struct {
	service      places.Service
	cache        *cache.PlacesCache
	notifier     interfaces.Notifier
	dispatcher   *notify.Dispatcher
	entryTopic   string
	contactTopic string
	adminSecret  string
	logger       interfaces.Logger
}

// New constructs the API from its collaborators.
func New(cfg Config) *API {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &API{
		service:      cfg.Service,
		cache:        cfg.Cache,
		notifier:     cfg.Notifier,
		dispatcher:   cfg.Dispatcher,
		entryTopic:   cfg.EntryTopic,
		contactTopic: cfg.ContactTopic,
		adminSecret:  cfg.AdminSecret,
		logger:       logger,
	}
}

// Register mounts every route on the mux.
func (api *API) Register(mux *http.ServeMux) {
	if api == nil || mux == nil {
		return
	}
	mux.HandleFunc("GET /api/places", api.handlePlacesList)
	mux.HandleFunc("POST /api/places", api.handlePlaceSubmit)
	mux.HandleFunc("GET /api/submissions", api.handleSubmissionsList)
	mux.HandleFunc("PUT /api/update-submission", api.handleSubmissionUpdate)
	mux.HandleFunc("POST /api/approve-submission", api.handleSubmissionApprove)
	mux.HandleFunc("DELETE /api/delete-submission", api.handleSubmissionDelete)
	mux.HandleFunc("POST /api/verify-admin", api.handleVerifyAdmin)
	mux.HandleFunc("POST /api/contact", api.handleContact)
	mux.HandleFunc("POST /api/notify", api.handleNotify)
}

// invalidateCache drops cached pages after a mutation so public reads
// observe it before the TTL expires.
func (api *API) invalidateCache() {
	if api.cache != nil {
		api.cache.InvalidateAll()
	}
}
