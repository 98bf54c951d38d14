// Package places assembles the reading-location directory: public
// submissions, moderation with best-effort translation, cached public reads,
// and push notifications.
package places

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-places/internal/cache"
	"github.com/goliatone/go-places/internal/httpapi"
	"github.com/goliatone/go-places/internal/logging"
	"github.com/goliatone/go-places/internal/logging/gologger"
	"github.com/goliatone/go-places/internal/notify"
	core "github.com/goliatone/go-places/internal/places"
	"github.com/goliatone/go-places/internal/translate"
	"github.com/goliatone/go-places/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Service exports the place service contract for consumers of this package.
type Service = core.Service

// PlaceRepository exports the storage contract.
type PlaceRepository = core.PlaceRepository

// Place exports the canonical record type.
type Place = core.Place

// UiPlace exports the language-resolved display model.
type UiPlace = core.UiPlace

// RecommendedBook exports the structured book recommendation.
type RecommendedBook = core.RecommendedBook

// Language exports the supported language code type.
type Language = core.Language

// Status exports the moderation status type.
type Status = core.Status

// SubmitPlaceRequest exports the submission input.
type SubmitPlaceRequest = core.SubmitPlaceRequest

// UpdatePlaceRequest exports the moderation edit input.
type UpdatePlaceRequest = core.UpdatePlaceRequest

// ListApprovedRequest exports the public listing input.
type ListApprovedRequest = core.ListApprovedRequest

// ApprovedPage exports one page of public results.
type ApprovedPage = core.ApprovedPage

// ApprovalResult exports the approval outcome.
type ApprovalResult = core.ApprovalResult

// Pagination exports the public pagination envelope.
type Pagination = core.Pagination

const (
	LanguageEnglish = core.LanguageEnglish
	LanguageKorean  = core.LanguageKorean

	StatusPending  = core.StatusPending
	StatusApproved = core.StatusApproved
	StatusRejected = core.StatusRejected
)

// Module is the top-level runtime façade. It owns the service, the read
// cache, the notification dispatcher and the HTTP API.
type Module struct {
	cfg        Config
	repo       core.PlaceRepository
	service    core.Service
	cache      *cache.PlacesCache
	notifier   interfaces.Notifier
	dispatcher *notify.Dispatcher
	api        *httpapi.API
}

// ModuleOption overrides a default collaborator at construction time.
type ModuleOption func(*Module)

// WithRepository injects a storage implementation, replacing the bun-backed
// default. Useful for tests and embedded setups.
func WithRepository(repo core.PlaceRepository) ModuleOption {
	return func(m *Module) {
		if repo != nil {
			m.repo = repo
		}
	}
}

// WithNotifier injects a notification backend, replacing the ntfy client
// built from the config.
func WithNotifier(notifier interfaces.Notifier) ModuleOption {
	return func(m *Module) {
		if notifier != nil {
			m.notifier = notifier
		}
	}
}

// New wires the module from an open database handle and a validated config.
// A nil db falls back to the in-memory repository unless one is injected.
func New(db *bun.DB, cfg Config, opts ...ModuleOption) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}

	if m.repo == nil {
		if db != nil {
			m.repo = newCachedBunRepository(db)
		} else {
			m.repo = core.NewMemoryPlaceRepository()
		}
	}

	serviceOpts := []core.ServiceOption{
		core.WithLogger(logging.SubmissionLogger(provider)),
	}

	if endpoint := cfg.Translation.Endpoint; endpoint != "" {
		translator, terr := translate.NewClient(translate.Config{
			Endpoint: endpoint,
			Token:    cfg.Translation.Token,
			Timeout:  cfg.Translation.Timeout,
		})
		if terr != nil {
			return nil, terr
		}
		serviceOpts = append(serviceOpts, core.WithTranslator(translator))
	}

	if cfg.Notify.Enabled {
		if m.notifier == nil {
			m.notifier = notify.NewClient(notify.WithBaseURL(cfg.Notify.BaseURL))
		}
		m.dispatcher = notify.NewDispatcher(m.notifier,
			notify.WithQueueSize(cfg.Notify.QueueSize),
			notify.WithLogger(logging.NotifyLogger(provider)),
		)
		serviceOpts = append(serviceOpts,
			core.WithAnnouncer(notify.NewEntryAnnouncer(m.dispatcher, cfg.Notify.EntryTopic)),
		)
	}

	m.service = core.NewService(m.repo, serviceOpts...)

	m.cache = cache.New(
		cache.FetcherFunc(m.service.ListApproved),
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithLogger(logging.CacheLogger(provider)),
	)

	m.api = httpapi.New(httpapi.Config{
		Service:      m.service,
		Cache:        m.cache,
		Notifier:     m.notifier,
		Dispatcher:   m.dispatcher,
		EntryTopic:   cfg.Notify.EntryTopic,
		ContactTopic: cfg.Notify.ContactTopic,
		AdminSecret:  cfg.AdminSecret,
		Logger:       logging.HTTPLogger(provider),
	})

	return m, nil
}

// newCachedBunRepository wraps the bun-backed repository with the repository
// cache layer. A cache service that fails to initialize degrades to an
// uncached repository.
func newCachedBunRepository(db *bun.DB) core.PlaceRepository {
	cacheService, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		return core.NewBunPlaceRepository(db)
	}
	return core.NewBunPlaceRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
}

// Service returns the configured place service.
func (m *Module) Service() Service {
	if m == nil {
		return nil
	}
	return m.service
}

// Cache returns the public read cache.
func (m *Module) Cache() *cache.PlacesCache {
	if m == nil {
		return nil
	}
	return m.cache
}

// Handler returns the HTTP handler with every route mounted.
func (m *Module) Handler() (http.Handler, error) {
	if m == nil || m.api == nil {
		return nil, errors.New("places: module not initialized")
	}
	mux := http.NewServeMux()
	m.api.Register(mux)
	return mux, nil
}

// Close drains the notification queue. Safe to call more than once.
func (m *Module) Close() {
	if m != nil && m.dispatcher != nil {
		m.dispatcher.Close()
	}
}
