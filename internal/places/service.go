package places

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-places/internal/logging"
	"github.com/goliatone/go-places/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes the submission lifecycle and moderation workflow.
type Service interface {
	Submit(ctx context.Context, req SubmitPlaceRequest) (*Place, error)
	Get(ctx context.Context, id uuid.UUID) (*Place, error)
	ListPending(ctx context.Context) ([]*Place, error)
	ListApproved(ctx context.Context, req ListApprovedRequest) (*ApprovedPage, error)
	Approve(ctx context.Context, id uuid.UUID) (*ApprovalResult, error)
	Update(ctx context.Context, req UpdatePlaceRequest) (*Place, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubmitPlaceRequest captures a public submission. Only the name in the
// original language is required; every other field is optional.
type SubmitPlaceRequest struct {
	OriginalLanguage Language         `json:"original_language"`
	NameEN           *string          `json:"name_en,omitempty"`
	NameKO           *string          `json:"name_ko,omitempty"`
	DescriptionEN    *string          `json:"description_en,omitempty"`
	DescriptionKO    *string          `json:"description_ko,omitempty"`
	CityEN           *string          `json:"city_en,omitempty"`
	CityKO           *string          `json:"city_ko,omitempty"`
	DistrictEN       *string          `json:"district_en,omitempty"`
	DistrictKO       *string          `json:"district_ko,omitempty"`
	RecommendedBook  *RecommendedBook `json:"recommended_book,omitempty"`
	Category         *string          `json:"category,omitempty"`
	Quietness        *int             `json:"quietness,omitempty"`
	Photos           []string         `json:"photos,omitempty"`
	Latitude         *float64         `json:"latitude,omitempty"`
	Longitude        *float64         `json:"longitude,omitempty"`
}

// Validate ensures the submission carries a supported language and a name
// authored in that language.
func (r SubmitPlaceRequest) Validate() error {
	errs := validation.Errors{}
	if !r.OriginalLanguage.Valid() {
		errs["original_language"] = validation.NewError(
			"places.submit.language_invalid",
			`original_language must be "en" or "ko"`,
		)
	} else {
		name := r.NameEN
		if r.OriginalLanguage == LanguageKorean {
			name = r.NameKO
		}
		if name == nil || strings.TrimSpace(*name) == "" {
			errs["name_"+string(r.OriginalLanguage)] = validation.NewError(
				"places.submit.name_required",
				"name is required in the original language",
			)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePlaceRequest overwrites individual fields of a record regardless of
// its status. Nil fields are left untouched; updated_at is always stamped.
type UpdatePlaceRequest struct {
	ID                uuid.UUID        `json:"id"`
	NameEN            *string          `json:"name_en,omitempty"`
	NameKO            *string          `json:"name_ko,omitempty"`
	DescriptionEN     *string          `json:"description_en,omitempty"`
	DescriptionKO     *string          `json:"description_ko,omitempty"`
	CityEN            *string          `json:"city_en,omitempty"`
	CityKO            *string          `json:"city_ko,omitempty"`
	DistrictEN        *string          `json:"district_en,omitempty"`
	DistrictKO        *string          `json:"district_ko,omitempty"`
	RegionEN          *string          `json:"region_en,omitempty"`
	RegionKO          *string          `json:"region_ko,omitempty"`
	RecommendedBookEN *RecommendedBook `json:"recommended_book_en,omitempty"`
	RecommendedBookKO *RecommendedBook `json:"recommended_book_ko,omitempty"`
	Category          *string          `json:"category,omitempty"`
	Quietness         *int             `json:"quietness,omitempty"`
	Photos            []string         `json:"photos,omitempty"`
	Latitude          *float64         `json:"latitude,omitempty"`
	Longitude         *float64         `json:"longitude,omitempty"`
	Status            *Status          `json:"status,omitempty"`
}

// ListApprovedRequest scopes a public read.
type ListApprovedRequest struct {
	Page     int
	Limit    int
	Search   string
	Language Language
}

// ApprovedPage is one page of approved records plus pagination metadata.
type ApprovedPage struct {
	Places     []*Place
	Pagination Pagination
}

// ApprovalResult reports the outcome of an approval, including whether the
// translation endpoint contributed the opposite-language fields.
type ApprovalResult struct {
	Place      *Place
	Translated bool
}

// SubmissionAnnouncer receives best-effort notifications about new entries.
// Implementations must not block; failures are theirs to log and drop.
type SubmissionAnnouncer interface {
	AnnounceNewEntry(record *Place)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithTranslator wires the translation backend used during approval.
func WithTranslator(translator interfaces.Translator) ServiceOption {
	return func(s *service) {
		if translator != nil {
			s.translator = translator
		}
	}
}

// WithAnnouncer wires the notification sink for new submissions.
func WithAnnouncer(announcer SubmissionAnnouncer) ServiceOption {
	return func(s *service) {
		if announcer != nil {
			s.announcer = announcer
		}
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultPageSize overrides the page size applied when a listing request
// leaves the limit unset.
func WithDefaultPageSize(size int) ServiceOption {
	return func(s *service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

type service struct {
	repo       PlaceRepository
	translator interfaces.Translator
	announcer  SubmissionAnnouncer
	logger     interfaces.Logger
	now        func() time.Time
	id         IDGenerator
	pageSize   int
}

const defaultPageSize = 20

// NewService constructs a place service with the required dependencies.
func NewService(repo PlaceRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
		pageSize: defaultPageSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit validates and persists a new submission as pending, then announces
// it. Announcement failures never fail the submission.
func (s *service) Submit(ctx context.Context, req SubmitPlaceRequest) (*Place, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Place{
		ID:               s.id(),
		OriginalLanguage: req.OriginalLanguage,
		NameEN:           req.NameEN,
		NameKO:           req.NameKO,
		DescriptionEN:    req.DescriptionEN,
		DescriptionKO:    req.DescriptionKO,
		CityEN:           req.CityEN,
		CityKO:           req.CityKO,
		DistrictEN:       req.DistrictEN,
		DistrictKO:       req.DistrictKO,
		Category:         req.Category,
		Quietness:        req.Quietness,
		Photos:           req.Photos,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if req.RecommendedBook != nil {
		encoded := EncodeRecommendedBook(req.RecommendedBook)
		if req.OriginalLanguage == LanguageKorean {
			record.RecommendedBookKO = encoded
		} else {
			record.RecommendedBookEN = encoded
		}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, &PersistenceError{Op: "create place", Err: err}
	}

	if s.announcer != nil {
		s.announcer.AnnounceNewEntry(clonePlace(created))
	}

	s.logger.Info("submission created",
		"place_id", created.ID.String(),
		"language", string(created.OriginalLanguage),
	)
	return created, nil
}

// Get fetches a record by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Place, error) {
	if id == uuid.Nil {
		return nil, ErrPlaceIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

// ListPending returns every pending submission, newest first.
func (s *service) ListPending(ctx context.Context) ([]*Place, error) {
	return s.repo.ListPending(ctx)
}

// ListApproved returns one page of publicly visible records.
func (s *service) ListApproved(ctx context.Context, req ListApprovedRequest) (*ApprovedPage, error) {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Limit <= 0 {
		req.Limit = s.pageSize
	}

	records, total, err := s.repo.ListApproved(ctx, ListQuery{
		Page:   req.Page,
		Limit:  req.Limit,
		Search: strings.TrimSpace(req.Search),
	})
	if err != nil {
		return nil, err
	}

	return &ApprovedPage{
		Places: records,
		Pagination: Pagination{
			Page:    req.Page,
			Limit:   req.Limit,
			Total:   total,
			HasMore: len(records) == req.Limit && req.Offset()+req.Limit < total,
		},
	}, nil
}

// Offset returns the row offset implied by the request.
func (r ListApprovedRequest) Offset() int {
	if r.Page < 0 || r.Limit < 0 {
		return 0
	}
	return r.Page * r.Limit
}

// Approve transitions a pending record to approved. When the source name is
// present and a translator is configured, the opposite-language fields are
// filled from the translation result. Translation failures are logged and
// swallowed: moderators are never blocked by an endpoint outage, and the
// record keeps exactly the fields it had before the call.
func (s *service) Approve(ctx context.Context, id uuid.UUID) (*ApprovalResult, error) {
	if id == uuid.Nil {
		return nil, ErrPlaceIDRequired
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	source := record.OriginalLanguage
	sourceName := record.Name(source)

	translated := false
	if s.translator != nil && sourceName != nil && strings.TrimSpace(*sourceName) != "" {
		result, terr := s.translator.Translate(ctx, buildTranslationRequest(record))
		if terr != nil {
			s.logger.Warn("translation failed, approving without it",
				"place_id", record.ID.String(),
				"source_language", string(source),
				"error", terr.Error(),
			)
		} else if result != nil {
			translated = mergeTranslation(record, result)
		}
	}

	record.Status = StatusApproved
	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, &PersistenceError{Op: "approve place", Err: err}
	}

	s.logger.Info("submission approved",
		"place_id", updated.ID.String(),
		"translated", translated,
	)
	return &ApprovalResult{Place: updated, Translated: translated}, nil
}

// Update overwrites the provided fields and stamps updated_at. No field-level
// validation is applied beyond what submission enforces at creation.
func (s *service) Update(ctx context.Context, req UpdatePlaceRequest) (*Place, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPlaceIDRequired
	}

	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	applyUpdate(record, req)
	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, &PersistenceError{Op: "update place", Err: err}
	}
	return updated, nil
}

// Delete removes a record unconditionally. It doubles as the reject
// transition; the second delete of the same id is a no-op success.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPlaceIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return &PersistenceError{Op: "delete place", Err: err}
	}
	return nil
}

// buildTranslationRequest assembles the payload sent to the translation
// endpoint from the record's source-language fields.
func buildTranslationRequest(record *Place) interfaces.TranslationRequest {
	source := record.OriginalLanguage
	req := interfaces.TranslationRequest{
		SubmissionID:     record.ID.String(),
		OriginalLanguage: string(source),
	}
	if name := record.Name(source); name != nil {
		req.Name = *name
	}
	if description := record.Description(source); description != nil {
		req.Description = *description
	}
	if raw := record.RecommendedBookRaw(source); len(raw) > 0 {
		book := map[string]any{}
		if err := json.Unmarshal(raw, &book); err == nil && len(book) > 0 {
			req.RecommendedBook = book
		}
	}
	return req
}

// mergeTranslation writes the translated fields into the opposite-language
// columns. The name is always written; description and book only when the
// endpoint returned them non-empty, so existing values are never clobbered
// with blanks.
func mergeTranslation(record *Place, result *interfaces.TranslationResult) bool {
	target := record.OriginalLanguage.Opposite()

	name := strings.TrimSpace(result.Name)
	if name == "" {
		return false
	}

	if target == LanguageKorean {
		record.NameKO = &name
	} else {
		record.NameEN = &name
	}

	if description := strings.TrimSpace(result.Description); description != "" {
		if target == LanguageKorean {
			record.DescriptionKO = &description
		} else {
			record.DescriptionEN = &description
		}
	}

	if len(result.RecommendedBook) > 0 {
		if encoded, err := json.Marshal(result.RecommendedBook); err == nil {
			if target == LanguageKorean {
				record.RecommendedBookKO = encoded
			} else {
				record.RecommendedBookEN = encoded
			}
		}
	}
	return true
}

func applyUpdate(record *Place, req UpdatePlaceRequest) {
	if req.NameEN != nil {
		record.NameEN = req.NameEN
	}
	if req.NameKO != nil {
		record.NameKO = req.NameKO
	}
	if req.DescriptionEN != nil {
		record.DescriptionEN = req.DescriptionEN
	}
	if req.DescriptionKO != nil {
		record.DescriptionKO = req.DescriptionKO
	}
	if req.CityEN != nil {
		record.CityEN = req.CityEN
	}
	if req.CityKO != nil {
		record.CityKO = req.CityKO
	}
	if req.DistrictEN != nil {
		record.DistrictEN = req.DistrictEN
	}
	if req.DistrictKO != nil {
		record.DistrictKO = req.DistrictKO
	}
	if req.RegionEN != nil {
		record.RegionEN = req.RegionEN
	}
	if req.RegionKO != nil {
		record.RegionKO = req.RegionKO
	}
	if req.RecommendedBookEN != nil {
		record.RecommendedBookEN = EncodeRecommendedBook(req.RecommendedBookEN)
	}
	if req.RecommendedBookKO != nil {
		record.RecommendedBookKO = EncodeRecommendedBook(req.RecommendedBookKO)
	}
	if req.Category != nil {
		record.Category = req.Category
	}
	if req.Quietness != nil {
		record.Quietness = req.Quietness
	}
	if req.Photos != nil {
		record.Photos = req.Photos
	}
	if req.Latitude != nil {
		record.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		record.Longitude = req.Longitude
	}
	if req.Status != nil {
		record.Status = *req.Status
	}
}
