package places

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-places/internal/translate"
	"github.com/goliatone/go-places/pkg/interfaces"
	"github.com/google/uuid"
)

func strPtr(v string) *string { return &v }

type capturingAnnouncer struct {
	mu      sync.Mutex
	records []*Place
}

func (a *capturingAnnouncer) AnnounceNewEntry(record *Place) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, record)
}

func (a *capturingAnnouncer) announced() []*Place {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Place(nil), a.records...)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

type failingRepo struct {
	PlaceRepository
	createErr error
	updateErr error
	deleteErr error
}

func (r *failingRepo) Create(ctx context.Context, record *Place) (*Place, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.PlaceRepository.Create(ctx, record)
}

func (r *failingRepo) Update(ctx context.Context, record *Place) (*Place, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return r.PlaceRepository.Update(ctx, record)
}

func (r *failingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.PlaceRepository.Delete(ctx, id)
}

func TestSubmitCreatesPendingRecord(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	announcer := &capturingAnnouncer{}
	svc := NewService(repo,
		WithClock(fixedClock(now)),
		WithAnnouncer(announcer),
	)

	created, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageKorean,
		NameKO:           strPtr("한옥 서점"),
		CityKO:           strPtr("서울"),
		RecommendedBook: &RecommendedBook{
			Title:  "소년이 온다",
			Author: "한강",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}
	if created.NameEN != nil {
		t.Fatalf("expected english name unset, got %q", *created.NameEN)
	}
	if created.NameKO == nil || *created.NameKO != "한옥 서점" {
		t.Fatal("expected korean name to persist")
	}
	if !created.CreatedAt.Equal(now) || !created.UpdatedAt.Equal(now) {
		t.Fatal("expected both timestamps stamped from the clock")
	}
	if len(created.RecommendedBookKO) == 0 {
		t.Fatal("expected the book stored in the korean column")
	}
	if len(created.RecommendedBookEN) != 0 {
		t.Fatal("expected the english book column empty")
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("expected record persisted: %v", err)
	}
	if stored.Status != StatusPending {
		t.Fatalf("expected stored status pending, got %q", stored.Status)
	}

	announced := announcer.announced()
	if len(announced) != 1 {
		t.Fatalf("expected one announcement, got %d", len(announced))
	}
	if announced[0].ID != created.ID {
		t.Fatal("expected the announcement to carry the created record")
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(NewMemoryPlaceRepository())

	_, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: Language("fr"),
		NameEN:           strPtr("Riverside Reading Room"),
	})
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if _, ok := verrs["original_language"]; !ok {
		t.Fatalf("expected original_language violation, got %v", verrs)
	}

	_, err = svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("   "),
	})
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if _, ok := verrs["name_en"]; !ok {
		t.Fatalf("expected name_en violation, got %v", verrs)
	}
}

func TestApproveTranslatesOppositeLanguage(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	translator := translate.NewMemoryTranslator(&interfaces.TranslationResult{
		Name:        "테스트 카페",
		Description: "조용한 독서 공간",
	})
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	later := now.Add(2 * time.Hour)
	clock := now
	svc := NewService(repo,
		WithClock(func() time.Time { return clock }),
		WithTranslator(translator),
	)

	created, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Test Cafe"),
		DescriptionEN:    strPtr("A quiet reading spot"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = later
	result, err := svc.Approve(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Translated {
		t.Fatal("expected the approval to report a translation")
	}
	if result.Place.Status != StatusApproved {
		t.Fatalf("expected approved status, got %q", result.Place.Status)
	}
	if result.Place.NameKO == nil || *result.Place.NameKO != "테스트 카페" {
		t.Fatal("expected the korean name filled from the translation")
	}
	if result.Place.NameEN == nil || *result.Place.NameEN != "Test Cafe" {
		t.Fatal("expected the english name untouched")
	}
	if result.Place.DescriptionKO == nil || *result.Place.DescriptionKO != "조용한 독서 공간" {
		t.Fatal("expected the korean description filled from the translation")
	}
	if !result.Place.UpdatedAt.Equal(later) {
		t.Fatal("expected updated_at restamped on approval")
	}
	if translator.CallCount() != 1 {
		t.Fatalf("expected one translation call, got %d", translator.CallCount())
	}
	if got := translator.Requests()[0].Name; got != "Test Cafe" {
		t.Fatalf("expected the source name sent for translation, got %q", got)
	}
}

func TestApproveSurvivesTranslationFailure(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	translator := translate.NewFailingTranslator(errors.New("endpoint down"))
	svc := NewService(repo, WithTranslator(translator))

	created, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Harbour Library"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Approve(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("expected approval to succeed despite translation failure, got %v", err)
	}
	if result.Translated {
		t.Fatal("expected no translation reported")
	}
	if result.Place.Status != StatusApproved {
		t.Fatalf("expected approved status, got %q", result.Place.Status)
	}
	if result.Place.NameKO != nil {
		t.Fatal("expected the korean name left empty")
	}
}

func TestApproveIgnoresEmptyTranslatedName(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	translator := translate.NewMemoryTranslator(&interfaces.TranslationResult{
		Name:        "   ",
		Description: "무시됨",
	})
	svc := NewService(repo, WithTranslator(translator))

	created, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Hilltop Study Hall"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Approve(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Translated {
		t.Fatal("expected a blank translated name to be discarded")
	}
	if result.Place.DescriptionKO != nil {
		t.Fatal("expected the description discarded alongside the blank name")
	}
	if result.Place.Status != StatusApproved {
		t.Fatalf("expected approved status, got %q", result.Place.Status)
	}
}

func TestApproveSkipsTranslationWithoutSourceName(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	translator := translate.NewMemoryTranslator(&interfaces.TranslationResult{Name: "이름 없음"})
	svc := NewService(repo, WithTranslator(translator))

	seeded, err := repo.Create(context.Background(), &Place{
		ID:               uuid.New(),
		OriginalLanguage: LanguageEnglish,
		Status:           StatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Approve(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if translator.CallCount() != 0 {
		t.Fatalf("expected no translation call, got %d", translator.CallCount())
	}
	if result.Place.Status != StatusApproved {
		t.Fatalf("expected approved status, got %q", result.Place.Status)
	}
}

func TestApproveMissingRecord(t *testing.T) {
	svc := NewService(NewMemoryPlaceRepository())

	_, err := svc.Approve(context.Background(), uuid.New())
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if _, err := svc.Approve(context.Background(), uuid.Nil); !errors.Is(err, ErrPlaceIDRequired) {
		t.Fatalf("expected ErrPlaceIDRequired for the nil id, got %v", err)
	}
}

func TestUpdateOverwritesProvidedFields(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := now
	svc := NewService(repo, WithClock(func() time.Time { return clock }))

	created, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Old Name"),
		CityEN:           strPtr("Busan"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = now.Add(time.Hour)
	status := StatusApproved
	updated, err := svc.Update(context.Background(), UpdatePlaceRequest{
		ID:     created.ID,
		NameEN: strPtr("New Name"),
		Status: &status,
		RecommendedBookEN: &RecommendedBook{
			Title:  "Pachinko",
			Author: "Min Jin Lee",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.NameEN == nil || *updated.NameEN != "New Name" {
		t.Fatal("expected the name overwritten")
	}
	if updated.CityEN == nil || *updated.CityEN != "Busan" {
		t.Fatal("expected untouched fields preserved")
	}
	if updated.Status != StatusApproved {
		t.Fatalf("expected status overwritten, got %q", updated.Status)
	}
	if len(updated.RecommendedBookEN) == 0 {
		t.Fatal("expected the book encoded into the english column")
	}
	if !updated.UpdatedAt.Equal(now.Add(time.Hour)) {
		t.Fatal("expected updated_at restamped")
	}
	if !updated.CreatedAt.Equal(now) {
		t.Fatal("expected created_at untouched")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	svc := NewService(repo)

	created, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Short Lived"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("expected the second delete to be a no-op success, got %v", err)
	}
	if err := svc.Delete(context.Background(), uuid.Nil); !errors.Is(err, ErrPlaceIDRequired) {
		t.Fatalf("expected ErrPlaceIDRequired, got %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID); err == nil {
		t.Fatal("expected the record gone")
	}
}

func TestListPendingNewestFirst(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := now
	svc := NewService(repo, WithClock(func() time.Time { return clock }))

	first, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("First"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = now.Add(time.Minute)
	second, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Second"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Approve(context.Background(), first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending record, got %d", len(pending))
	}
	if pending[0].ID != second.ID {
		t.Fatal("expected only the unapproved submission")
	}
}

func TestListApprovedPagination(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := now
	svc := NewService(repo, WithClock(func() time.Time { return clock }))

	names := []string{"Alpha Books", "Beta Reading Room", "Gamma Cafe"}
	for _, name := range names {
		clock = clock.Add(time.Minute)
		created, err := svc.Submit(context.Background(), SubmitPlaceRequest{
			OriginalLanguage: LanguageEnglish,
			NameEN:           strPtr(name),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		clock = clock.Add(time.Minute)
		if _, err := svc.Approve(context.Background(), created.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	page, err := svc.ListApproved(context.Background(), ListApprovedRequest{Page: 0, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Places) != 2 {
		t.Fatalf("expected two records, got %d", len(page.Places))
	}
	if page.Pagination.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Pagination.Total)
	}
	if !page.Pagination.HasMore {
		t.Fatal("expected a further page")
	}
	if *page.Places[0].NameEN != "Gamma Cafe" {
		t.Fatalf("expected newest approval first, got %q", *page.Places[0].NameEN)
	}

	last, err := svc.ListApproved(context.Background(), ListApprovedRequest{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(last.Places) != 1 {
		t.Fatalf("expected one record on the last page, got %d", len(last.Places))
	}
	if last.Pagination.HasMore {
		t.Fatal("expected no further page")
	}
}

func TestListApprovedSearch(t *testing.T) {
	repo := NewMemoryPlaceRepository()
	svc := NewService(repo)

	seed := []SubmitPlaceRequest{
		{OriginalLanguage: LanguageEnglish, NameEN: strPtr("Quiet Cafe"), CityEN: strPtr("Seoul")},
		{OriginalLanguage: LanguageKorean, NameKO: strPtr("북악 도서관"), CityKO: strPtr("서울")},
		{OriginalLanguage: LanguageEnglish, NameEN: strPtr("Harbour Deck"), CityEN: strPtr("Busan")},
	}
	for _, req := range seed {
		created, err := svc.Submit(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Approve(context.Background(), created.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	page, err := svc.ListApproved(context.Background(), ListApprovedRequest{Search: "seoul"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Places) != 1 {
		t.Fatalf("expected the english seoul match, got %d", len(page.Places))
	}

	page, err = svc.ListApproved(context.Background(), ListApprovedRequest{Search: "서울"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Places) != 1 {
		t.Fatalf("expected the korean seoul match, got %d", len(page.Places))
	}

	page, err = svc.ListApproved(context.Background(), ListApprovedRequest{Search: "nowhere"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Places) != 0 {
		t.Fatalf("expected no matches, got %d", len(page.Places))
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	cause := errors.New("disk full")
	repo := &failingRepo{PlaceRepository: NewMemoryPlaceRepository(), createErr: cause}
	announcer := &capturingAnnouncer{}
	svc := NewService(repo, WithAnnouncer(announcer))

	_, err := svc.Submit(context.Background(), SubmitPlaceRequest{
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Quiet Cafe"),
	})

	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the store error wrapped")
	}
	if len(announcer.announced()) != 0 {
		t.Fatal("expected no announcement for a failed submission")
	}
}

func TestApproveStoreFailureKeepsPending(t *testing.T) {
	memory := NewMemoryPlaceRepository()
	created, err := memory.Create(context.Background(), &Place{
		ID:               uuid.New(),
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Harbour Library"),
		Status:           StatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cause := errors.New("connection reset")
	svc := NewService(&failingRepo{PlaceRepository: memory, updateErr: cause})

	_, err = svc.Approve(context.Background(), created.ID)
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the store error wrapped")
	}

	stored, err := memory.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != StatusPending {
		t.Fatalf("expected the record still pending after a failed commit, got %q", stored.Status)
	}
}

func TestDeleteStoreFailure(t *testing.T) {
	memory := NewMemoryPlaceRepository()
	created, err := memory.Create(context.Background(), &Place{
		ID:               uuid.New(),
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Hilltop Study Hall"),
		Status:           StatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := NewService(&failingRepo{PlaceRepository: memory, deleteErr: errors.New("lock timeout")})

	err = svc.Delete(context.Background(), created.ID)
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	if _, err := memory.GetByID(context.Background(), created.ID); err != nil {
		t.Fatalf("expected the record still stored after a failed delete: %v", err)
	}
}
