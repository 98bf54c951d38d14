package places

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestUiPlaceFromPlaceFallsBackPerField(t *testing.T) {
	record := &Place{
		ID:               uuid.New(),
		OriginalLanguage: LanguageKorean,
		NameKO:           strPtr("조용한 서점"),
		DescriptionKO:    strPtr("골목 안의 독립 서점"),
		CityKO:           strPtr("서울"),
		DistrictKO:       strPtr("마포구"),
	}

	shaped := UiPlaceFromPlace(record, LanguageEnglish)

	if shaped.Name != "조용한 서점" {
		t.Fatalf("expected the korean name as fallback, got %q", shaped.Name)
	}
	if shaped.Description == nil || *shaped.Description != "골목 안의 독립 서점" {
		t.Fatal("expected the korean description as fallback")
	}
	if shaped.Region == nil || *shaped.Region != "서울 마포구" {
		t.Fatalf("expected city and district joined, got %v", shaped.Region)
	}
}

func TestUiPlaceFromPlacePrefersRequestedLanguage(t *testing.T) {
	record := &Place{
		ID:               uuid.New(),
		OriginalLanguage: LanguageEnglish,
		NameEN:           strPtr("Quiet Bookshop"),
		NameKO:           strPtr("조용한 서점"),
		CityEN:           strPtr("Seoul"),
		CityKO:           strPtr("서울"),
		DistrictKO:       strPtr("마포구"),
	}

	shaped := UiPlaceFromPlace(record, LanguageKorean)
	if shaped.Name != "조용한 서점" {
		t.Fatalf("expected the korean name, got %q", shaped.Name)
	}
	if shaped.Region == nil || *shaped.Region != "서울 마포구" {
		t.Fatalf("expected korean city with korean district, got %v", shaped.Region)
	}

	shaped = UiPlaceFromPlace(record, LanguageEnglish)
	if shaped.Name != "Quiet Bookshop" {
		t.Fatalf("expected the english name, got %q", shaped.Name)
	}
	if shaped.Region == nil || *shaped.Region != "Seoul 마포구" {
		t.Fatalf("expected the district to fall back independently, got %v", shaped.Region)
	}
}

func TestComposeRegionLegacyFallback(t *testing.T) {
	record := &Place{
		ID:       uuid.New(),
		RegionEN: strPtr("Jeju"),
	}

	shaped := UiPlaceFromPlace(record, LanguageEnglish)
	if shaped.Region == nil || *shaped.Region != "Jeju" {
		t.Fatalf("expected the legacy region column used, got %v", shaped.Region)
	}

	record.CityEN = strPtr("Jeju City")
	shaped = UiPlaceFromPlace(record, LanguageEnglish)
	if shaped.Region == nil || *shaped.Region != "Jeju City" {
		t.Fatalf("expected city to shadow the legacy region, got %v", shaped.Region)
	}
}

func TestUiPlaceFromPlaceResolvesBookAcrossLanguages(t *testing.T) {
	record := &Place{
		ID:                uuid.New(),
		RecommendedBookKO: json.RawMessage(`{"title":"소년이 온다","author":"한강"}`),
	}

	shaped := UiPlaceFromPlace(record, LanguageEnglish)
	if shaped.RecommendedBook == nil || shaped.RecommendedBook.Title != "소년이 온다" {
		t.Fatalf("expected the korean book as fallback, got %v", shaped.RecommendedBook)
	}
}

func TestUiPlaceFromPlaceNil(t *testing.T) {
	shaped := UiPlaceFromPlace(nil, LanguageEnglish)
	if shaped.Name != "" || shaped.Region != nil {
		t.Fatal("expected the zero display model for a nil record")
	}
}
