package places

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Language identifies one of the two supported content languages.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageKorean  Language = "ko"
)

// Valid reports whether the language is one of the supported codes.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageKorean
}

// Opposite returns the other supported language. The zero value maps to
// Korean so that the pair is always covered.
func (l Language) Opposite() Language {
	if l == LanguageKorean {
		return LanguageEnglish
	}
	return LanguageKorean
}

// NormalizeLanguage coerces arbitrary input into a supported language code,
// defaulting to English. Region suffixes like "ko-KR" collapse to their base.
func NormalizeLanguage(input string) Language {
	code := strings.ToLower(strings.TrimSpace(input))
	if strings.HasPrefix(code, "ko") {
		return LanguageKorean
	}
	return LanguageEnglish
}

// Status captures the moderation lifecycle of a place record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether the status is a known lifecycle value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Place is the canonical record for a crowd-sourced reading location. Every
// translatable field exists once per supported language; OriginalLanguage
// marks which variant the submitter authored and never changes after create.
type Place struct {
	bun.BaseModel `bun:"table:places,alias:p"`

	ID               uuid.UUID `bun:",pk,type:uuid" json:"id"`
	OriginalLanguage Language  `bun:"original_language,notnull" json:"original_language"`

	NameEN        *string `bun:"name_en" json:"name_en,omitempty"`
	NameKO        *string `bun:"name_ko" json:"name_ko,omitempty"`
	DescriptionEN *string `bun:"description_en" json:"description_en,omitempty"`
	DescriptionKO *string `bun:"description_ko" json:"description_ko,omitempty"`
	CityEN        *string `bun:"city_en" json:"city_en,omitempty"`
	CityKO        *string `bun:"city_ko" json:"city_ko,omitempty"`
	DistrictEN    *string `bun:"district_en" json:"district_en,omitempty"`
	DistrictKO    *string `bun:"district_ko" json:"district_ko,omitempty"`

	// RegionEN/RegionKO are the legacy single-field region columns kept for
	// rows created before the city/district split.
	RegionEN *string `bun:"region_en" json:"region_en,omitempty"`
	RegionKO *string `bun:"region_ko" json:"region_ko,omitempty"`

	RecommendedBookEN json.RawMessage `bun:"recommended_book_en,type:jsonb,nullzero" json:"recommended_book_en,omitempty"`
	RecommendedBookKO json.RawMessage `bun:"recommended_book_ko,type:jsonb,nullzero" json:"recommended_book_ko,omitempty"`

	Category  *string  `bun:"category" json:"category,omitempty"`
	Quietness *int     `bun:"quietness" json:"quietness,omitempty"`
	Photos    []string `bun:"photos,type:jsonb,nullzero" json:"photos,omitempty"`
	Latitude  *float64 `bun:"latitude" json:"latitude,omitempty"`
	Longitude *float64 `bun:"longitude" json:"longitude,omitempty"`

	Status    Status    `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Name returns the name variant for the given language without fallback.
func (p *Place) Name(lang Language) *string {
	if lang == LanguageKorean {
		return p.NameKO
	}
	return p.NameEN
}

// Description returns the description variant for the given language without fallback.
func (p *Place) Description(lang Language) *string {
	if lang == LanguageKorean {
		return p.DescriptionKO
	}
	return p.DescriptionEN
}

// RecommendedBookRaw returns the serialized book variant for the given language.
func (p *Place) RecommendedBookRaw(lang Language) json.RawMessage {
	if lang == LanguageKorean {
		return p.RecommendedBookKO
	}
	return p.RecommendedBookEN
}

// RecommendedBook is the structured book recommendation attached to a place.
type RecommendedBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Link   string `json:"link,omitempty"`
}

// DecodeRecommendedBook interprets a stored book value. The column may hold
// null, a JSON object, or a doubly-encoded JSON string; anything that does
// not yield a title counts as "no recommendation".
func DecodeRecommendedBook(raw json.RawMessage) *RecommendedBook {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	payload := []byte(trimmed)
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(payload, &inner); err != nil {
			return nil
		}
		payload = []byte(inner)
	}

	var book RecommendedBook
	if err := json.Unmarshal(payload, &book); err != nil {
		return nil
	}
	if strings.TrimSpace(book.Title) == "" {
		return nil
	}
	return &book
}

// EncodeRecommendedBook serializes a book for storage. Nil books encode to nil.
func EncodeRecommendedBook(book *RecommendedBook) json.RawMessage {
	if book == nil {
		return nil
	}
	encoded, err := json.Marshal(book)
	if err != nil {
		return nil
	}
	return encoded
}

// UiPlace is the display model produced by the shaping step: one value per
// field, already resolved for the requested language with fallback applied.
type UiPlace struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description"`
	Region          *string          `json:"region"`
	Category        *string          `json:"category"`
	Quietness       *int             `json:"quietness"`
	Photos          []string         `json:"photos"`
	Latitude        *float64         `json:"latitude"`
	Longitude       *float64         `json:"longitude"`
	RecommendedBook *RecommendedBook `json:"recommended_book"`
}

// Pagination summarizes a page of results in the public read contract.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}
