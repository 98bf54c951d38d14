package interfaces

import (
	"context"
	"errors"
)

// ErrTranslationUnavailable is returned when no translation backend is configured.
var ErrTranslationUnavailable = errors.New("translation backend unavailable")

// TranslationRequest carries the source-language fields of a submission to the
// translation backend. RecommendedBook is passed through opaquely; backends
// that cannot translate it should return it unchanged or omit it.
type TranslationRequest struct {
	SubmissionID     string         `json:"submission_id"`
	OriginalLanguage string         `json:"original_language"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	RecommendedBook  map[string]any `json:"recommended_book,omitempty"`
}

// TranslationResult holds the fields translated into the opposite language.
// Any field may be empty; callers must treat the payload as untrusted.
type TranslationResult struct {
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	RecommendedBook map[string]any `json:"recommended_book,omitempty"`
}

// Translator converts submission fields from their original language into the
// opposite supported language.
type Translator interface {
	Translate(ctx context.Context, req TranslationRequest) (*TranslationResult, error)
}
