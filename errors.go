package places

import (
	core "github.com/goliatone/go-places/internal/places"
	"github.com/goliatone/go-places/internal/notify"
	"github.com/goliatone/go-places/internal/translate"
)

// NotFoundError exports the missing-record error type.
type NotFoundError = core.NotFoundError

// PersistenceError exports the failed-store-operation error type.
type PersistenceError = core.PersistenceError

// TranslationError exports the translation endpoint failure type.
type TranslationError = translate.TranslationError

// NotificationError exports the notification delivery failure type.
type NotificationError = notify.NotificationError

var (
	// ErrPlaceIDRequired marks operations invoked without an id.
	ErrPlaceIDRequired = core.ErrPlaceIDRequired

	// ErrTranslation matches any wrapped translation failure via errors.Is.
	ErrTranslation = translate.ErrTranslation

	// ErrNotification matches any wrapped delivery failure via errors.Is.
	ErrNotification = notify.ErrNotification
)
