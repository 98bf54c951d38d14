package translate

import (
	"context"

	"github.com/goliatone/go-places/pkg/interfaces"
)

// NewNoOp returns a translator that reports the backend as unavailable. The
// approval workflow downgrades that to an untranslated approval, so a
// deployment without a translation endpoint still moderates normally.
func NewNoOp() interfaces.Translator {
	return noOpTranslator{}
}

type noOpTranslator struct{}

func (noOpTranslator) Translate(context.Context, interfaces.TranslationRequest) (*interfaces.TranslationResult, error) {
	return nil, interfaces.ErrTranslationUnavailable
}
