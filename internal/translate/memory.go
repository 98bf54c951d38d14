package translate

import (
	"context"
	"sync"

	"github.com/goliatone/go-places/pkg/interfaces"
)

// MemoryTranslator is a scripted in-memory translator for tests. Each call
// returns the configured result or error and is recorded for assertions.
type MemoryTranslator struct {
	mu       sync.Mutex
	result   *interfaces.TranslationResult
	err      error
	requests []interfaces.TranslationRequest
}

// NewMemoryTranslator constructs a translator that returns the given result.
func NewMemoryTranslator(result *interfaces.TranslationResult) *MemoryTranslator {
	return &MemoryTranslator{result: result}
}

// NewFailingTranslator constructs a translator that always returns err.
func NewFailingTranslator(err error) *MemoryTranslator {
	return &MemoryTranslator{err: err}
}

// Translate records the request and replays the scripted outcome.
func (m *MemoryTranslator) Translate(_ context.Context, req interfaces.TranslationRequest) (*interfaces.TranslationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return nil, ErrTranslation
	}
	copied := *m.result
	return &copied, nil
}

// Requests returns the requests observed so far.
func (m *MemoryTranslator) Requests() []interfaces.TranslationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]interfaces.TranslationRequest(nil), m.requests...)
}

// CallCount returns how many times Translate was invoked.
func (m *MemoryTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
