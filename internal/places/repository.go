package places

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ListQuery scopes a public listing: zero-based page, page size, and an
// optional free-text search term.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Offset returns the row offset implied by the page and limit.
func (q ListQuery) Offset() int {
	if q.Page < 0 || q.Limit < 0 {
		return 0
	}
	return q.Page * q.Limit
}

// PlaceRepository abstracts storage operations for place records.
type PlaceRepository interface {
	Create(ctx context.Context, record *Place) (*Place, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Place, error)
	Update(ctx context.Context, record *Place) (*Place, error)
	// Delete removes the record unconditionally. Deleting an id that does
	// not exist is a no-op success, never an error.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListPending returns every pending record, newest submission first.
	ListPending(ctx context.Context) ([]*Place, error)
	// ListApproved returns one page of approved records ordered by
	// updated_at descending, plus the total number of matching rows.
	ListApproved(ctx context.Context, query ListQuery) ([]*Place, int, error)
}

// NewPlaceRecordRepository builds the generic bun-backed repository used by
// the higher-level PlaceRepository implementation.
func NewPlaceRecordRepository(db *bun.DB) repository.Repository[*Place] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Place]{
		NewRecord: func() *Place { return &Place{} },
		GetID: func(p *Place) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Place, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(p *Place) string {
			if p == nil {
				return ""
			}
			return p.ID.String()
		},
	})
}
