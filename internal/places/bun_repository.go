package places

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// searchColumns are the columns matched by the free-text filter, both
// language variants plus the language-independent category.
var searchColumns = []string{
	"name_en", "name_ko",
	"description_en", "description_ko",
	"city_en", "city_ko",
	"district_en", "district_ko",
	"region_en", "region_ko",
	"category",
}

// placeUpdateColumns are the columns written on every Update. The id,
// original_language, and created_at columns are immutable after insert.
var placeUpdateColumns = []string{
	"name_en", "name_ko",
	"description_en", "description_ko",
	"city_en", "city_ko",
	"district_en", "district_ko",
	"region_en", "region_ko",
	"recommended_book_en", "recommended_book_ko",
	"category", "quietness", "photos",
	"latitude", "longitude",
	"status", "updated_at",
}

// BunPlaceRepository implements PlaceRepository on top of bun with optional
// repository-level caching.
type BunPlaceRepository struct {
	repo repository.Repository[*Place]
}

// NewBunPlaceRepository creates a place repository without caching.
func NewBunPlaceRepository(db *bun.DB) *BunPlaceRepository {
	return NewBunPlaceRepositoryWithCache(db, nil, nil)
}

// NewBunPlaceRepositoryWithCache creates a place repository wrapped with the
// provided cache service. Passing nil for either argument disables caching.
func NewBunPlaceRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPlaceRepository {
	base := NewPlaceRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunPlaceRepository{repo: base}
}

func (r *BunPlaceRepository) Create(ctx context.Context, record *Place) (*Place, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*Place, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "place", id.String())
	}
	return record, nil
}

func (r *BunPlaceRepository) Update(ctx context.Context, record *Place) (*Place, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(placeUpdateColumns...),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "place", record.ID.String())
	}
	return updated, nil
}

func (r *BunPlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.repo.Delete(ctx, &Place{ID: id})
	if err == nil {
		return nil
	}
	// Delete is idempotent: a missing row is a no-op success.
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return nil
	}
	return fmt.Errorf("place repository error: %w", err)
}

func (r *BunPlaceRepository) ListPending(ctx context.Context) ([]*Place, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.status = ?", StatusPending).
				Order("created_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("place repository error: %w", err)
	}
	return records, nil
}

func (r *BunPlaceRepository) ListApproved(ctx context.Context, query ListQuery) ([]*Place, int, error) {
	records, total, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("?TableAlias.status = ?", StatusApproved)
			q = applySearchFilter(q, query.Search)
			return q.Order("updated_at DESC")
		}),
		repository.SelectPaginate(query.Limit, query.Offset()),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("place repository error: %w", err)
	}
	return records, total, nil
}

// applySearchFilter ORs a case-insensitive substring match across every
// searchable column. An empty term leaves the query untouched.
func applySearchFilter(q *bun.SelectQuery, term string) *bun.SelectQuery {
	if term == "" {
		return q
	}
	pattern := "%" + term + "%"
	return q.WhereGroup(" AND ", func(group *bun.SelectQuery) *bun.SelectQuery {
		for _, column := range searchColumns {
			group = group.WhereOr("lower(?TableAlias."+column+") LIKE lower(?)", pattern)
		}
		return group
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
