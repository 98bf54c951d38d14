package places

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryPlaceRepository is an in-memory implementation for scaffolding and tests.
type MemoryPlaceRepository struct {
	mu     sync.RWMutex
	places map[uuid.UUID]*Place
}

// NewMemoryPlaceRepository creates an empty in-memory place repository.
func NewMemoryPlaceRepository() *MemoryPlaceRepository {
	return &MemoryPlaceRepository{
		places: make(map[uuid.UUID]*Place),
	}
}

// Create inserts the supplied record.
func (m *MemoryPlaceRepository) Create(_ context.Context, record *Place) (*Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePlace(record)
	m.places[copied.ID] = copied
	return clonePlace(copied), nil
}

// GetByID retrieves a record by identifier.
func (m *MemoryPlaceRepository) GetByID(_ context.Context, id uuid.UUID) (*Place, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.places[id]
	if !ok {
		return nil, &NotFoundError{Resource: "place", Key: id.String()}
	}
	return clonePlace(record), nil
}

// Update replaces the stored record. Missing records surface NotFoundError.
func (m *MemoryPlaceRepository) Update(_ context.Context, record *Place) (*Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.places[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "place", Key: record.ID.String()}
	}
	copied := clonePlace(record)
	m.places[copied.ID] = copied
	return clonePlace(copied), nil
}

// Delete removes the record. Deleting a missing id is a no-op success.
func (m *MemoryPlaceRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.places, id)
	return nil
}

// ListPending returns pending records, newest submission first.
func (m *MemoryPlaceRepository) ListPending(_ context.Context) ([]*Place, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Place, 0)
	for _, record := range m.places {
		if record.Status == StatusPending {
			out = append(out, clonePlace(record))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ListApproved returns one page of approved records ordered by updated_at
// descending, plus the total matching count before pagination.
func (m *MemoryPlaceRepository) ListApproved(_ context.Context, query ListQuery) ([]*Place, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*Place, 0)
	for _, record := range m.places {
		if record.Status != StatusApproved {
			continue
		}
		if !matchesSearch(record, query.Search) {
			continue
		}
		matched = append(matched, clonePlace(record))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	total := len(matched)
	offset := query.Offset()
	if offset >= total {
		return []*Place{}, total, nil
	}
	end := total
	if query.Limit > 0 && offset+query.Limit < total {
		end = offset + query.Limit
	}
	return matched[offset:end], total, nil
}

// matchesSearch mirrors the SQL filter: case-insensitive substring match
// ORed across every searchable column.
func matchesSearch(record *Place, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, value := range []*string{
		record.NameEN, record.NameKO,
		record.DescriptionEN, record.DescriptionKO,
		record.CityEN, record.CityKO,
		record.DistrictEN, record.DistrictKO,
		record.RegionEN, record.RegionKO,
		record.Category,
	} {
		if value != nil && strings.Contains(strings.ToLower(*value), needle) {
			return true
		}
	}
	return false
}

func clonePlace(src *Place) *Place {
	if src == nil {
		return nil
	}

	copied := *src
	copied.NameEN = cloneStringPtr(src.NameEN)
	copied.NameKO = cloneStringPtr(src.NameKO)
	copied.DescriptionEN = cloneStringPtr(src.DescriptionEN)
	copied.DescriptionKO = cloneStringPtr(src.DescriptionKO)
	copied.CityEN = cloneStringPtr(src.CityEN)
	copied.CityKO = cloneStringPtr(src.CityKO)
	copied.DistrictEN = cloneStringPtr(src.DistrictEN)
	copied.DistrictKO = cloneStringPtr(src.DistrictKO)
	copied.RegionEN = cloneStringPtr(src.RegionEN)
	copied.RegionKO = cloneStringPtr(src.RegionKO)
	if src.RecommendedBookEN != nil {
		copied.RecommendedBookEN = append([]byte(nil), src.RecommendedBookEN...)
	}
	if src.RecommendedBookKO != nil {
		copied.RecommendedBookKO = append([]byte(nil), src.RecommendedBookKO...)
	}
	if src.Photos != nil {
		copied.Photos = append([]string(nil), src.Photos...)
	}
	copied.Quietness = cloneIntPtr(src.Quietness)
	copied.Latitude = cloneFloatPtr(src.Latitude)
	copied.Longitude = cloneFloatPtr(src.Longitude)
	return &copied
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneFloatPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
