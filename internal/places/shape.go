package places

import "strings"

// UiPlaceFromPlace shapes a stored row into the display model for the
// requested language. Each field falls back to the other language's variant
// independently, so a half-translated record still renders.
func UiPlaceFromPlace(record *Place, lang Language) UiPlace {
	if record == nil {
		return UiPlace{}
	}

	name := fallbackValue(record.Name(lang), record.Name(lang.Opposite()))

	shaped := UiPlace{
		ID:              record.ID.String(),
		Name:            name,
		Description:     fallbackPtr(record.Description(lang), record.Description(lang.Opposite())),
		Region:          composeRegion(record, lang),
		Category:        record.Category,
		Quietness:       record.Quietness,
		Photos:          record.Photos,
		Latitude:        record.Latitude,
		Longitude:       record.Longitude,
		RecommendedBook: resolveBook(record, lang),
	}
	return shaped
}

// UiPlacesFromPlaces shapes a batch of rows for the requested language.
func UiPlacesFromPlaces(records []*Place, lang Language) []UiPlace {
	shaped := make([]UiPlace, 0, len(records))
	for _, record := range records {
		shaped = append(shaped, UiPlaceFromPlace(record, lang))
	}
	return shaped
}

// composeRegion joins city and district for display. Rows predating the
// city/district split fall back to the legacy region column.
func composeRegion(record *Place, lang Language) *string {
	city := fallbackValue(cityField(record, lang), cityField(record, lang.Opposite()))
	district := fallbackValue(districtField(record, lang), districtField(record, lang.Opposite()))

	parts := make([]string, 0, 2)
	if city != "" {
		parts = append(parts, city)
	}
	if district != "" {
		parts = append(parts, district)
	}
	if len(parts) > 0 {
		joined := strings.Join(parts, " ")
		return &joined
	}

	legacy := fallbackValue(regionField(record, lang), regionField(record, lang.Opposite()))
	if legacy != "" {
		return &legacy
	}
	return nil
}

func resolveBook(record *Place, lang Language) *RecommendedBook {
	if book := DecodeRecommendedBook(record.RecommendedBookRaw(lang)); book != nil {
		return book
	}
	return DecodeRecommendedBook(record.RecommendedBookRaw(lang.Opposite()))
}

func cityField(record *Place, lang Language) *string {
	if lang == LanguageKorean {
		return record.CityKO
	}
	return record.CityEN
}

func districtField(record *Place, lang Language) *string {
	if lang == LanguageKorean {
		return record.DistrictKO
	}
	return record.DistrictEN
}

func regionField(record *Place, lang Language) *string {
	if lang == LanguageKorean {
		return record.RegionKO
	}
	return record.RegionEN
}

// fallbackValue returns the first non-empty string behind the pointers.
func fallbackValue(primary, secondary *string) string {
	if primary != nil && strings.TrimSpace(*primary) != "" {
		return *primary
	}
	if secondary != nil && strings.TrimSpace(*secondary) != "" {
		return *secondary
	}
	return ""
}

// fallbackPtr returns the first non-empty pointer, or nil when both are unset.
func fallbackPtr(primary, secondary *string) *string {
	if primary != nil && strings.TrimSpace(*primary) != "" {
		return primary
	}
	if secondary != nil && strings.TrimSpace(*secondary) != "" {
		return secondary
	}
	return nil
}
