package notify

import (
	"strings"

	"github.com/goliatone/go-places/internal/places"
	"github.com/goliatone/go-places/pkg/interfaces"
)

// NewEntryNotification composes the push message announcing a new submission.
// The display name and area resolve by the submitter's original language.
func NewEntryNotification(record *places.Place) interfaces.Notification {
	lang := record.OriginalLanguage

	name := "N/A"
	if value := record.Name(lang); value != nil && strings.TrimSpace(*value) != "" {
		name = *value
	}

	parts := []string{"Location: " + name}
	if area := entryArea(record, lang); area != "" {
		parts = append(parts, "Area: "+area)
	}
	category := "location"
	if record.Category != nil && strings.TrimSpace(*record.Category) != "" {
		category = *record.Category
		parts = append(parts, "Category: "+category)
	}
	parts = append(parts, "Language: "+string(lang))

	return interfaces.Notification{
		Title:    "New Entry",
		Message:  strings.Join(parts, "\n"),
		Priority: "default",
		Tags:     []string{"books", "new-entry", category},
	}
}

// ContactNotification composes the push message for a contact-form message.
// An empty email renders as anonymous.
func ContactNotification(email, message string) interfaces.Notification {
	from := "From: Anonymous"
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		from = "From: " + trimmed
	}

	return interfaces.Notification{
		Title:    "Contact Message",
		Message:  strings.Join([]string{from, "", "Message:", message}, "\n"),
		Priority: "default",
		Tags:     []string{"email", "contact"},
	}
}

func entryArea(record *places.Place, lang places.Language) string {
	parts := make([]string, 0, 2)
	if city := languageField(record.CityEN, record.CityKO, lang); city != "" {
		parts = append(parts, city)
	}
	if district := languageField(record.DistrictEN, record.DistrictKO, lang); district != "" {
		parts = append(parts, district)
	}
	return strings.Join(parts, ", ")
}

func languageField(en, ko *string, lang places.Language) string {
	value := en
	if lang == places.LanguageKorean {
		value = ko
	}
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
