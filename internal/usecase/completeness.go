package usecase

import "github.com/scanlens/backend/internal/domain"

// Completeness describes which tracked fields a record satisfies. The two
// slices are always complementary over domain.TrackedFields, and
// HasIncompleteData is derived from MissingFields.
type Completeness struct {
	MissingFields     []domain.Field
	AvailableFields   []domain.Field
	HasIncompleteData bool
}

// AnalyzeCompleteness computes field presence for a canonical product.
// A field counts as available when its backing value is non-empty; order in
// both slices follows domain.TrackedFields. Pure and synchronous.
func AnalyzeCompleteness(product *domain.CanonicalProduct) Completeness {
	result := Completeness{
		MissingFields:   make([]domain.Field, 0, len(domain.TrackedFields)),
		AvailableFields: make([]domain.Field, 0, len(domain.TrackedFields)),
	}

	for _, field := range domain.TrackedFields {
		if product.HasField(field) {
			result.AvailableFields = append(result.AvailableFields, field)
		} else {
			result.MissingFields = append(result.MissingFields, field)
		}
	}

	result.HasIncompleteData = len(result.MissingFields) > 0
	return result
}

// applyCompleteness stamps the analysis onto the record itself.
func applyCompleteness(product *domain.CanonicalProduct) {
	c := AnalyzeCompleteness(product)
	product.MissingFields = c.MissingFields
	product.AvailableFields = c.AvailableFields
	product.HasIncompleteData = c.HasIncompleteData
}
