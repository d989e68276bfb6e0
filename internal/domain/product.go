package domain

import (
	"encoding/json"
	"time"
)

// Field identifies one of the tracked semantic product fields. Other
// components key on these identifiers; FieldLabels carries the human wording.
type Field string

const (
	FieldName        Field = "name"
	FieldImage       Field = "image"
	FieldBrand       Field = "brand"
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
)

// TrackedFields is the fixed evaluation order for completeness analysis.
var TrackedFields = []Field{
	FieldName,
	FieldImage,
	FieldBrand,
	FieldDescription,
	FieldPrice,
}

// FieldLabels maps field identifiers to display wording. Deployments may
// swap the wording for another locale without touching the identifiers.
var FieldLabels = map[Field]string{
	FieldName:        "Product Name",
	FieldImage:       "Product Image",
	FieldBrand:       "Brand",
	FieldDescription: "Description",
	FieldPrice:       "Price",
}

// CanonicalProduct is the normalized, source-independent product record.
// Empty string means the field is absent. A record is built fresh per lookup
// and must not be mutated after the resolver finalizes it.
type CanonicalProduct struct {
	Barcode string `json:"barcode"`

	// Legacy alias views of Barcode kept for callers that still read the
	// GTIN/UPC keys. Always equal to Barcode once finalized.
	GTIN13 string `json:"gtin13,omitempty"`
	GTIN14 string `json:"gtin14,omitempty"`
	UPC    string `json:"upc,omitempty"`

	Name        string `json:"name,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Price       string `json:"price,omitempty"` // opaque formatted value, no currency normalization
	Category    string `json:"category,omitempty"`

	MissingFields     []Field `json:"missingFields"`
	AvailableFields   []Field `json:"availableFields"`
	HasIncompleteData bool    `json:"hasIncompleteData"`

	Source     string    `json:"source,omitempty"` // adapter name, "merged", or "cache"
	ResolvedAt time.Time `json:"resolvedAt,omitempty"`

	// SourceRaw is the original provider payload, retained for diagnostics
	// only. Nothing downstream reads it.
	SourceRaw json.RawMessage `json:"-"`
}

// FieldValue returns the canonical value backing a tracked field.
func (p *CanonicalProduct) FieldValue(f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldImage:
		return p.ImageURL
	case FieldBrand:
		return p.Brand
	case FieldDescription:
		return p.Description
	case FieldPrice:
		return p.Price
	}
	return ""
}

// HasField reports whether a tracked field is populated.
func (p *CanonicalProduct) HasField(f Field) bool {
	return p.FieldValue(f) != ""
}

// Sufficient reports whether the record carries at least one of name, image
// or brand. Records below this bar are treated the same as "no data".
func (p *CanonicalProduct) Sufficient() bool {
	return p.Name != "" || p.ImageURL != "" || p.Brand != ""
}

// Complete reports whether every tracked field is populated.
func (p *CanonicalProduct) Complete() bool {
	for _, f := range TrackedFields {
		if !p.HasField(f) {
			return false
		}
	}
	return true
}

// Merge fills gaps in p from other, field by field. Populated fields are
// never overwritten, so the earliest source stays authoritative.
func (p *CanonicalProduct) Merge(other *CanonicalProduct) {
	if other == nil {
		return
	}
	if p.Name == "" {
		p.Name = other.Name
	}
	if p.Brand == "" {
		p.Brand = other.Brand
	}
	if p.Description == "" {
		p.Description = other.Description
	}
	if p.ImageURL == "" {
		p.ImageURL = other.ImageURL
	}
	if p.Price == "" {
		p.Price = other.Price
	}
	if p.Category == "" {
		p.Category = other.Category
	}
	if p.SourceRaw == nil {
		p.SourceRaw = other.SourceRaw
	}
	if other.Source != "" && other.Source != p.Source {
		if p.Source == "" {
			p.Source = other.Source
		} else {
			p.Source = "merged"
		}
	}
}
