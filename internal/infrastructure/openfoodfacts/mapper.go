package openfoodfacts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scanlens/backend/internal/domain"
)

// lookupResponse is the Open Food Facts schema: a nested envelope with the
// record under "product" and a numeric status flag (0 = unknown barcode,
// returned with HTTP 200 by older deployments).
type lookupResponse struct {
	Status  int            `json:"status"`
	Product productRecord  `json:"product"`
}

type productRecord struct {
	ProductName     string `json:"product_name"`
	GenericName     string `json:"generic_name"`
	Brands          string `json:"brands"`
	Categories      string `json:"categories"`
	ImageFrontURL   string `json:"image_front_url"`
	ImageURL        string `json:"image_url"`
	IngredientsText string `json:"ingredients_text"`
}

// mapToProduct normalizes an Open Food Facts response body into the
// canonical shape. Alias priority per field:
//
//	name        <- product_name, else generic_name
//	image       <- image_front_url, else image_url
//	brand       <- first entry of the comma-separated brands list
//	description <- generic_name, else ingredients_text
//
// Open Food Facts carries no price data.
func mapToProduct(barcode string, body []byte) (*domain.CanonicalProduct, error) {
	var payload lookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: undecodable openfoodfacts response: %v", domain.ErrUpstream, err)
	}

	if payload.Status == 0 {
		return nil, domain.ErrProductNotFound
	}
	p := payload.Product

	return &domain.CanonicalProduct{
		Barcode:     barcode,
		Name:        firstNonEmpty(p.ProductName, p.GenericName),
		Brand:       firstBrand(p.Brands),
		Description: firstNonEmpty(p.GenericName, p.IngredientsText),
		Category:    firstSegment(p.Categories),
		ImageURL:    firstNonEmpty(p.ImageFrontURL, p.ImageURL),
		Source:      SourceName,
		SourceRaw:   json.RawMessage(body),
	}, nil
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// firstBrand picks the lead entry of the comma-separated brands field.
func firstBrand(brands string) string {
	return firstSegment(brands)
}

func firstSegment(list string) string {
	if idx := strings.Index(list, ","); idx >= 0 {
		list = list[:idx]
	}
	return strings.TrimSpace(list)
}
