package barcodelookup

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scanlens/backend/internal/domain"
)

// lookupResponse is the Barcode Lookup schema: an array of product objects
// keyed by their GTIN, each carrying attribute fields plus per-store offers.
type lookupResponse struct {
	Products []productRecord `json:"products"`
}

type productRecord struct {
	BarcodeNumber string        `json:"barcode_number"`
	Title         string        `json:"title"`
	ProductName   string        `json:"product_name"`
	Brand         string        `json:"brand"`
	Manufacturer  string        `json:"manufacturer"`
	Category      string        `json:"category"`
	Description   string        `json:"description"`
	Images        []string      `json:"images"`
	Stores        []storeRecord `json:"stores"`
}

type storeRecord struct {
	StoreName  string `json:"store_name"`
	StorePrice string `json:"store_price"`
	Price      string `json:"price"`
}

// mapToProduct normalizes a Barcode Lookup response body into the canonical
// shape. Alias priority per field:
//
//	name  <- title, else product_name
//	brand <- brand, else manufacturer
//	image <- images[0]
//	price <- first store's store_price, else its price
func mapToProduct(barcode string, body []byte) (*domain.CanonicalProduct, error) {
	var payload lookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: undecodable barcodelookup response: %v", domain.ErrUpstream, err)
	}

	if len(payload.Products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	p := payload.Products[0]

	return &domain.CanonicalProduct{
		Barcode:     barcode,
		Name:        firstNonEmpty(p.Title, p.ProductName),
		Brand:       firstNonEmpty(p.Brand, p.Manufacturer),
		Description: strings.TrimSpace(p.Description),
		Category:    strings.TrimSpace(p.Category),
		ImageURL:    firstImage(p.Images),
		Price:       pickStorePrice(p.Stores),
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

func firstImage(images []string) string {
	for _, img := range images {
		if img != "" {
			return img
		}
	}
	return ""
}

// pickStorePrice walks the store offers in listing order and returns the
// first populated price as an opaque string.
func pickStorePrice(stores []storeRecord) string {
	for _, s := range stores {
		if p := firstNonEmpty(s.StorePrice, s.Price); p != "" {
			return p
		}
	}
	return ""
}
