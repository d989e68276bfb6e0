package upcitemdb

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scanlens/backend/internal/domain"
)

// lookupResponse is the UPCitemdb lookup schema: a flat array of item
// objects under "items".
type lookupResponse struct {
	Code  string `json:"code"`
	Total int    `json:"total"`
	Items []item `json:"items"`
}

type item struct {
	EAN                 string      `json:"ean"`
	Title               string      `json:"title"`
	Brand               string      `json:"brand"`
	Description         string      `json:"description"`
	Category            string      `json:"category"`
	Images              []string    `json:"images"`
	Offers              []offer     `json:"offers"`
	LowestRecordedPrice json.Number `json:"lowest_recorded_price"`
}

type offer struct {
	Merchant string      `json:"merchant"`
	Price    json.Number `json:"price"`
}

// mapToProduct normalizes a UPCitemdb response body into the canonical
// shape. Alias priority per field:
//
//	name  <- title
//	image <- images[0]
//	price <- offers[0].price, else lowest_recorded_price
func mapToProduct(barcode string, body []byte) (*domain.CanonicalProduct, error) {
	var payload lookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: undecodable upcitemdb response: %v", domain.ErrUpstream, err)
	}

	if len(payload.Items) == 0 {
		return nil, domain.ErrProductNotFound
	}
	it := payload.Items[0]

	return &domain.CanonicalProduct{
		Barcode:     barcode,
		Name:        strings.TrimSpace(it.Title),
		Brand:       strings.TrimSpace(it.Brand),
		Description: strings.TrimSpace(it.Description),
		Category:    strings.TrimSpace(it.Category),
		ImageURL:    firstImage(it.Images),
		Price:       pickPrice(it),
		Source:      SourceName,
		SourceRaw:   json.RawMessage(body),
	}, nil
}

func firstImage(images []string) string {
	for _, img := range images {
		if img != "" {
			return img
		}
	}
	return ""
}

// pickPrice returns the first populated price candidate as an opaque string.
func pickPrice(it item) string {
	for _, o := range it.Offers {
		if p := o.Price.String(); p != "" && p != "0" {
			return p
		}
	}
	if p := it.LowestRecordedPrice.String(); p != "" && p != "0" {
		return p
	}
	return ""
}
