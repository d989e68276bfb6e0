package upcitemdb

import (
	"testing"

	"github.com/scanlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToProduct(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantName  string
		wantPrice string
		wantImage string
	}{
		{
			name: "offer price takes priority over lowest recorded",
			body: `{"total": 1, "items": [{
				"title": "Widget",
				"images": ["http://x/1.jpg"],
				"offers": [{"merchant": "Shop", "price": 4.49}],
				"lowest_recorded_price": 2.99
			}]}`,
			wantName:  "Widget",
			wantPrice: "4.49",
			wantImage: "http://x/1.jpg",
		},
		{
			name: "falls back to lowest recorded price",
			body: `{"total": 1, "items": [{
				"title": "Widget",
				"offers": [],
				"lowest_recorded_price": 2.99
			}]}`,
			wantName:  "Widget",
			wantPrice: "2.99",
		},
		{
			name: "skips empty image entries",
			body: `{"total": 1, "items": [{
				"title": "Widget",
				"images": ["", "http://x/2.jpg"]
			}]}`,
			wantName:  "Widget",
			wantImage: "http://x/2.jpg",
		},
		{
			name: "zero offer price is not a price",
			body: `{"total": 1, "items": [{
				"title": "Widget",
				"offers": [{"merchant": "Shop", "price": 0}]
			}]}`,
			wantName:  "Widget",
			wantPrice: "",
		},
		{
			name: "whitespace is trimmed",
			body: `{"total": 1, "items": [{
				"title": "  Widget  ",
				"brand": " Acme "
			}]}`,
			wantName: "Widget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := mapToProduct("850028009338", []byte(tt.body))

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, product.Name)
			assert.Equal(t, tt.wantPrice, product.Price)
			assert.Equal(t, tt.wantImage, product.ImageURL)
			assert.Equal(t, "850028009338", product.Barcode)
		})
	}
}

func TestMapToProduct_NoItems(t *testing.T) {
	_, err := mapToProduct("12345678", []byte(`{"total": 0, "items": []}`))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMapToProduct_UndecodableBody(t *testing.T) {
	_, err := mapToProduct("12345678", []byte(`<html>gateway error</html>`))
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
