package upcitemdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scanlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-user-key", "https://api.example.com")

	assert.NotNil(t, client)
	assert.Equal(t, "test-user-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.Equal(t, SourceName, client.Name())
}

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prod/v1/lookup", r.URL.Path)
		assert.Equal(t, "850028009338", r.URL.Query().Get("upc"))
		assert.Equal(t, "test-user-key", r.Header.Get("user_key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "OK",
			"total": 1,
			"items": [{
				"ean": "0850028009338",
				"title": "Widget",
				"brand": "Acme",
				"description": "A widget",
				"category": "Widgets",
				"images": ["http://x/1.jpg", "http://x/2.jpg"],
				"offers": [{"merchant": "Shop", "price": 3.99}]
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-user-key", server.URL)

	product, err := client.Lookup(context.Background(), "850028009338")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "850028009338", product.Barcode)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, "Acme", product.Brand)
	assert.Equal(t, "A widget", product.Description)
	assert.Equal(t, "http://x/1.jpg", product.ImageURL)
	assert.Equal(t, "3.99", product.Price)
	assert.Equal(t, SourceName, product.Source)
	assert.NotEmpty(t, product.SourceRaw)
}

func TestLookup_NotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-user-key", server.URL)

	product, err := client.Lookup(context.Background(), "12345678")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLookup_EmptyItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": "OK", "total": 0, "items": []}`))
	}))
	defer server.Close()

	client := NewClient("test-user-key", server.URL)

	_, err := client.Lookup(context.Background(), "12345678")

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLookup_StatusTranslation(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusUnauthorized, domain.ErrAuthentication},
		{http.StatusForbidden, domain.ErrAuthentication},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusBadRequest, domain.ErrMalformedRequest},
		{http.StatusInternalServerError, domain.ErrUpstream},
		{http.StatusBadGateway, domain.ErrUpstream},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		client := NewClient("test-user-key", server.URL)
		_, err := client.Lookup(context.Background(), "12345678")

		assert.ErrorIs(t, err, tt.wantErr, "status %d", tt.status)
		server.Close()
	}
}

func TestLookup_MissingCredentials(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient("", server.URL)

	_, err := client.Lookup(context.Background(), "12345678")

	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	assert.Zero(t, requests, "no network call should be attempted without credentials")
}

func TestLookup_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient("test-user-key", server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Lookup(ctx, "12345678")

	assert.ErrorIs(t, err, domain.ErrLookupTimeout)
}
