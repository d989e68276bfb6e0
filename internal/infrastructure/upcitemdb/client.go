package upcitemdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/scanlens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// SourceName identifies this adapter in logs and resolved records.
const SourceName = "upcitemdb"

// Client handles communication with the UPCitemdb lookup API.
// It is the primary source in the default chain.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new UPCitemdb API client
func NewClient(apiKey, baseURL string) *Client {
	// UPCitemdb allows 6 lookup calls per minute on the dev plan
	limiter := rate.NewLimiter(rate.Limit(0.1), 3)

	return &Client{
		// No http.Client timeout: the resolver bounds every attempt with a
		// per-call context deadline.
		httpClient:  &http.Client{},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// Name implements domain.SourceAdapter
func (c *Client) Name() string { return SourceName }

// Lookup fetches the product for a barcode and normalizes it into the
// canonical shape. Every failure is translated into the domain taxonomy
// before returning.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.CanonicalProduct, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: upcitemdb user key not configured", domain.ErrMissingCredentials)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorFromTransport(err), err)
	}

	params := url.Values{}
	params.Add("upc", barcode)
	reqURL := fmt.Sprintf("%s/prod/v1/lookup?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("user_key", c.apiKey)
	req.Header.Set("key_type", "3scale")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorFromTransport(err), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorFromTransport(err), err)
	}

	if statusErr := domain.ErrorFromStatus(resp.StatusCode); statusErr != nil {
		return nil, fmt.Errorf("%w (status %d)", statusErr, resp.StatusCode)
	}

	return mapToProduct(barcode, body)
}
