package barcodelookup

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
const SourceName = "barcodelookup"

// Client handles communication with the Barcode Lookup products API.
// It sits last in the default chain: quota on this source is the most
// expensive, so it only sees barcodes the free sources could not fill.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Barcode Lookup API client
func NewClient(apiKey, baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(1), 2)

	return &Client{
		httpClient:  &http.Client{},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// Name implements domain.SourceAdapter
func (c *Client) Name() string { return SourceName }

// Lookup fetches the product for a barcode and normalizes it into the
// canonical shape.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.CanonicalProduct, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: barcodelookup API key not configured", domain.ErrMissingCredentials)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorFromTransport(err), err)
	}

	params := url.Values{}
	params.Add("barcode", barcode)
	params.Add("formatted", "y")
	params.Add("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/v3/products?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

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
