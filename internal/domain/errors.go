package domain

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrEmptyBarcode is returned when the trimmed input is empty
	ErrEmptyBarcode = errors.New("barcode is empty")

	// ErrBarcodeLength is returned when the trimmed input is not 8-14 characters
	ErrBarcodeLength = errors.New("barcode must be 8 to 14 digits")

	// ErrBarcodeNonDigit is returned when the input contains a non-digit character
	ErrBarcodeNonDigit = errors.New("barcode must contain only digits")

	// ErrMissingCredentials is returned when a source requires an API key that is not configured
	ErrMissingCredentials = errors.New("missing API credentials")

	// ErrAuthentication is returned on an upstream 401/403; halts the whole pipeline
	ErrAuthentication = errors.New("authentication with product API failed")

	// ErrRateLimited is returned on an upstream 429; halts the whole pipeline
	ErrRateLimited = errors.New("product API rate limit exceeded")

	// ErrLookupTimeout is returned when a single source call exceeds its deadline
	ErrLookupTimeout = errors.New("product lookup timed out")

	// ErrTransport is returned when the HTTP request itself fails
	ErrTransport = errors.New("network failure reaching product API")

	// ErrUpstream is returned on an upstream 5xx or an undecodable response
	ErrUpstream = errors.New("product API request failed")

	// ErrMalformedRequest is returned on an unexpected upstream 4xx; the
	// request we build is the same for every source, so this is systemic
	ErrMalformedRequest = errors.New("product API rejected the request")

	// ErrProductNotFound is returned when every source was exhausted without sufficient data
	ErrProductNotFound = errors.New("product not found in any data source")

	// ErrCacheMiss is returned when a barcode is not in the cache
	ErrCacheMiss = errors.New("cache miss")
)

// IsValidation reports whether err is one of the barcode validation failures.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyBarcode) ||
		errors.Is(err, ErrBarcodeLength) ||
		errors.Is(err, ErrBarcodeNonDigit)
}

// IsRetryable reports whether err is a transient condition worth retrying
// against the same source.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLookupTimeout) ||
		errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrUpstream)
}

// IsFatal reports whether err is systemic rather than per-source, meaning
// the pipeline must stop instead of consulting further sources.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuthentication) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrMalformedRequest)
}

// ErrorFromStatus translates an upstream HTTP status into the error taxonomy.
// Returns nil for 200.
func ErrorFromStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrProductNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrAuthentication
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return ErrUpstream
	case code >= 400:
		return ErrMalformedRequest
	default:
		return ErrUpstream
	}
}

// ErrorFromTransport translates a failed http.Client.Do into the taxonomy,
// distinguishing a per-call deadline from a plain network failure.
func ErrorFromTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrLookupTimeout
	}
	return ErrTransport
}
