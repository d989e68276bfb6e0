package domain

import (
	"context"
	"time"
)

// SourceAdapter is the per-provider component translating one data source's
// response schema into the canonical product shape. Lookup issues a single
// attempt; retry and fallback policy live in the resolver, not the adapter.
type SourceAdapter interface {
	// Name is the stable identifier used in logs and CanonicalProduct.Source.
	Name() string

	// Lookup fetches the product for a validated barcode. Failures are
	// always translated into the domain error taxonomy before returning.
	Lookup(ctx context.Context, barcode string) (*CanonicalProduct, error)
}

// ProductCache defines the interface for caching resolved products
type ProductCache interface {
	Get(ctx context.Context, barcode string) (*CanonicalProduct, error)
	Set(ctx context.Context, barcode string, product *CanonicalProduct, ttl time.Duration) error
	Delete(ctx context.Context, barcode string) error
	Exists(ctx context.Context, barcode string) (bool, error)
}
