package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/scanlens/backend/internal/domain"
)

// ResolverServiceConfig holds configuration for the resolver service
type ResolverServiceConfig struct {
	// TimeoutPerCall bounds each individual source attempt. A single-source
	// deployment can afford a longer value; with fallbacks in the chain a
	// short one keeps the whole lookup responsive.
	TimeoutPerCall time.Duration
	// RetryAttempts is the number of additional attempts after the first
	// call to a source fails with a transient condition.
	RetryAttempts int
	// RetryBaseDelay is multiplied by the attempt index for linear backoff.
	RetryBaseDelay time.Duration
	CacheTTL       time.Duration
}

// ResolverService resolves a barcode into a canonical product record by
// consulting an ordered chain of source adapters. Sources are queried
// strictly sequentially: speculative parallel calls would burn fallback API
// quota on lookups the primary source can answer.
type ResolverService struct {
	sources        []domain.SourceAdapter
	cache          domain.ProductCache
	timeoutPerCall time.Duration
	retryAttempts  int
	retryBaseDelay time.Duration
	cacheTTL       time.Duration
}

// NewResolverService creates a resolver over the given source priority list.
// The slice order is the fallback order; it is fixed for the life of the
// service. cache may be nil to disable caching.
func NewResolverService(
	sources []domain.SourceAdapter,
	cache domain.ProductCache,
	config ResolverServiceConfig,
) *ResolverService {
	if config.TimeoutPerCall == 0 {
		config.TimeoutPerCall = 15 * time.Second
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 2
	}
	if config.RetryBaseDelay == 0 {
		config.RetryBaseDelay = 500 * time.Millisecond
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 24 * time.Hour
	}

	return &ResolverService{
		sources:        sources,
		cache:          cache,
		timeoutPerCall: config.TimeoutPerCall,
		retryAttempts:  config.RetryAttempts,
		retryBaseDelay: config.RetryBaseDelay,
		cacheTTL:       config.CacheTTL,
	}
}

// Resolve looks up a validated barcode across the source chain.
// Flow: check cache -> walk sources with retry/merge -> finalize -> cache.
// All per-lookup state (retry counters, merge accumulator) is local to the
// call, so concurrent lookups never interact.
func (s *ResolverService) Resolve(ctx context.Context, barcode string) (*domain.CanonicalProduct, error) {
	if barcode == "" {
		return nil, domain.ErrEmptyBarcode
	}

	if cached := s.getFromCache(ctx, barcode); cached != nil {
		return cached, nil
	}

	merged := &domain.CanonicalProduct{Barcode: barcode}
	var lastTransient error

	for _, source := range s.sources {
		record, err := s.lookupWithRetry(ctx, source, barcode)
		if err != nil {
			if domain.IsFatal(err) {
				// Credential and quota problems are systemic, not
				// source-specific; further calls would be wasted.
				return nil, err
			}
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			lastTransient = err
			continue
		}

		if record == nil || !record.Sufficient() {
			// A record with none of name/brand/image is as good as a 404;
			// merging it could smuggle a near-empty result past fallback.
			log.Printf("[resolver] %s returned insufficient data for %s", source.Name(), barcode)
			continue
		}

		merged.Merge(record)
		if merged.Complete() {
			break
		}
	}

	if merged.Sufficient() {
		s.finalize(merged)
		if lastTransient == nil {
			s.setInCache(ctx, barcode, merged)
		}
		return merged, nil
	}

	if lastTransient != nil {
		if errors.Is(lastTransient, domain.ErrLookupTimeout) {
			return nil, fmt.Errorf("%w: no data source answered in time", lastTransient)
		}
		return nil, fmt.Errorf("%w: no data source could be reached", lastTransient)
	}

	return nil, domain.ErrProductNotFound
}

// lookupWithRetry calls one source with a per-call timeout, retrying
// transient failures up to the retry budget with linear backoff.
func (s *ResolverService) lookupWithRetry(
	ctx context.Context,
	source domain.SourceAdapter,
	barcode string,
) (*domain.CanonicalProduct, error) {
	totalAttempts := 1 + s.retryAttempts

	var lastErr error
	for attempt := 1; attempt <= totalAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, domain.ErrorFromTransport(err)
		}

		callCtx, cancel := context.WithTimeout(ctx, s.timeoutPerCall)
		record, err := source.Lookup(callCtx, barcode)
		cancel()

		if err == nil {
			return record, nil
		}
		if !domain.IsRetryable(err) {
			return nil, err
		}

		lastErr = err
		log.Printf("[resolver] %s lookup for %s failed (attempt %d/%d): %v",
			source.Name(), barcode, attempt, totalAttempts, err)
		if attempt < totalAttempts {
			time.Sleep(time.Duration(attempt) * s.retryBaseDelay)
		}
	}

	return nil, lastErr
}

// finalize stamps the legacy identifier aliases and completeness metadata.
// The record is immutable from here on.
func (s *ResolverService) finalize(product *domain.CanonicalProduct) {
	product.GTIN13 = product.Barcode
	product.GTIN14 = product.Barcode
	product.UPC = product.Barcode
	product.ResolvedAt = time.Now()
	applyCompleteness(product)
}

// getFromCache returns a copy of the cached record, or nil on miss.
func (s *ResolverService) getFromCache(ctx context.Context, barcode string) *domain.CanonicalProduct {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, barcode)
	if err != nil || cached == nil {
		return nil
	}
	result := *cached
	result.Source = "cache"
	return &result
}

// setInCache stores a resolved record; cache failures are logged, not fatal.
func (s *ResolverService) setInCache(ctx context.Context, barcode string, product *domain.CanonicalProduct) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, barcode, product, s.cacheTTL); err != nil {
		log.Printf("[resolver] failed to cache %s: %v", barcode, err)
	}
}
