package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/scanlens/backend/config"
	httpDelivery "github.com/scanlens/backend/internal/delivery/http"
	"github.com/scanlens/backend/internal/domain"
	"github.com/scanlens/backend/internal/infrastructure/barcodelookup"
	"github.com/scanlens/backend/internal/infrastructure/cache"
	"github.com/scanlens/backend/internal/infrastructure/openfoodfacts"
	"github.com/scanlens/backend/internal/infrastructure/upcitemdb"
	"github.com/scanlens/backend/internal/usecase"
)

func main() {
	// Load .env if present, before viper reads the environment
	if err := godotenv.Load(); err == nil {
		log.Printf(".env file loaded")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ScanLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Source chain: %v", cfg.Sources.Order)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Resolver.CacheTTL)

	sources, err := buildSources(cfg)
	if err != nil {
		log.Fatalf("Failed to build source chain: %v", err)
	}

	// Initialize usecase layer
	resolverService := usecase.NewResolverService(
		sources,
		memoryCache,
		usecase.ResolverServiceConfig{
			TimeoutPerCall: cfg.Resolver.TimeoutPerCall,
			RetryAttempts:  cfg.Resolver.RetryAttempts,
			RetryBaseDelay: cfg.Resolver.RetryBaseDelay,
			CacheTTL:       cfg.Resolver.CacheTTL,
		},
	)

	log.Printf("Resolver: timeout=%s, retries=%d, backoff base=%s",
		cfg.Resolver.TimeoutPerCall,
		cfg.Resolver.RetryAttempts,
		cfg.Resolver.RetryBaseDelay)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(resolverService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildSources constructs adapters in the configured priority order.
// Config validation already guaranteed credentials for keyed sources.
func buildSources(cfg *config.Config) ([]domain.SourceAdapter, error) {
	sources := make([]domain.SourceAdapter, 0, len(cfg.Sources.Order))

	for _, name := range cfg.Sources.Order {
		switch name {
		case upcitemdb.SourceName:
			sources = append(sources, upcitemdb.NewClient(cfg.UPCItemDB.APIKey, cfg.UPCItemDB.BaseURL))
		case openfoodfacts.SourceName:
			sources = append(sources, openfoodfacts.NewClient(cfg.OpenFoodFacts.BaseURL))
		case barcodelookup.SourceName:
			sources = append(sources, barcodelookup.NewClient(cfg.BarcodeLookup.APIKey, cfg.BarcodeLookup.BaseURL))
		default:
			return nil, fmt.Errorf("unknown data source %q", name)
		}
	}

	return sources, nil
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
