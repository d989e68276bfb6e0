package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Resolver      ResolverConfig
	Sources       SourcesConfig
	UPCItemDB     UPCItemDBConfig     `mapstructure:"upcitemdb"`
	OpenFoodFacts OpenFoodFactsConfig `mapstructure:"openfoodfacts"`
	BarcodeLookup BarcodeLookupConfig `mapstructure:"barcodelookup"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ResolverConfig holds retry/timeout policy for the resolution pipeline
type ResolverConfig struct {
	TimeoutPerCall time.Duration `mapstructure:"timeout_per_call"`
	RetryAttempts  int           `mapstructure:"retry_attempts"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

// SourcesConfig holds the fixed source priority list
type SourcesConfig struct {
	Order []string `mapstructure:"order"`
}

// UPCItemDBConfig holds UPCitemdb API configuration
type UPCItemDBConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// OpenFoodFactsConfig holds Open Food Facts API configuration (keyless)
type OpenFoodFactsConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// BarcodeLookupConfig holds Barcode Lookup API configuration
type BarcodeLookupConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// KnownSources are the adapter names accepted in sources.order.
var KnownSources = []string{"upcitemdb", "openfoodfacts", "barcodelookup"}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scanlens/")

	// Environment variable settings
	v.SetEnvPrefix("SCANLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Resolver defaults: short per-call timeout keeps the full fallback
	// chain responsive on constrained networks
	v.SetDefault("resolver.timeout_per_call", "15s")
	v.SetDefault("resolver.retry_attempts", 2)
	v.SetDefault("resolver.retry_base_delay", "500ms")
	v.SetDefault("resolver.cache_ttl", "24h")

	// Source chain defaults
	v.SetDefault("sources.order", []string{"upcitemdb", "openfoodfacts", "barcodelookup"})
	v.SetDefault("upcitemdb.base_url", "https://api.upcitemdb.com")
	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("barcodelookup.base_url", "https://api.barcodelookup.com")
}

// validate validates the configuration. Credential checks happen here so a
// misconfigured deployment fails at startup instead of on the first lookup.
func validate(config *Config) error {
	if len(config.Sources.Order) == 0 {
		return fmt.Errorf("at least one data source is required in sources.order")
	}

	for _, name := range config.Sources.Order {
		if !isKnownSource(name) {
			return fmt.Errorf("unknown data source %q (known: %s)", name, strings.Join(KnownSources, ", "))
		}

		switch name {
		case "upcitemdb":
			if config.UPCItemDB.APIKey == "" {
				return fmt.Errorf("UPCitemdb user key is required (set SCANLENS_UPCITEMDB_API_KEY)")
			}
		case "barcodelookup":
			if config.BarcodeLookup.APIKey == "" {
				return fmt.Errorf("Barcode Lookup API key is required (set SCANLENS_BARCODELOOKUP_API_KEY)")
			}
		}
	}

	if config.Resolver.RetryAttempts < 0 {
		return fmt.Errorf("resolver.retry_attempts must not be negative")
	}

	return nil
}

// isKnownSource checks a source name against the known adapter names
func isKnownSource(name string) bool {
	for _, known := range KnownSources {
		if known == name {
			return true
		}
	}
	return false
}
