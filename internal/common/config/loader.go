package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like PROVIDERS_SERPAPI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overrides, merged on top when present.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from a few likely locations so the binaries can
// be started from the repo root or from their cmd directory.
func loadEnvFile() {
	candidates := []string{
		".env",
		filepath.Join("..", "..", ".env"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "hirely"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30000
	}

	// Store defaults: every remote store call is bounded by this timeout.
	if cfg.Store.Port == 0 {
		cfg.Store.Port = 8090
	}
	if cfg.Store.BaseURL == "" {
		cfg.Store.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Store.Port)
	}
	if cfg.Store.Timeout == 0 {
		cfg.Store.Timeout = 8000
	}

	// Database defaults
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Redis.KeyPrefix == "" {
		cfg.Database.Redis.KeyPrefix = "hirely:cache"
	}

	// Provider defaults
	if cfg.Providers.SerpAPI.BaseURL == "" {
		cfg.Providers.SerpAPI.BaseURL = "https://serpapi.com/search"
	}
	if cfg.Providers.SerpAPI.PageBudget == 0 {
		cfg.Providers.SerpAPI.PageBudget = 3
	}
	if cfg.Providers.SerpAPI.Timeout == 0 {
		cfg.Providers.SerpAPI.Timeout = 10000
	}
	if cfg.Providers.Adzuna.BaseURL == "" {
		cfg.Providers.Adzuna.BaseURL = "https://api.adzuna.com/v1/api/jobs"
	}
	if cfg.Providers.Adzuna.Country == "" {
		cfg.Providers.Adzuna.Country = "in"
	}
	if cfg.Providers.Adzuna.ResultsPerPage == 0 {
		cfg.Providers.Adzuna.ResultsPerPage = 20
	}
	if cfg.Providers.Adzuna.Timeout == 0 {
		cfg.Providers.Adzuna.Timeout = 10000
	}

	// AI defaults
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.0-flash"
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 60000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.Store.BaseURL == "" {
		return fmt.Errorf("store.base_url is required")
	}
	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}
	return nil
}

// ValidateStoreAPI validates the fields the storeapi binary requires on
// top of the shared config.
func ValidateStoreAPI(cfg *Config) error {
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
