package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Store         StoreConfig        `mapstructure:"store"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Providers     ProvidersConfig    `mapstructure:"providers"`
	AI            AIConfig           `mapstructure:"ai"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds settings for the public API server.
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	RequestTimeout int `mapstructure:"request_timeout"` // milliseconds
}

// StoreConfig holds settings for the hosted store API and the client
// that talks to it.
type StoreConfig struct {
	Port    int    `mapstructure:"port"`     // storeapi listen port
	BaseURL string `mapstructure:"base_url"` // remote store client target
	Timeout int    `mapstructure:"timeout"`  // milliseconds, per call
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// --- External Listing Providers ---

type ProvidersConfig struct {
	SerpAPI SerpAPIConfig `mapstructure:"serpapi"`
	Adzuna  AdzunaConfig  `mapstructure:"adzuna"`
}

type SerpAPIConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	PageBudget int    `mapstructure:"page_budget"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

type AdzunaConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	AppID          string `mapstructure:"app_id"`
	AppKey         string `mapstructure:"app_key"`
	Country        string `mapstructure:"country"`
	ResultsPerPage int    `mapstructure:"results_per_page"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds
}

// --- AI / Notifications ---

type AIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
