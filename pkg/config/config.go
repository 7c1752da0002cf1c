package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Overpass  OverpassConfig
	OTEL      OTELConfig
	Assistant AssistantConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string
	Port        int
	Environment string
}

// DatabaseConfig holds the facility directory database configuration.
// The directory is an optional alternate data source for the hospital
// locator; the service runs without it.
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// OverpassConfig holds the OpenStreetMap Overpass API configuration
type OverpassConfig struct {
	Endpoint       string
	TimeoutSeconds int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// AssistantConfig holds the risk-assessment application settings loaded from
// an optional YAML file. Every field has a built-in default so a missing file
// never blocks startup.
type AssistantConfig struct {
	Thresholds        RiskThresholds                `mapstructure:"risk_thresholds"`
	Classifiers       map[string]ClassifierConfig   `mapstructure:"classifiers"`
	SpecialtyKeywords map[string][]string           `mapstructure:"specialty_keywords"`
	EmergencyContacts []EmergencyContact            `mapstructure:"emergency_contacts"`
}

// ClassifierConfig describes where a condition's trained classifier lives.
// Kind is "logistic" (local JSON coefficient artifact) or "remote" (HTTP
// inference service).
type ClassifierConfig struct {
	Kind string `mapstructure:"kind"`
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url"`
}

// EmergencyContact is a recipient for SOS alerts
type EmergencyContact struct {
	Name  string `mapstructure:"name"`
	Phone string `mapstructure:"phone"`
	Email string `mapstructure:"email"`
}

// ZoneBounds is an inclusive [Low, High] percentage band
type ZoneBounds struct {
	Low  float64 `mapstructure:"low"`
	High float64 `mapstructure:"high"`
}

// RiskThresholds holds the 3-band zone bounds. Bounds are contiguous and
// cover [0,100] in the default scheme.
type RiskThresholds struct {
	Green  ZoneBounds `mapstructure:"green"`
	Yellow ZoneBounds `mapstructure:"yellow"`
	Red    ZoneBounds `mapstructure:"red"`
}

// DefaultRiskThresholds returns the built-in 30/70 split
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{
		Green:  ZoneBounds{Low: 0, High: 30},
		Yellow: ZoneBounds{Low: 31, High: 70},
		Red:    ZoneBounds{Low: 71, High: 100},
	}
}

// DefaultClassifiers returns the built-in classifier artifact table
func DefaultClassifiers() map[string]ClassifierConfig {
	return map[string]ClassifierConfig{
		"diabetes": {Kind: "logistic", Path: "models/diabetes.json"},
		"heart":    {Kind: "logistic", Path: "models/heart.json"},
		"kidney":   {Kind: "logistic", Path: "models/kidney.json"},
	}
}

// DefaultSpecialtyKeywords returns the condition-to-specialty lookup used by
// the hospital locator's relevance filter.
func DefaultSpecialtyKeywords() map[string][]string {
	return map[string][]string{
		"diabetes": {"endocrinology", "diabetes", "internal medicine"},
		"heart":    {"cardiology", "cardiac", "heart"},
		"kidney":   {"nephrology", "kidney", "dialysis"},
	}
}

// Load loads configuration from environment variables, then merges the
// optional assistant YAML file (path from ASSISTANT_CONFIG).
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DIRECTORY_DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "patient_assistant"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Overpass: OverpassConfig{
			Endpoint:       getEnv("OVERPASS_ENDPOINT", "https://overpass-api.de/api/interpreter"),
			TimeoutSeconds: getEnvAsInt("OVERPASS_TIMEOUT_SECONDS", 30),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "patient-assistant"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	assistant, err := LoadAssistant(getEnv("ASSISTANT_CONFIG", "config/assistant.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.Assistant = *assistant

	return cfg, nil
}

// LoadAssistant reads the assistant YAML file. A missing file yields the
// built-in defaults; a present but unparseable file is an error so a typo
// does not silently fall back.
func LoadAssistant(path string) (*AssistantConfig, error) {
	cfg := &AssistantConfig{
		Thresholds:        DefaultRiskThresholds(),
		Classifiers:       DefaultClassifiers(),
		SpecialtyKeywords: DefaultSpecialtyKeywords(),
	}

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read assistant config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse assistant config %s: %w", path, err)
	}

	// Partial files keep defaults for whatever they omit.
	if len(cfg.Classifiers) == 0 {
		cfg.Classifiers = DefaultClassifiers()
	}
	if len(cfg.SpecialtyKeywords) == 0 {
		cfg.SpecialtyKeywords = DefaultSpecialtyKeywords()
	}
	if cfg.Thresholds == (RiskThresholds{}) {
		cfg.Thresholds = DefaultRiskThresholds()
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
