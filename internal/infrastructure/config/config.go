package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	OCI       OCIConfig       `yaml:"oci"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
	Inventory InventoryConfig `yaml:"inventory"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port              int           `yaml:"port" env:"INVENTORY_SERVER_PORT" validate:"min=1,max=65535"`
	Host              string        `yaml:"host" env:"INVENTORY_SERVER_HOST" validate:"required"`
	ReadTimeout       time.Duration `yaml:"read_timeout" env:"INVENTORY_SERVER_READ_TIMEOUT" validate:"min=0"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env:"INVENTORY_SERVER_WRITE_TIMEOUT" validate:"min=0"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" env:"INVENTORY_SERVER_IDLE_TIMEOUT" validate:"min=0"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"INVENTORY_SERVER_SHUTDOWN_TIMEOUT" validate:"min=0"`
	AllowedOrigins    []string      `yaml:"allowed_origins" env:"INVENTORY_SERVER_ALLOWED_ORIGINS"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"INVENTORY_SERVER_REQUESTS_PER_SECOND" validate:"min=0"`
	Burst             int           `yaml:"burst" env:"INVENTORY_SERVER_BURST" validate:"min=0"`
}

// Address returns the listen address
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// OCIConfig selects the credentials of the live provider. Either a config
// file and profile, or the four discrete fields, are used.
type OCIConfig struct {
	ConfigFile    string `yaml:"config_file" env:"INVENTORY_OCI_CONFIG_FILE"`
	Profile       string `yaml:"profile" env:"INVENTORY_OCI_PROFILE"`
	TenancyID     string `yaml:"tenancy_id" env:"INVENTORY_OCI_TENANCY_ID"`
	UserID        string `yaml:"user_id" env:"INVENTORY_OCI_USER_ID"`
	Fingerprint   string `yaml:"fingerprint" env:"INVENTORY_OCI_FINGERPRINT"`
	KeyFile       string `yaml:"key_file" env:"INVENTORY_OCI_KEY_FILE"`
	KeyPassphrase string `yaml:"key_passphrase" env:"INVENTORY_OCI_KEY_PASSPHRASE"`
	Region        string `yaml:"region" env:"INVENTORY_OCI_REGION"`
	UseMock       bool   `yaml:"use_mock" env:"INVENTORY_OCI_USE_MOCK"`
}

// CacheConfig contains cache-related configuration
type CacheConfig struct {
	Type          string        `yaml:"type" env:"INVENTORY_CACHE_TYPE" validate:"oneof=redis memory none"`
	RedisAddr     string        `yaml:"redis_addr" env:"INVENTORY_CACHE_REDIS_ADDR" validate:"required_if=Type redis"`
	RedisPassword string        `yaml:"redis_password" env:"INVENTORY_CACHE_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"INVENTORY_CACHE_REDIS_DB" validate:"min=0,max=15"`
	DialTimeout   time.Duration `yaml:"dial_timeout" env:"INVENTORY_CACHE_DIAL_TIMEOUT" validate:"min=0"`
	ReadTimeout   time.Duration `yaml:"read_timeout" env:"INVENTORY_CACHE_READ_TIMEOUT" validate:"min=0"`
	WriteTimeout  time.Duration `yaml:"write_timeout" env:"INVENTORY_CACHE_WRITE_TIMEOUT" validate:"min=0"`
	KeyPrefix     string        `yaml:"key_prefix" env:"INVENTORY_CACHE_KEY_PREFIX"`
	MaxEntries    int           `yaml:"max_entries" env:"INVENTORY_CACHE_MAX_ENTRIES" validate:"min=0"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"INVENTORY_LOGGING_LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"INVENTORY_LOGGING_FORMAT" validate:"oneof=json console"`
}

// InventoryConfig bounds the aggregation fan-out and every remote call
type InventoryConfig struct {
	MaxConcurrency    int           `yaml:"max_concurrency" env:"INVENTORY_MAX_CONCURRENCY" validate:"min=1,max=100"`
	CallTimeout       time.Duration `yaml:"call_timeout" env:"INVENTORY_CALL_TIMEOUT" validate:"min=1s,max=5m"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"INVENTORY_REQUESTS_PER_SECOND" validate:"min=0"`
	Burst             int           `yaml:"burst" env:"INVENTORY_BURST" validate:"min=0"`
}

// TracingConfig configures the OTLP span exporter
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" env:"INVENTORY_TRACING_ENABLED"`
	Endpoint   string  `yaml:"endpoint" env:"INVENTORY_TRACING_ENDPOINT"`
	Insecure   bool    `yaml:"insecure" env:"INVENTORY_TRACING_INSECURE"`
	SampleRate float64 `yaml:"sample_rate" env:"INVENTORY_TRACING_SAMPLE_RATE" validate:"min=0,max=1"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Load from file if provided
	if configPath != "" {
		if err := loadFromFile(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnvironment(config); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(configPath string, config *Config) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// loadFromEnvironment applies INVENTORY_* variables. The plain OCI_*
// variables are honored as a fallback for the credential fields.
func loadFromEnvironment(config *Config) error {
	var errs []string
	str := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := os.Getenv(key); v != "" {
				*dst = v
				return
			}
		}
	}
	integer := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = n
		}
	}
	float := func(dst *float64, key string) {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = f
		}
	}
	boolean := func(dst *bool, key string) {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = b
		}
	}
	duration := func(dst *time.Duration, key string) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = d
		}
	}

	// Server config
	integer(&config.Server.Port, "INVENTORY_SERVER_PORT")
	str(&config.Server.Host, "INVENTORY_SERVER_HOST")
	duration(&config.Server.ReadTimeout, "INVENTORY_SERVER_READ_TIMEOUT")
	duration(&config.Server.WriteTimeout, "INVENTORY_SERVER_WRITE_TIMEOUT")
	duration(&config.Server.IdleTimeout, "INVENTORY_SERVER_IDLE_TIMEOUT")
	duration(&config.Server.ShutdownTimeout, "INVENTORY_SERVER_SHUTDOWN_TIMEOUT")
	if origins := os.Getenv("INVENTORY_SERVER_ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = splitList(origins)
	}
	float(&config.Server.RequestsPerSecond, "INVENTORY_SERVER_REQUESTS_PER_SECOND")
	integer(&config.Server.Burst, "INVENTORY_SERVER_BURST")

	// OCI config
	str(&config.OCI.ConfigFile, "INVENTORY_OCI_CONFIG_FILE", "OCI_CONFIG_FILE")
	str(&config.OCI.Profile, "INVENTORY_OCI_PROFILE", "OCI_PROFILE")
	str(&config.OCI.TenancyID, "INVENTORY_OCI_TENANCY_ID", "OCI_TENANCY_ID")
	str(&config.OCI.UserID, "INVENTORY_OCI_USER_ID", "OCI_USER_ID")
	str(&config.OCI.Fingerprint, "INVENTORY_OCI_FINGERPRINT", "OCI_FINGERPRINT")
	str(&config.OCI.KeyFile, "INVENTORY_OCI_KEY_FILE", "OCI_KEY_FILE")
	str(&config.OCI.KeyPassphrase, "INVENTORY_OCI_KEY_PASSPHRASE")
	str(&config.OCI.Region, "INVENTORY_OCI_REGION", "OCI_REGION")
	boolean(&config.OCI.UseMock, "INVENTORY_OCI_USE_MOCK")

	// Cache config
	str(&config.Cache.Type, "INVENTORY_CACHE_TYPE")
	str(&config.Cache.RedisAddr, "INVENTORY_CACHE_REDIS_ADDR")
	str(&config.Cache.RedisPassword, "INVENTORY_CACHE_REDIS_PASSWORD")
	integer(&config.Cache.RedisDB, "INVENTORY_CACHE_REDIS_DB")
	duration(&config.Cache.DialTimeout, "INVENTORY_CACHE_DIAL_TIMEOUT")
	duration(&config.Cache.ReadTimeout, "INVENTORY_CACHE_READ_TIMEOUT")
	duration(&config.Cache.WriteTimeout, "INVENTORY_CACHE_WRITE_TIMEOUT")
	str(&config.Cache.KeyPrefix, "INVENTORY_CACHE_KEY_PREFIX")
	integer(&config.Cache.MaxEntries, "INVENTORY_CACHE_MAX_ENTRIES")

	// Logging config
	str(&config.Logging.Level, "INVENTORY_LOGGING_LEVEL")
	str(&config.Logging.Format, "INVENTORY_LOGGING_FORMAT")

	// Inventory config
	integer(&config.Inventory.MaxConcurrency, "INVENTORY_MAX_CONCURRENCY")
	duration(&config.Inventory.CallTimeout, "INVENTORY_CALL_TIMEOUT")
	float(&config.Inventory.RequestsPerSecond, "INVENTORY_REQUESTS_PER_SECOND")
	integer(&config.Inventory.Burst, "INVENTORY_BURST")

	// Tracing config
	boolean(&config.Tracing.Enabled, "INVENTORY_TRACING_ENABLED")
	str(&config.Tracing.Endpoint, "INVENTORY_TRACING_ENDPOINT")
	boolean(&config.Tracing.Insecure, "INVENTORY_TRACING_INSECURE")
	float(&config.Tracing.SampleRate, "INVENTORY_TRACING_SAMPLE_RATE")

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment values: %s", strings.Join(errs, "; "))
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(config *Config) {
	// Server defaults
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 5 * time.Minute
	}
	if config.Server.IdleTimeout == 0 {
		config.Server.IdleTimeout = 60 * time.Second
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 15 * time.Second
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = []string{"*"}
	}
	if config.Server.RequestsPerSecond == 0 {
		config.Server.RequestsPerSecond = 50
	}
	if config.Server.Burst == 0 {
		config.Server.Burst = 100
	}

	// OCI defaults
	if config.OCI.Profile == "" {
		config.OCI.Profile = "DEFAULT"
	}

	// Cache defaults
	if config.Cache.Type == "" {
		config.Cache.Type = "memory"
	}
	if config.Cache.RedisAddr == "" && config.Cache.Type == "redis" {
		config.Cache.RedisAddr = "localhost:6379"
	}
	if config.Cache.DialTimeout == 0 {
		config.Cache.DialTimeout = 5 * time.Second
	}
	if config.Cache.ReadTimeout == 0 {
		config.Cache.ReadTimeout = 3 * time.Second
	}
	if config.Cache.WriteTimeout == 0 {
		config.Cache.WriteTimeout = 3 * time.Second
	}
	if config.Cache.MaxEntries == 0 {
		config.Cache.MaxEntries = 10000
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	config.Logging.Level = strings.ToLower(config.Logging.Level)
	if config.Logging.Format == "" {
		config.Logging.Format = "json"
	}

	// Inventory defaults
	if config.Inventory.MaxConcurrency == 0 {
		config.Inventory.MaxConcurrency = 10
	}
	if config.Inventory.CallTimeout == 0 {
		config.Inventory.CallTimeout = 30 * time.Second
	}
	if config.Inventory.RequestsPerSecond == 0 {
		config.Inventory.RequestsPerSecond = 10
	}
	if config.Inventory.Burst == 0 {
		config.Inventory.Burst = 20
	}

	// Tracing defaults
	if config.Tracing.SampleRate == 0 {
		config.Tracing.SampleRate = 1
	}
}

// HasDiscreteCredentials reports whether the OCI credentials are given
// field by field instead of through a config file
func (o OCIConfig) HasDiscreteCredentials() bool {
	return o.TenancyID != "" && o.UserID != "" && o.Fingerprint != "" && o.KeyFile != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
