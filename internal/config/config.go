package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	API       APIConfig       `yaml:"api"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Drafts    DraftsConfig    `yaml:"drafts"`
	Charging  ChargingConfig  `yaml:"charging"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Mock      MockConfig      `yaml:"mock"`
}

// APIConfig contains settlement service connection settings
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// TelemetryConfig contains GPS telemetry websocket settings
type TelemetryConfig struct {
	URL                  string `yaml:"url"`
	Origin               string `yaml:"origin"`
	InitialBackoffMillis int    `yaml:"initial_backoff_ms"`
	MaxBackoffSeconds    int    `yaml:"max_backoff_seconds"`
	HealthySeconds       int    `yaml:"healthy_seconds"`
}

// DraftsConfig contains return workflow persistence settings
type DraftsConfig struct {
	Driver         string `yaml:"driver"` // "sqlite", "postgres" or "memory"
	DSN            string `yaml:"dsn"`
	RetentionHours int    `yaml:"retention_hours"`
}

// ChargingConfig contains charging screen settings
type ChargingConfig struct {
	BatteryCapacityKwh float64 `yaml:"battery_capacity_kwh"`
}

// SendGridConfig contains receipt email settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PurgeStaleDrafts string `yaml:"purge_stale_drafts"`
	ReportOpenDrafts string `yaml:"report_open_drafts"`
}

// MockConfig contains settings for the local settlement service used in development
type MockConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	JWTSecret string `yaml:"jwt_secret"`
	UploadDir string `yaml:"upload_dir"`
	BaseURL   string `yaml:"base_url"`
}

// Load reads configuration from a YAML file. An empty path skips the file and
// builds the configuration from defaults and the environment only.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// API
	if val := os.Getenv("API_BASE_URL"); val != "" {
		c.API.BaseURL = val
	}
	if val := os.Getenv("API_TIMEOUT_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.API.TimeoutSeconds)
	}

	// Telemetry
	if val := os.Getenv("TELEMETRY_URL"); val != "" {
		c.Telemetry.URL = val
	}

	// Drafts
	if val := os.Getenv("DRAFT_DRIVER"); val != "" {
		c.Drafts.Driver = val
	}
	if val := os.Getenv("DRAFT_DSN"); val != "" {
		c.Drafts.DSN = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	// Mock server
	if val := os.Getenv("MOCK_JWT_SECRET"); val != "" {
		c.Mock.JWTSecret = val
	}
	if val := os.Getenv("MOCK_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Mock.Port)
	}
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Mock.UploadDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api base url must be http or https: %s", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid api timeout: %d", c.API.TimeoutSeconds)
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}

	// Telemetry defaults
	if c.Telemetry.InitialBackoffMillis == 0 {
		c.Telemetry.InitialBackoffMillis = 1000
	}
	if c.Telemetry.MaxBackoffSeconds == 0 {
		c.Telemetry.MaxBackoffSeconds = 30
	}
	if c.Telemetry.HealthySeconds == 0 {
		c.Telemetry.HealthySeconds = 60
	}
	if c.Telemetry.Origin == "" {
		c.Telemetry.Origin = "http://localhost/"
	}

	// Drafts
	switch c.Drafts.Driver {
	case "":
		c.Drafts.Driver = "sqlite"
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported drafts driver: %s", c.Drafts.Driver)
	}
	if c.Drafts.DSN == "" && c.Drafts.Driver == "sqlite" {
		c.Drafts.DSN = "./data/drafts.db"
	}
	if c.Drafts.DSN == "" && c.Drafts.Driver == "postgres" {
		return fmt.Errorf("drafts dsn is required for postgres")
	}
	if c.Drafts.RetentionHours == 0 {
		c.Drafts.RetentionHours = 72
	}

	if c.Charging.BatteryCapacityKwh < 0 {
		return fmt.Errorf("invalid battery capacity: %v", c.Charging.BatteryCapacityKwh)
	}
	if c.Charging.BatteryCapacityKwh == 0 {
		c.Charging.BatteryCapacityKwh = 5
	}

	if c.SendGrid.FromName == "" {
		c.SendGrid.FromName = "EV Rental"
	}

	// Scheduler defaults
	if c.Scheduler.PurgeStaleDrafts == "" {
		c.Scheduler.PurgeStaleDrafts = "0 0 * * * *" // hourly
	}
	if c.Scheduler.ReportOpenDrafts == "" {
		c.Scheduler.ReportOpenDrafts = "0 */15 * * * *"
	}

	// Mock server defaults
	if c.Mock.Host == "" {
		c.Mock.Host = "localhost"
	}
	if c.Mock.Port == 0 {
		c.Mock.Port = 8088
	}
	if c.Mock.Port < 0 || c.Mock.Port > 65535 {
		return fmt.Errorf("invalid mock server port: %d", c.Mock.Port)
	}
	if c.Mock.UploadDir == "" {
		c.Mock.UploadDir = "./uploads"
	}

	return nil
}

// Timeout returns the per-request API timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Retention returns how long an untouched return draft is kept
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Drafts.RetentionHours) * time.Hour
}

// GetMockAddress returns the listen address of the local settlement service
func (c *Config) GetMockAddress() string {
	return fmt.Sprintf("%s:%d", c.Mock.Host, c.Mock.Port)
}
