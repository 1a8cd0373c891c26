package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// AIConfig configures the Gemini-backed insight service. An empty APIKey
// disables the external client and the service runs on fallbacks only.
type AIConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	BulkDelayMS int    `mapstructure:"bulk_delay_ms"`
}

// BulkDelay returns the inter-item pause for bulk categorization.
func (c AIConfig) BulkDelay() time.Duration {
	if c.BulkDelayMS < 0 {
		return 0
	}
	return time.Duration(c.BulkDelayMS) * time.Millisecond
}

// InsightsConfig holds the currency-unit-specific thresholds used by the
// deterministic fallback summaries.
type InsightsConfig struct {
	GoodThreshold     float64 `mapstructure:"good_threshold"`
	AverageThreshold  float64 `mapstructure:"average_threshold"`
	HighSpendingAlert float64 `mapstructure:"high_spending_alert"`
}

type AppConfig struct {
	PageSize    int `mapstructure:"page_size"`
	MaxPageSize int `mapstructure:"max_page_size"`
	RecentLimit int `mapstructure:"recent_limit"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	AI       AIConfig       `mapstructure:"ai"`
	Insights InsightsConfig `mapstructure:"insights"`
	App      AppConfig      `mapstructure:"app"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. SET_SERVER_PORT=9000
		v.SetEnvPrefix("SET") // smart expense tracker
		v.AutomaticEnv()
		// the Gemini key is conventionally passed via GEMINI_API_KEY
		_ = v.BindEnv("ai.api_key", "GEMINI_API_KEY")

		setDefaults(v)

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("ai.model", "gemini-pro")
	v.SetDefault("ai.bulk_delay_ms", 100)
	v.SetDefault("insights.good_threshold", 20000)
	v.SetDefault("insights.average_threshold", 40000)
	v.SetDefault("insights.high_spending_alert", 50000)
	v.SetDefault("app.page_size", 10)
	v.SetDefault("app.max_page_size", 100)
	v.SetDefault("app.recent_limit", 10)
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
