package config

import (
	"strings"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Helius HeliusConfig `mapstructure:"helius"`
	Whale  WhaleConfig  `mapstructure:"whale"`
	NATS   NATSConfig   `mapstructure:"nats"`
}

// AppConfig represents application-specific configuration
type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	HTTPPort int    `mapstructure:"http_port"`
}

// HeliusConfig represents the upstream Helius API configuration. An empty
// APIKey switches the service to the static mock provider.
type HeliusConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	RPCURL  string        `mapstructure:"rpc_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WhaleConfig represents whale qualification and pattern thresholds
type WhaleConfig struct {
	MinWhaleHoldingsUsd float64       `mapstructure:"min_whale_holdings_usd"`
	MinMovementUsd      float64       `mapstructure:"min_movement_usd"`
	PatternWindow       time.Duration `mapstructure:"pattern_window"`
	MinPatternTxCount   int           `mapstructure:"min_pattern_tx_count"`
}

// NATSConfig represents the movement event publisher configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	Enabled        bool          `mapstructure:"enabled"`
}

// Thresholds converts the config section into the domain threshold set
func (w WhaleConfig) Thresholds() entity.WhaleConfig {
	return entity.WhaleConfig{
		MinWhaleHoldingsUsd: w.MinWhaleHoldingsUsd,
		MinMovementUsd:      w.MinMovementUsd,
		PatternWindow:       w.PatternWindow,
		MinPatternTxCount:   w.MinPatternTxCount,
	}
}

// Load loads configuration from environment variables and files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/whalescope")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	defaults := entity.DefaultWhaleConfig()

	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.http_port", 8080)

	viper.SetDefault("helius.api_key", "")
	viper.SetDefault("helius.base_url", "https://api.helius.xyz")
	viper.SetDefault("helius.rpc_url", "https://mainnet.helius-rpc.com")
	viper.SetDefault("helius.timeout", "15s")

	viper.SetDefault("whale.min_whale_holdings_usd", defaults.MinWhaleHoldingsUsd)
	viper.SetDefault("whale.min_movement_usd", defaults.MinMovementUsd)
	viper.SetDefault("whale.pattern_window", defaults.PatternWindow)
	viper.SetDefault("whale.min_pattern_tx_count", defaults.MinPatternTxCount)

	viper.SetDefault("nats.url", "nats://localhost:4222")
	viper.SetDefault("nats.subject_prefix", "whalescope")
	viper.SetDefault("nats.connect_timeout", "10s")
	viper.SetDefault("nats.reconnect_delay", "2s")
	viper.SetDefault("nats.enabled", false)

	viper.BindEnv("helius.api_key", "HELIUS_API_KEY")
	viper.BindEnv("nats.url", "NATS_URL")
}
