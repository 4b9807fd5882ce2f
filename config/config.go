package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	// Hive Engine contracts API endpoints, tried in order
	EngineEndpoints []string
	// CORS relay prefix used when every direct endpoint fails
	CORSProxy string
	// Hive JSON-RPC node used for transaction lookups
	HiveAPIURL string

	// Signing backends
	KeychainAgentURL string
	HivesignerURL    string

	// Token bought with the SWAP.HIVE proceeds of leg 1
	TargetSymbol string
	// Sentinel symbol routed to the external-chain flow instead of the market
	ExternalSymbol string
	// Tokens offered for the sell leg
	Tokens []string

	// Path of the pending-swap file; empty means the home directory default
	StorePath string

	// Payout polling
	SettleDelay     time.Duration
	PollInterval    time.Duration
	MaxPollAttempts int
	BuyCooldown     time.Duration

	// Transaction-to-block-height resolution
	AnchorMaxAttempts int
	AnchorDelay       time.Duration
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".peake-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("engine_endpoints", []string{
		"https://api.hive-engine.com/rpc/contracts",
		"https://engine.rishipanthee.com/contracts",
		"https://herpc.dtools.dev/contracts",
	})
	viper.SetDefault("cors_proxy", "https://corsproxy.io/?")
	viper.SetDefault("hive_api_url", "https://api.hive.blog")
	viper.SetDefault("keychain_agent_url", "http://localhost:4250/sign")
	viper.SetDefault("hivesigner_url", "https://hivesigner.com/sign/tx")
	viper.SetDefault("target_symbol", "PEK")
	viper.SetDefault("external_symbol", "SCALA")
	viper.SetDefault("tokens", []string{"BEE", "LEO", "POB", "SPS", "PEK"})
	viper.SetDefault("settle_delay", "7s")
	viper.SetDefault("poll_interval", "2s")
	viper.SetDefault("max_poll_attempts", 90)
	viper.SetDefault("buy_cooldown", "10s")
	viper.SetDefault("anchor_max_attempts", 10)
	viper.SetDefault("anchor_delay", "1s")

	// Read from environment variables
	viper.SetEnvPrefix("PEAKE_SWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		EngineEndpoints:   viper.GetStringSlice("engine_endpoints"),
		CORSProxy:         viper.GetString("cors_proxy"),
		HiveAPIURL:        viper.GetString("hive_api_url"),
		KeychainAgentURL:  viper.GetString("keychain_agent_url"),
		HivesignerURL:     viper.GetString("hivesigner_url"),
		TargetSymbol:      viper.GetString("target_symbol"),
		ExternalSymbol:    viper.GetString("external_symbol"),
		Tokens:            viper.GetStringSlice("tokens"),
		StorePath:         viper.GetString("store_path"),
		SettleDelay:       viper.GetDuration("settle_delay"),
		PollInterval:      viper.GetDuration("poll_interval"),
		MaxPollAttempts:   viper.GetInt("max_poll_attempts"),
		BuyCooldown:       viper.GetDuration("buy_cooldown"),
		AnchorMaxAttempts: viper.GetInt("anchor_max_attempts"),
		AnchorDelay:       viper.GetDuration("anchor_delay"),
	}

	if len(cfg.EngineEndpoints) == 0 {
		return nil, fmt.Errorf("no Hive Engine endpoints configured. Set PEAKE_SWAP_ENGINE_ENDPOINTS or create a .peake-swap.yaml config file")
	}
	if cfg.MaxPollAttempts <= 0 {
		return nil, fmt.Errorf("max_poll_attempts must be greater than 0")
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
