package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	RazorpayKeySecret                string `mapstructure:"RAZORPAY_KEY_SECRET"`
	GenerationWebhookURL             string `mapstructure:"GENERATION_WEBHOOK_URL"`
	GenerationTimeoutSeconds         int    `mapstructure:"GENERATION_TIMEOUT_SECONDS"`
	FreeGenerationLimit              int64  `mapstructure:"FREE_GENERATION_LIMIT"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	RequireAuth                      bool   `mapstructure:"REQUIRE_AUTH"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
//
// RAZORPAY_KEY_SECRET is intentionally not validated here: a missing payment
// secret must surface as a "server configuration error" from the
// verify-payment handler at request time, not keep the rest of the service
// from starting.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("GENERATION_TIMEOUT_SECONDS", 30)
	viper.SetDefault("FREE_GENERATION_LIMIT", 5)
	viper.SetDefault("REQUIRE_AUTH", false)

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("RAZORPAY_KEY_SECRET")
	viper.BindEnv("GENERATION_WEBHOOK_URL")
	viper.BindEnv("GENERATION_TIMEOUT_SECONDS")
	viper.BindEnv("FREE_GENERATION_LIMIT")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("REQUIRE_AUTH")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.GoogleApplicationCredentials == "" && cfg.FirebaseServiceAccountJSONBase64 == "" {
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}
	if cfg.GenerationWebhookURL == "" {
		return nil, errors.New("GENERATION_WEBHOOK_URL is required")
	}
	if cfg.GenerationTimeoutSeconds <= 0 {
		return nil, errors.New("GENERATION_TIMEOUT_SECONDS must be positive")
	}
	if cfg.FreeGenerationLimit < 0 {
		return nil, errors.New("FREE_GENERATION_LIMIT must not be negative")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It will panic if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
