package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the startup configuration surface of the bot. It is built
// once from environment variables and passed to the components that need it;
// nothing re-reads the environment per request.
type Config struct {
	// HTTP port the server listens on
	Port string

	// Bot channel credentials; when AppPassword is empty the channel
	// endpoints run without authentication (local development)
	AppID       string
	AppPassword string

	// Merchant settings for payment requests
	MerchantID string
	LiveMode   bool

	// Endpoint of the external NLU classifier used as the last recognizer
	NLUEndpoint string

	// Payment processor gateway; when ProcessorURL is empty (or LiveMode is
	// off) charges are handled by the built-in test processor
	ProcessorURL          string
	ProcessorCertFile     string
	ProcessorCertPassword string

	// Directory served as static content at the root route
	StaticDir string
}

// ErrMerchantIDMissing occurs when no merchant id is configured
var ErrMerchantIDMissing = errors.New("PAYMENTS_MERCHANT_ID not configured")

// FromEnv builds the configuration from environment variables
func FromEnv() (*Config, error) {
	liveMode, _ := strconv.ParseBool(os.Getenv("PAYMENTS_LIVEMODE"))

	cfg := &Config{
		Port:                  getEnv("PORT", "3978"),
		AppID:                 os.Getenv("APP_ID"),
		AppPassword:           os.Getenv("APP_PASSWORD"),
		MerchantID:            os.Getenv("PAYMENTS_MERCHANT_ID"),
		LiveMode:              liveMode,
		NLUEndpoint:           os.Getenv("NLU_ENDPOINT"),
		ProcessorURL:          os.Getenv("PAYMENTS_PROCESSOR_URL"),
		ProcessorCertFile:     os.Getenv("PAYMENTS_PROCESSOR_CERT_FILE"),
		ProcessorCertPassword: os.Getenv("PAYMENTS_PROCESSOR_CERT_PASSWORD"),
		StaticDir:             getEnv("STATIC_DIR", "./web"),
	}

	if cfg.MerchantID == "" {
		return nil, ErrMerchantIDMissing
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
