package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. It is loaded once at the
// boundary and passed into every component constructor; no component reads
// the environment directly.
type Config struct {
	Region     string
	Backend    BackendConfig
	OCR        OCRConfig
	Fetch      FetchConfig
	Downstream DownstreamConfig
}

// BackendConfig holds extraction-backend configuration.
type BackendConfig struct {
	ModelID     string
	MaxTokens   int
	Temperature float32
}

// OCRConfig holds document text-detection configuration.
type OCRConfig struct {
	Synchronous       bool
	NotificationTopic string // SNS topic ARN, async mode only
	ExecutionRole     string // role ARN the detection service assumes, async mode only
}

// FetchConfig holds web-fetch configuration.
type FetchConfig struct {
	Timeout      time.Duration
	MaxRedirects int
}

// DownstreamConfig holds recipe-store configuration.
type DownstreamConfig struct {
	Environment  string // deployment tag, selects the store's logical name
	FunctionName string // resolved store function, "recipe-store-<env>" when empty
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	cfg := &Config{
		Region: getEnv("AWS_REGION", "eu-west-3"),
		Backend: BackendConfig{
			ModelID:     getEnv("EXTRACTION_MODEL_ID", "amazon.nova-micro-v1:0"),
			MaxTokens:   getEnvAsInt("EXTRACTION_MAX_TOKENS", 2048),
			Temperature: getEnvAsFloat32("EXTRACTION_TEMPERATURE", 0.0),
		},
		OCR: OCRConfig{
			Synchronous:       getEnvAsBool("OCR_SYNCHRONOUS", false),
			NotificationTopic: getEnv("OCR_NOTIFICATION_TOPIC_ARN", ""),
			ExecutionRole:     getEnv("OCR_EXECUTION_ROLE_ARN", ""),
		},
		Fetch: FetchConfig{
			Timeout:      getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
			MaxRedirects: getEnvAsInt("FETCH_MAX_REDIRECTS", 5),
		},
		Downstream: DownstreamConfig{
			Environment:  getEnv("ENVIRONMENT", "dev"),
			FunctionName: getEnv("RECIPE_STORE_FUNCTION", ""),
		},
	}
	if cfg.Downstream.FunctionName == "" {
		cfg.Downstream.FunctionName = "recipe-store-" + cfg.Downstream.Environment
	}
	return cfg
}

// ValidateAsyncOCR checks the configuration required before any async
// detection job may be started. Batch processing fails fast on this.
func (c *Config) ValidateAsyncOCR() error {
	if c.OCR.Synchronous {
		return nil
	}
	if c.OCR.NotificationTopic == "" {
		return NewAppError("CONFIG_ERROR", "OCR_NOTIFICATION_TOPIC_ARN is required for async OCR", ErrConfig)
	}
	if c.OCR.ExecutionRole == "" {
		return NewAppError("CONFIG_ERROR", "OCR_EXECUTION_ROLE_ARN is required for async OCR", ErrConfig)
	}
	return nil
}

// Helper functions for environment variable parsing
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

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
