package common

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"EXTRACTION_MODEL_ID", "EXTRACTION_MAX_TOKENS", "FETCH_TIMEOUT",
		"FETCH_MAX_REDIRECTS", "ENVIRONMENT", "RECIPE_STORE_FUNCTION",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Backend.ModelID != "amazon.nova-micro-v1:0" {
		t.Errorf("ModelID = %q", cfg.Backend.ModelID)
	}
	if cfg.Backend.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d", cfg.Backend.MaxTokens)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxRedirects != 5 {
		t.Errorf("MaxRedirects = %d", cfg.Fetch.MaxRedirects)
	}
	if cfg.Downstream.FunctionName != "recipe-store-dev" {
		t.Errorf("FunctionName = %q", cfg.Downstream.FunctionName)
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("EXTRACTION_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0")
	t.Setenv("EXTRACTION_MAX_TOKENS", "4096")
	t.Setenv("OCR_SYNCHRONOUS", "true")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("RECIPE_STORE_FUNCTION", "")

	cfg := LoadConfig()
	if cfg.Backend.ModelID != "anthropic.claude-3-haiku-20240307-v1:0" {
		t.Errorf("ModelID = %q", cfg.Backend.ModelID)
	}
	if cfg.Backend.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d", cfg.Backend.MaxTokens)
	}
	if !cfg.OCR.Synchronous {
		t.Error("Synchronous = false")
	}
	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Downstream.FunctionName != "recipe-store-prod" {
		t.Errorf("FunctionName = %q", cfg.Downstream.FunctionName)
	}
}

func TestLoadConfig_ExplicitStoreFunctionWins(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("RECIPE_STORE_FUNCTION", "my-custom-store")

	cfg := LoadConfig()
	if cfg.Downstream.FunctionName != "my-custom-store" {
		t.Errorf("FunctionName = %q", cfg.Downstream.FunctionName)
	}
}

func TestLoadConfig_IgnoresUnparseableValues(t *testing.T) {
	t.Setenv("EXTRACTION_MAX_TOKENS", "lots")
	t.Setenv("OCR_SYNCHRONOUS", "oui")
	t.Setenv("FETCH_TIMEOUT", "soon")

	cfg := LoadConfig()
	if cfg.Backend.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d", cfg.Backend.MaxTokens)
	}
	if cfg.OCR.Synchronous {
		t.Error("Synchronous = true")
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
	}
}

func TestValidateAsyncOCR(t *testing.T) {
	tests := []struct {
		name    string
		ocr     OCRConfig
		wantErr bool
	}{
		{"sync mode needs nothing", OCRConfig{Synchronous: true}, false},
		{"async fully configured", OCRConfig{NotificationTopic: "arn:topic", ExecutionRole: "arn:role"}, false},
		{"async missing topic", OCRConfig{ExecutionRole: "arn:role"}, true},
		{"async missing role", OCRConfig{NotificationTopic: "arn:topic"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{OCR: tt.ocr}
			err := cfg.ValidateAsyncOCR()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAsyncOCR() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfig) {
				t.Errorf("error does not wrap ErrConfig: %v", err)
			}
		})
	}
}
