package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/quentinmartel/recipe-ingest/internal/common"
	"github.com/quentinmartel/recipe-ingest/internal/entity"
)

// InvokeAPI is the slice of the function-invocation service the client needs.
type InvokeAPI interface {
	Invoke(ctx context.Context, params *awslambda.InvokeInput, optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error)
}

// Client submits validated recipes to the downstream recipe store. The store
// is another function behind a proxy-style request envelope; its logical name
// is selected by the deployment environment tag.
type Client struct {
	cfg common.DownstreamConfig
	api InvokeAPI
	log *slog.Logger
}

func NewClient(cfg common.DownstreamConfig, api InvokeAPI, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, api: api, log: logger}
}

// storeRequest is the proxy-style envelope the recipe store accepts.
type storeRequest struct {
	HTTPMethod string `json:"httpMethod"`
	Path       string `json:"path"`
	Body       string `json:"body,omitempty"`
}

type storeResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Submit POSTs the recipe to /recipes. The outcome is always returned; a
// non-2xx answer or a transport failure shows up as Sent=false with the
// error captured, never as a Go error, so a successful extraction is never
// lost to a storage hiccup.
func (c *Client) Submit(ctx context.Context, recipe entity.Recipe) entity.DownstreamOutcome {
	start := time.Now()

	body, err := json.Marshal(recipe)
	if err != nil {
		return entity.DownstreamOutcome{Sent: false, Error: fmt.Sprintf("encode recipe: %v", err)}
	}
	payload, err := json.Marshal(storeRequest{
		HTTPMethod: "POST",
		Path:       "/recipes",
		Body:       string(body),
	})
	if err != nil {
		return entity.DownstreamOutcome{Sent: false, Error: fmt.Sprintf("encode request: %v", err)}
	}

	out, err := c.api.Invoke(ctx, &awslambda.InvokeInput{
		FunctionName: aws.String(c.cfg.FunctionName),
		Payload:      payload,
	})
	if err != nil {
		c.log.Warn("store.submit.transport_error",
			"function", c.cfg.FunctionName, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.DownstreamOutcome{Sent: false, Error: err.Error()}
	}
	if out.FunctionError != nil {
		c.log.Warn("store.submit.function_error", "function", c.cfg.FunctionName, "error", *out.FunctionError)
		return entity.DownstreamOutcome{Sent: false, Error: "store function error: " + *out.FunctionError}
	}

	var resp storeResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return entity.DownstreamOutcome{Sent: false, Error: fmt.Sprintf("decode store response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("store.submit.rejected", "function", c.cfg.FunctionName, "status", resp.StatusCode)
		return entity.DownstreamOutcome{
			Sent:   false,
			Status: resp.StatusCode,
			Body:   resp.Body,
			Error:  fmt.Sprintf("store answered status %d", resp.StatusCode),
		}
	}

	c.log.Info("store.submit.ok",
		"function", c.cfg.FunctionName,
		"status", resp.StatusCode,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entity.DownstreamOutcome{Sent: true, Status: resp.StatusCode, Body: resp.Body}
}

// CheckAvailability probes the store with GET /health and reports false on
// any failure. It never returns an error.
func (c *Client) CheckAvailability(ctx context.Context) bool {
	payload, err := json.Marshal(storeRequest{HTTPMethod: "GET", Path: "/health"})
	if err != nil {
		return false
	}
	out, err := c.api.Invoke(ctx, &awslambda.InvokeInput{
		FunctionName: aws.String(c.cfg.FunctionName),
		Payload:      payload,
	})
	if err != nil || out.FunctionError != nil {
		return false
	}
	var resp storeResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return false
	}
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
