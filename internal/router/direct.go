package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/quentinmartel/recipe-ingest/constants"
	"github.com/quentinmartel/recipe-ingest/internal/webfetch"
)

// directPayload is the body of a direct request. Exactly one of URL or
// RecipeText is used; URL wins when both are present.
type directPayload struct {
	URL        string `json:"url"`
	RecipeText string `json:"recipeText"`
}

// handleDirect serves the direct-request path: obtain raw text from a URL or
// from the payload itself, then run the full extraction pipeline.
func (r *Router) handleDirect(ctx context.Context, raw json.RawMessage) events.APIGatewayProxyResponse {
	payload, resp, ok := decodeDirectPayload(raw)
	if !ok {
		return resp
	}

	switch {
	case payload.URL != "":
		return r.runFromURL(ctx, payload.URL)
	case payload.RecipeText != "":
		return r.runFromText(ctx, payload.RecipeText)
	default:
		return failure(http.StatusBadRequest, "Missing required parameter: url or recipeText", nil)
	}
}

// decodeDirectPayload unwraps {body: jsonStringOrObject}. A malformed body
// fails the whole request before any extraction work.
func decodeDirectPayload(raw json.RawMessage) (directPayload, events.APIGatewayProxyResponse, bool) {
	var shell struct {
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(raw, &shell); err != nil || len(shell.Body) == 0 {
		return directPayload{}, failure(http.StatusBadRequest, "Missing required parameter: url or recipeText", nil), false
	}

	body := shell.Body
	if body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return directPayload{}, failure(http.StatusBadRequest, "malformed request body", nil), false
		}
		if inner == "" {
			return directPayload{}, failure(http.StatusBadRequest, "Missing required parameter: url or recipeText", nil), false
		}
		body = []byte(inner)
	}

	var payload directPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return directPayload{}, failure(http.StatusBadRequest, "malformed request body", nil), false
	}
	return payload, events.APIGatewayProxyResponse{}, true
}

func (r *Router) runFromURL(ctx context.Context, rawURL string) events.APIGatewayProxyResponse {
	if !webfetch.IsValidURL(rawURL) {
		return failure(http.StatusBadRequest, "invalid URL format", nil)
	}

	page, err := r.fetcher.FetchAndExtract(ctx, rawURL)
	if err != nil {
		r.log.Warn("router.direct.fetch_failed", "url", rawURL, "error", err)
		return errorResponse(err)
	}
	text := page.Text
	if text == "" {
		return failure(http.StatusUnprocessableEntity, "no text content found at URL", nil)
	}
	// URL-sourced text is truncated, not rejected.
	if len(text) > constants.MaxTextLength {
		r.log.Info("router.direct.truncated", "url", rawURL, "from", len(text), "to", constants.MaxTextLength)
		text = text[:constants.MaxTextLength]
	}

	result, err := r.runner.Run(ctx, text)
	if err != nil {
		return errorResponse(err)
	}
	return success(http.StatusOK, result)
}

func (r *Router) runFromText(ctx context.Context, text string) events.APIGatewayProxyResponse {
	// Literal text above the cap is rejected outright, unlike URL text.
	if len(text) > constants.MaxTextLength {
		return failure(http.StatusBadRequest, "recipeText exceeds maximum length of 50000 characters", nil)
	}

	result, err := r.runner.Run(ctx, text)
	if err != nil {
		return errorResponse(err)
	}
	return success(http.StatusOK, result)
}
