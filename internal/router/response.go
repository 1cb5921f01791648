package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/quentinmartel/recipe-ingest/internal/common"
	"github.com/quentinmartel/recipe-ingest/internal/pipeline"
)

var responseHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,Authorization",
	"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
}

type envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *envelopeError `json:"error,omitempty"`
}

type envelopeError struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func respond(status int, body envelope) events.APIGatewayProxyResponse {
	b, err := json.Marshal(body)
	if err != nil {
		b = []byte(`{"success":false,"error":{"message":"response encoding failed"}}`)
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders,
		Body:       string(b),
	}
}

func success(status int, data any) events.APIGatewayProxyResponse {
	return respond(status, envelope{Success: true, Data: data})
}

func failure(status int, message string, details []string) events.APIGatewayProxyResponse {
	return respond(status, envelope{Success: false, Error: &envelopeError{Message: message, Details: details}})
}

// errorResponse maps a pipeline or adapter error to the externally visible
// status code and message.
func errorResponse(err error) events.APIGatewayProxyResponse {
	var invalid *pipeline.InvalidRecipeError
	if errors.As(err, &invalid) {
		return failure(http.StatusUnprocessableEntity, "could not extract valid recipe", invalid.Errors)
	}

	switch {
	case errors.Is(err, common.ErrInput):
		return failure(http.StatusBadRequest, errMessage(err), nil)
	case errors.Is(err, common.ErrNoContent):
		return failure(http.StatusUnprocessableEntity, errMessage(err), nil)
	case errors.Is(err, common.ErrHTTPFetch),
		errors.Is(err, common.ErrFetchTimeout),
		errors.Is(err, common.ErrFetchNetwork):
		return failure(http.StatusBadGateway, errMessage(err), nil)
	case errors.Is(err, common.ErrBackendProtocol),
		errors.Is(err, common.ErrBackendFormat):
		return failure(http.StatusServiceUnavailable, "AI service temporarily unavailable", []string{errMessage(err)})
	case errors.Is(err, common.ErrConfig):
		return failure(http.StatusInternalServerError, errMessage(err), nil)
	default:
		return failure(http.StatusInternalServerError, "internal error", nil)
	}
}

// errMessage keeps AppError messages readable without the code prefix.
func errMessage(err error) string {
	var app *common.AppError
	if errors.As(err, &app) {
		return app.Message
	}
	return err.Error()
}
