package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/quentinmartel/recipe-ingest/constants"
	"github.com/quentinmartel/recipe-ingest/internal/entity"
)

// transportEnvelope is the outer notification wrapper around a job-status
// message as it arrives on the queue.
type transportEnvelope struct {
	Message string `json:"Message"`
}

// jobStatusMessage is the detection service's completion payload.
type jobStatusMessage struct {
	JobID  string `json:"JobId"`
	Status string `json:"Status"`
}

// handleCompletion serves the job-completion path: unwrap the double
// envelope, skip non-success terminal states, and run the full pipeline on
// the OCR text of successful jobs. Per-record errors never abort the batch.
func (r *Router) handleCompletion(ctx context.Context, e events.SQSEvent) events.APIGatewayProxyResponse {
	records := make([]entity.CompletionRecord, 0, len(e.Records))
	for _, rec := range e.Records {
		records = append(records, r.processCompletion(ctx, rec))
	}

	return success(http.StatusOK, entity.CompletionSummary{
		Message: "completion batch processed",
		Records: records,
	})
}

func (r *Router) processCompletion(ctx context.Context, rec events.SQSMessage) entity.CompletionRecord {
	var env transportEnvelope
	if err := json.Unmarshal([]byte(rec.Body), &env); err != nil {
		return entity.CompletionRecord{Processed: false, Error: "malformed transport envelope: " + err.Error()}
	}
	var msg jobStatusMessage
	if err := json.Unmarshal([]byte(env.Message), &msg); err != nil {
		return entity.CompletionRecord{Processed: false, Error: "malformed job status payload: " + err.Error()}
	}

	out := entity.CompletionRecord{JobID: msg.JobID, Status: constants.JobStatus(msg.Status)}

	if msg.Status != string(constants.JobStatusSucceeded) {
		r.log.Info("router.completion.skipped", "job_id", msg.JobID, "status", msg.Status)
		out.Processed = false
		return out
	}

	text, err := r.ocr.PollResult(ctx, msg.JobID)
	if err != nil {
		r.log.Warn("router.completion.poll_failed", "job_id", msg.JobID, "error", err)
		out.Processed = false
		out.Error = err.Error()
		return out
	}

	result, err := r.runner.Run(ctx, text)
	if err != nil {
		r.log.Warn("router.completion.extract_failed", "job_id", msg.JobID, "error", err)
		out.Processed = false
		out.Error = err.Error()
		return out
	}

	out.Processed = true
	out.Result = &result
	return out
}
