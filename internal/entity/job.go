package entity

import "github.com/quentinmartel/recipe-ingest/constants"

// IngestionRecord is the per-record summary entry of a batch event.
// Records are created per inbound event and never persisted past the
// invocation that produced them.
type IngestionRecord struct {
	Bucket  string                 `json:"bucket,omitempty"`
	Key     string                 `json:"key,omitempty"`
	JobID   string                 `json:"jobId,omitempty"`
	Status  constants.RecordStatus `json:"status"`
	Error   string                 `json:"error,omitempty"`
	Result  *ExtractionResult      `json:"result,omitempty"`
}

// BatchSummary is the router's answer for a storage-upload or
// job-completion event.
type BatchSummary struct {
	Message string            `json:"message"`
	Records []IngestionRecord `json:"records"`
}

// CompletionRecord is the per-record summary entry of a job-completion batch.
type CompletionRecord struct {
	JobID     string              `json:"jobId"`
	Status    constants.JobStatus `json:"status"`
	Processed bool                `json:"processed"`
	Error     string              `json:"error,omitempty"`
	Result    *ExtractionResult   `json:"result,omitempty"`
}

// CompletionSummary is the router's answer for a job-completion event.
type CompletionSummary struct {
	Message string             `json:"message"`
	Records []CompletionRecord `json:"records"`
}
