package entity

import "time"

// Recipe is the canonical structured output of an extraction.
type Recipe struct {
	Title       string       `json:"title"`
	Servings    float64      `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Tags        []string     `json:"tags"`
}

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Step is one ordered instruction of a recipe.
type Step struct {
	Order int    `json:"order"`
	Text  string `json:"text"`
}

// DownstreamOutcome records the result of submitting a recipe to the
// downstream store. A failed submission never invalidates the extraction;
// it only shows up here with Sent=false.
type DownstreamOutcome struct {
	Sent   bool   `json:"sent"`
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ExtractionMetadata describes where and when a recipe came from.
type ExtractionMetadata struct {
	ExtractedAt time.Time `json:"extractedAt"`
	ModelUsed   string    `json:"modelUsed"`
}

// ExtractionResult bundles the extracted recipe with the downstream
// submission outcome and extraction metadata.
type ExtractionResult struct {
	Recipe             Recipe             `json:"recipe"`
	DownstreamResponse DownstreamOutcome  `json:"downstreamResponse"`
	Metadata           ExtractionMetadata `json:"metadata"`
}
