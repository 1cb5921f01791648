package llm

import (
	"encoding/json"
	"strings"
)

// BuildSystemPrompt composes the fixed system instruction: the exact JSON
// schema the model must produce plus the three normalization rules. The
// instruction is a contract the backend is expected to honor, but the adapter
// re-applies every rule itself after decoding (see Normalize).
func BuildSystemPrompt() string {
	parts := []string{
		"You are a recipe parser. Return ONLY JSON that matches the provided JSON Schema.",
		"The JSON object has exactly these fields: title, servings, ingredients, steps, tags.",
		"servings is a positive number; default to 4 when the text does not state it.",
		"Each ingredient has name (string), quantity (number; default to 1 when unparseable) and unit (lowercase string; empty string when absent).",
		"Each step has order (1-based integer position) and text (string).",
		"tags is an array of short lowercase strings; use an empty array when none apply.",
		"Never output null. Never wrap the JSON in markdown fences or prose.",
		"JSON Schema:\n" + mustJSON(BuildRecipeJSONSchema()),
	}
	return strings.Join(parts, " ")
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
