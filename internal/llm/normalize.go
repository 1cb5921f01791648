package llm

import (
	"strconv"
	"strings"
)

// Normalize re-applies the prompt's normalization rules to a decoded recipe
// document, because the backend may not honor them: servings defaults to 4,
// ingredient quantity defaults to 1 when missing or non-numeric, units are
// lower-cased, step order defaults to the 1-based position, tags are never
// absent. Fields the rules do not cover (title, ingredient names, step text)
// pass through untouched so validation still sees what the backend produced.
// The document is modified in place and returned.
func Normalize(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}

	if _, ok := doc["servings"].(float64); !ok {
		doc["servings"] = float64(4)
	}

	if items, ok := doc["ingredients"].([]any); ok {
		for _, it := range items {
			ing, ok := it.(map[string]any)
			if !ok {
				continue
			}
			ing["quantity"] = coerceQuantity(ing["quantity"])
			if u, ok := ing["unit"].(string); ok {
				ing["unit"] = strings.ToLower(strings.TrimSpace(u))
			} else {
				ing["unit"] = ""
			}
		}
	}

	if items, ok := doc["steps"].([]any); ok {
		for i, it := range items {
			step, ok := it.(map[string]any)
			if !ok {
				continue
			}
			if _, ok := step["order"].(float64); !ok {
				step["order"] = float64(i + 1)
			}
		}
	}

	if _, ok := doc["tags"]; !ok {
		doc["tags"] = []any{}
	}

	return doc
}

// coerceQuantity turns whatever the backend put in "quantity" into a number,
// falling back to 1 when it cannot be read as one.
func coerceQuantity(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return 1
}
