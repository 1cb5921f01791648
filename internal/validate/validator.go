package validate

import "fmt"

// Result reports whether a candidate recipe document has the canonical
// shape, with every applicable error accumulated in order.
type Result struct {
	Valid  bool
	Errors []string
}

// Recipe structurally validates a decoded recipe document. It is a pure
// function over the candidate: defaults were already applied upstream, so no
// coercion happens here. Checks are independent and do not short-circuit.
func Recipe(candidate any) Result {
	if candidate == nil {
		return Result{Valid: false, Errors: []string{"recipe is missing"}}
	}
	doc, ok := candidate.(map[string]any)
	if !ok {
		return Result{Valid: false, Errors: []string{"recipe is not an object"}}
	}

	var errs []string

	if _, ok := doc["title"].(string); !ok {
		errs = append(errs, "title must be a string")
	}
	if _, ok := doc["servings"].(float64); !ok {
		errs = append(errs, "servings must be a number")
	}

	if items, ok := doc["ingredients"].([]any); ok {
		for i, it := range items {
			ing, ok := it.(map[string]any)
			if !ok {
				errs = append(errs, fmt.Sprintf("ingredients[%d] must be an object", i))
				continue
			}
			if _, ok := ing["name"].(string); !ok {
				errs = append(errs, fmt.Sprintf("ingredients[%d].name must be a string", i))
			}
			if _, ok := ing["quantity"].(float64); !ok {
				errs = append(errs, fmt.Sprintf("ingredients[%d].quantity must be a number", i))
			}
			if _, ok := ing["unit"].(string); !ok {
				errs = append(errs, fmt.Sprintf("ingredients[%d].unit must be a string", i))
			}
		}
	} else {
		errs = append(errs, "ingredients must be an array")
	}

	if items, ok := doc["steps"].([]any); ok {
		for i, it := range items {
			step, ok := it.(map[string]any)
			if !ok {
				errs = append(errs, fmt.Sprintf("steps[%d] must be an object", i))
				continue
			}
			if _, ok := step["order"].(float64); !ok {
				errs = append(errs, fmt.Sprintf("steps[%d].order must be a number", i))
			}
			if _, ok := step["text"].(string); !ok {
				errs = append(errs, fmt.Sprintf("steps[%d].text must be a string", i))
			}
		}
	} else {
		errs = append(errs, "steps must be an array")
	}

	if _, ok := doc["tags"].([]any); !ok {
		errs = append(errs, "tags must be an array")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
