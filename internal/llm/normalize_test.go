package llm

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return m
}

func TestNormalize_ServingsDefault(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want float64
	}{
		{"missing servings", `{"title":"x"}`, 4},
		{"string servings", `{"title":"x","servings":"six"}`, 4},
		{"numeric servings kept", `{"title":"x","servings":2}`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(decode(t, tt.doc))
			if s, _ := got["servings"].(float64); s != tt.want {
				t.Errorf("servings = %v, want %v", got["servings"], tt.want)
			}
		})
	}
}

func TestNormalize_IngredientDefaults(t *testing.T) {
	doc := decode(t, `{
		"ingredients": [
			{"name":"laitue"},
			{"name":"tomates","quantity":"three","unit":"PCS"},
			{"name":"huile","quantity":2.5,"unit":" CL "},
			{"name":"sel","quantity":"0.5"}
		]
	}`)
	got := Normalize(doc)

	items := got["ingredients"].([]any)
	checks := []struct {
		quantity float64
		unit     string
	}{
		{1, ""},
		{1, "pcs"},
		{2.5, "cl"},
		{0.5, ""},
	}
	for i, want := range checks {
		ing := items[i].(map[string]any)
		if q := ing["quantity"].(float64); q != want.quantity {
			t.Errorf("ingredients[%d].quantity = %v, want %v", i, q, want.quantity)
		}
		if u := ing["unit"].(string); u != want.unit {
			t.Errorf("ingredients[%d].unit = %q, want %q", i, u, want.unit)
		}
	}
}

func TestNormalize_StepOrderDefaults(t *testing.T) {
	doc := decode(t, `{
		"steps": [
			{"text":"laver"},
			{"text":"couper","order":7},
			{"text":"assaisonner"}
		]
	}`)
	got := Normalize(doc)

	items := got["steps"].([]any)
	wants := []float64{1, 7, 3}
	for i, want := range wants {
		step := items[i].(map[string]any)
		if o := step["order"].(float64); o != want {
			t.Errorf("steps[%d].order = %v, want %v", i, o, want)
		}
	}
}

func TestNormalize_TagsNeverAbsent(t *testing.T) {
	got := Normalize(decode(t, `{"title":"x"}`))
	tags, ok := got["tags"].([]any)
	if !ok {
		t.Fatalf("tags = %T, want array", got["tags"])
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want empty", tags)
	}

	// existing tags are preserved
	got = Normalize(decode(t, `{"tags":["salade","rapide"]}`))
	if tags := got["tags"].([]any); len(tags) != 2 {
		t.Errorf("tags = %v, want 2 entries", tags)
	}
}

func TestNormalize_Nil(t *testing.T) {
	if got := Normalize(nil); got != nil {
		t.Errorf("Normalize(nil) = %v, want nil", got)
	}
}

func TestNormalize_LeavesUncoveredFieldsAlone(t *testing.T) {
	// Normalization must not invent titles or repair non-object elements;
	// that is the validator's territory.
	doc := decode(t, `{"servings":2,"ingredients":["not an object"],"steps":[42]}`)
	got := Normalize(doc)
	if _, ok := got["title"]; ok {
		t.Error("title should not be invented")
	}
	if v := got["ingredients"].([]any)[0]; v != "not an object" {
		t.Errorf("ingredients[0] = %v, want untouched", v)
	}
}
