package validate

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

const validRecipe = `{
	"title": "Salade verte",
	"servings": 4,
	"ingredients": [
		{"name": "laitue", "quantity": 1, "unit": ""},
		{"name": "tomates", "quantity": 2, "unit": "pcs"}
	],
	"steps": [
		{"order": 1, "text": "Laver et couper les légumes."},
		{"order": 2, "text": "Assaisonner."}
	],
	"tags": ["salade"]
}`

func TestRecipe_Valid(t *testing.T) {
	res := Recipe(decode(t, validRecipe))
	if !res.Valid {
		t.Fatalf("valid recipe rejected: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("errors = %v, want none", res.Errors)
	}
}

func TestRecipe_NilCandidate(t *testing.T) {
	res := Recipe(nil)
	if res.Valid || len(res.Errors) != 1 {
		t.Fatalf("Recipe(nil) = %+v, want single error", res)
	}
}

func TestRecipe_AccumulatesErrors(t *testing.T) {
	// missing title AND servings: both must be reported.
	res := Recipe(decode(t, `{"ingredients":[],"steps":[],"tags":[]}`))
	if res.Valid {
		t.Fatal("expected invalid")
	}
	if len(res.Errors) < 2 {
		t.Errorf("errors = %v, want at least 2", res.Errors)
	}
}

func TestRecipe_FieldChecks(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError string
	}{
		{"numeric title", `{"title":42,"servings":1,"ingredients":[],"steps":[],"tags":[]}`, "title must be a string"},
		{"string servings", `{"title":"x","servings":"4","ingredients":[],"steps":[],"tags":[]}`, "servings must be a number"},
		{"ingredients not array", `{"title":"x","servings":1,"ingredients":"none","steps":[],"tags":[]}`, "ingredients must be an array"},
		{"steps not array", `{"title":"x","servings":1,"ingredients":[],"steps":{},"tags":[]}`, "steps must be an array"},
		{"tags not array", `{"title":"x","servings":1,"ingredients":[],"steps":[],"tags":"salade"}`, "tags must be an array"},
		{"bad ingredient name", `{"title":"x","servings":1,"ingredients":[{"name":1,"quantity":1,"unit":""}],"steps":[],"tags":[]}`, "ingredients[0].name must be a string"},
		{"bad ingredient quantity", `{"title":"x","servings":1,"ingredients":[{"name":"a","quantity":"1","unit":""}],"steps":[],"tags":[]}`, "ingredients[0].quantity must be a number"},
		{"bad ingredient unit", `{"title":"x","servings":1,"ingredients":[{"name":"a","quantity":1,"unit":7}],"steps":[],"tags":[]}`, "ingredients[0].unit must be a string"},
		{"non-object ingredient", `{"title":"x","servings":1,"ingredients":["a"],"steps":[],"tags":[]}`, "ingredients[0] must be an object"},
		{"bad step order", `{"title":"x","servings":1,"ingredients":[],"steps":[{"order":"1","text":"a"}],"tags":[]}`, "steps[0].order must be a number"},
		{"bad step text", `{"title":"x","servings":1,"ingredients":[],"steps":[{"order":1,"text":2}],"tags":[]}`, "steps[0].text must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Recipe(decode(t, tt.doc))
			if res.Valid {
				t.Fatal("expected invalid")
			}
			found := false
			for _, e := range res.Errors {
				if strings.Contains(e, tt.wantError) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("errors = %v, want one containing %q", res.Errors, tt.wantError)
			}
		})
	}
}

func TestRecipe_PerIndexErrors(t *testing.T) {
	res := Recipe(decode(t, `{
		"title": "x", "servings": 1, "tags": [],
		"ingredients": [
			{"name": "ok", "quantity": 1, "unit": ""},
			{"name": 2, "quantity": "two", "unit": 3}
		],
		"steps": []
	}`))
	if res.Valid {
		t.Fatal("expected invalid")
	}
	// all three failures of index 1 accumulate
	count := 0
	for _, e := range res.Errors {
		if strings.HasPrefix(e, "ingredients[1]") {
			count++
		}
	}
	if count != 3 {
		t.Errorf("ingredients[1] errors = %d (%v), want 3", count, res.Errors)
	}
}
