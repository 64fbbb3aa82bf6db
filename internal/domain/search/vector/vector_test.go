package vector

import "testing"

func TestBuild_JoinsNormalizedFragments(t *testing.T) {
	doc := map[string]any{
		"name":        "Payment Gateway",
		"description": "  Handles CARD payments ",
		"key":         "PAY",
	}

	got := Build(doc, []string{"name", "description", "key"})
	want := "payment gateway handles card payments pay"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_NestedPaths(t *testing.T) {
	doc := map[string]any{
		"title": "Checkout flow",
		"project": map[string]any{
			"name": "Payments",
		},
	}

	got := Build(doc, []string{"title", "project.name"})
	want := "checkout flow payments"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_MissingSegmentsYieldNothing(t *testing.T) {
	doc := map[string]any{
		"title": "Checkout flow",
	}

	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{"missing top-level field", []string{"title", "description"}, "checkout flow"},
		{"missing nested parent", []string{"project.name", "title"}, "checkout flow"},
		{"non-document intermediate", []string{"title.name"}, ""},
		{"all missing", []string{"a", "b.c"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(doc, tt.paths); got != tt.want {
				t.Errorf("Build = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_StringifiesScalars(t *testing.T) {
	doc := map[string]any{
		"name":     "Dana",
		"active":   true,
		"capacity": float64(42),
	}

	got := Build(doc, []string{"name", "active", "capacity"})
	want := "dana true 42"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_JoinsArrayElements(t *testing.T) {
	doc := map[string]any{
		"name":   "Dana",
		"skills": []any{"Go", "Kubernetes", "SQL"},
	}

	got := Build(doc, []string{"name", "skills"})
	want := "dana go kubernetes sql"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_NilAndObjectValuesAreEmpty(t *testing.T) {
	doc := map[string]any{
		"name":    "Dana",
		"manager": nil,
		"address": map[string]any{"city": "Berlin"},
	}

	got := Build(doc, []string{"name", "manager", "address"})
	if got != "dana" {
		t.Errorf("Build = %q, want %q", got, "dana")
	}
}

func TestBuild_EmptyDocument(t *testing.T) {
	if got := Build(nil, []string{"name"}); got != "" {
		t.Errorf("Build = %q, want empty", got)
	}
	if got := Build(map[string]any{}, nil); got != "" {
		t.Errorf("Build = %q, want empty", got)
	}
}
