package analyses

import "testing"

func TestRatingLabel(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{10, "Excellent"},
		{8, "Excellent"},
		{7.9, "Good"},
		{6, "Good"},
		{5, "Fair"},
		{4, "Fair"},
		{3.5, "Needs Improvement"},
		{1, "Needs Improvement"},
	}
	for _, tt := range tests {
		if got := RatingLabel(tt.rating); got != tt.want {
			t.Fatalf("RatingLabel(%v) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestResultAccessors(t *testing.T) {
	r := Result{
		"personalDetails": map[string]any{"name": "Jane", "phone": float64(5550100)},
		"summary":         "Builds platforms.",
		"technicalSkills": []any{"Go", "", float64(3), map[string]any{}},
		"workExperience": []any{
			map[string]any{"company": "Acme", "position": "Engineer"},
			"not an object",
		},
	}

	if r.PersonalDetail("name") != "Jane" || r.PersonalDetail("phone") != "5550100" {
		t.Fatalf("unexpected personal details %q %q", r.PersonalDetail("name"), r.PersonalDetail("phone"))
	}
	if r.PersonalDetail("missing") != "" {
		t.Fatalf("expected empty value for missing detail")
	}
	if r.Summary() != "Builds platforms." {
		t.Fatalf("unexpected summary %q", r.Summary())
	}
	skills := r.Strings("technicalSkills")
	if len(skills) != 2 || skills[0] != "Go" || skills[1] != "3" {
		t.Fatalf("unexpected skills %v", skills)
	}
	jobs := r.Objects("workExperience")
	if len(jobs) != 1 || jobs[0].Text("company") != "Acme" {
		t.Fatalf("unexpected jobs %v", jobs)
	}
	if _, ok := r.Rating(); ok {
		t.Fatalf("expected missing rating")
	}
}
