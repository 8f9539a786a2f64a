package report

import (
	"strings"
	"testing"
	"time"

	"resume-review/internal/history"
)

func sampleEntry() history.Entry {
	return history.Entry{
		ID:         1714982400000,
		FileName:   "jane.pdf",
		FileSize:   "12.00 KB",
		AnalyzedAt: time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC),
		Result: map[string]any{
			"personalDetails": map[string]any{
				"name":     "Jane Doe",
				"email":    "jane@example.com",
				"phone":    "555-0100",
				"linkedin": "Not specified",
				"location": "Berlin",
			},
			"summary":         "Platform engineer.",
			"rating":          float64(7),
			"technicalSkills": []any{"Go", "Kubernetes"},
			"softSkills":      []any{"Mentoring"},
			"workExperience": []any{
				map[string]any{"company": "Acme", "position": "Staff Engineer", "duration": "2019-2024", "description": "Led the platform team."},
			},
			"education": []any{
				map[string]any{"institution": "TU Berlin", "degree": "MSc CS", "duration": "2012-2014", "gpa": "Not specified"},
			},
			"improvementAreas": []any{"Quantify impact"},
			"suggestedSkills":  []any{"Terraform"},
		},
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{1, "★☆☆☆☆"},
		{7, "★★★★☆"},
		{8, "★★★★☆"},
		{9, "★★★★★"},
		{10, "★★★★★"},
	}
	for _, tt := range tests {
		if got := Stars(tt.rating); got != tt.want {
			t.Fatalf("Stars(%v) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestEntryRendersSections(t *testing.T) {
	out := Entry(DefaultStyles(), sampleEntry())
	for _, want := range []string{
		"7/10", "Good", "Jane Doe", "jane@example.com", "Berlin",
		"Platform engineer.", "Technical Skills (2)", "Go, Kubernetes",
		"Work Experience (1)", "Staff Engineer", "Acme",
		"Education (1)", "TU Berlin", "Areas for Improvement", "• Quantify impact",
		"Suggested Skills to Learn (1)", "Terraform",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"Linkedin", "GPA", "Projects"} {
		if strings.Contains(out, unwanted) {
			t.Fatalf("did not expect %q in output:\n%s", unwanted, out)
		}
	}
}

func TestEntryToleratesMissingFields(t *testing.T) {
	e := history.Entry{FileName: "x.pdf", Result: map[string]any{"personalDetails": map[string]any{}, "rating": "bad"}}
	out := Entry(DefaultStyles(), e)
	if !strings.Contains(out, "Name: -") {
		t.Fatalf("expected placeholder for missing name:\n%s", out)
	}
}

func TestHistoryTable(t *testing.T) {
	out := History(DefaultStyles(), []history.Entry{sampleEntry()})
	for _, want := range []string{"Name", "Email", "File Name", "Rating", "Date", "Jane Doe", "jane.pdf", "7/10"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if got := History(DefaultStyles(), nil); !strings.Contains(got, "No analysis history yet.") {
		t.Fatalf("unexpected empty render %q", got)
	}
}
