package main

// Preview the terminal report for a saved model reply or a sample analysis:
//   go run ./cmd/renderdemo
//   go run ./cmd/renderdemo -reply ./out/reply.json

import (
	"flag"
	"fmt"
	"os"
	"time"

	"resume-review/internal/analyses"
	"resume-review/internal/history"
	"resume-review/internal/report"
)

func main() {
	replyPath := flag.String("reply", "", "Path to a raw model reply (optional)")
	table := flag.Bool("table", false, "Also render the history table")
	flag.Parse()

	result := sampleResult()
	if *replyPath != "" {
		data, err := os.ReadFile(*replyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read reply: %v\n", err)
			os.Exit(1)
		}
		parsed, err := analyses.ParseResult(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", analyses.Classify(err).Code, err)
			os.Exit(1)
		}
		result = parsed
	}

	entry := history.Entry{
		ID:         time.Now().UnixMilli(),
		FileName:   "sample_resume.pdf",
		FileSize:   "48.25 KB",
		AnalyzedAt: time.Now().UTC(),
		Result:     result,
	}

	styles := report.DefaultStyles()
	fmt.Println(report.Entry(styles, entry))
	if *table {
		fmt.Println()
		fmt.Println(report.History(styles, []history.Entry{entry}))
	}
}

func sampleResult() analyses.Result {
	return analyses.Result{
		"personalDetails": map[string]any{
			"name":      "Alex Morgan",
			"email":     "alex.morgan@example.com",
			"phone":     "+1 555 010 2000",
			"linkedin":  "linkedin.com/in/alexmorgan",
			"portfolio": "Not specified",
			"location":  "Austin, TX",
		},
		"summary":         "Backend engineer with eight years building payment and logistics platforms in Go.",
		"rating":          float64(7),
		"technicalSkills": []any{"Go", "PostgreSQL", "Kafka", "Kubernetes", "Terraform"},
		"softSkills":      []any{"Mentoring", "Incident leadership"},
		"workExperience": []any{
			map[string]any{
				"company":     "Parcelway",
				"position":    "Senior Backend Engineer",
				"duration":    "2020 - Present",
				"description": "Owns the routing service handling 2M shipments a day.",
			},
			map[string]any{
				"company":     "Ledgerly",
				"position":    "Software Engineer",
				"duration":    "2016 - 2020",
				"description": "Built reconciliation jobs for card settlements.",
			},
		},
		"education": []any{
			map[string]any{
				"institution": "University of Texas",
				"degree":      "BSc Computer Science",
				"duration":    "2012 - 2016",
				"gpa":         "3.7",
			},
		},
		"projects": []any{
			map[string]any{
				"name":         "pgqueue",
				"description":  "Durable job queue on top of PostgreSQL advisory locks.",
				"technologies": []any{"Go", "PostgreSQL"},
			},
		},
		"certifications":   []any{"CKA"},
		"improvementAreas": []any{"Quantify impact in earlier roles", "Trim the skills list to the strongest tools"},
		"suggestedSkills":  []any{"OpenTelemetry", "gRPC"},
	}
}
