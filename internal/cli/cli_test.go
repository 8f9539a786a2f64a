package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"resume-review/internal/analyses"
	"resume-review/internal/bootstrap"
	"resume-review/internal/extract"
	"resume-review/internal/history"
	"resume-review/internal/llm"
	"resume-review/internal/report"
	"resume-review/internal/shared/config"
	"resume-review/internal/shared/storage/kv"
	"resume-review/internal/shared/telemetry"
)

const modelReply = "```json\n" + `{"personalDetails":{"name":"Jane Doe","email":"jane@example.com"},"summary":"Platform engineer.","rating":8,"technicalSkills":["Go"],"improvementAreas":["Quantify impact"]}` + "\n```"

type replyLLM struct {
	reply string
	err   error
}

func (r replyLLM) AnalyzeResume(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	return r.reply, r.err
}

type fixture struct {
	store  *history.Store
	builds int
}

func newFixture(t *testing.T, client llm.Client) (*fixture, Options) {
	t.Helper()
	t.Cleanup(telemetry.SetOutput(io.Discard))

	f := &fixture{store: history.NewStore(kv.NewMemoryStore(), "")}
	opts := Options{
		Build: func(ctx context.Context) (*bootstrap.App, error) {
			f.builds++
			ex := extract.New(extract.ModeHeuristic)
			return &bootstrap.App{
				Config:          config.Config{Port: "0"},
				History:         f.store,
				Extractor:       ex,
				LLM:             client,
				AnalysesService: analyses.NewService(ex, client, f.store, 0),
			}, nil
		},
		Config: func() config.Config { return config.Config{Extractor: extract.ModeHeuristic} },
		Styles: report.DefaultStyles(),
	}
	return f, opts
}

func run(t *testing.T, opts Options, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(opts)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeResume(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	body := "Jane Doe jane@example.com Staff Engineer at Acme building distributed systems in Go for ten years."
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestAnalyzeStoresAndRendersEntry(t *testing.T) {
	f, opts := newFixture(t, replyLLM{reply: modelReply})

	out, err := run(t, opts, "analyze", writeResume(t, "jane.pdf"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if f.store.Len() != 1 {
		t.Fatalf("expected 1 stored entry, got %d", f.store.Len())
	}
	for _, want := range []string{"Jane Doe", "8/10", "Excellent", "• Quantify impact"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestAnalyzeJSONOutput(t *testing.T) {
	_, opts := newFixture(t, replyLLM{reply: modelReply})

	out, err := run(t, opts, "analyze", "--json", writeResume(t, "jane.pdf"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if decoded["fileName"] != "jane.pdf" {
		t.Fatalf("unexpected fileName %v", decoded["fileName"])
	}
}

func TestAnalyzeRejectsNonPDF(t *testing.T) {
	f, opts := newFixture(t, replyLLM{reply: modelReply})

	_, err := run(t, opts, "analyze", writeResume(t, "jane.txt"))
	if err == nil || !strings.Contains(err.Error(), analyses.CodeInput) {
		t.Fatalf("expected %s, got %v", analyses.CodeInput, err)
	}
	if f.store.Len() != 0 {
		t.Fatalf("expected no stored entry")
	}
}

func TestAnalyzeReportsModelFailureCode(t *testing.T) {
	_, opts := newFixture(t, replyLLM{err: llm.ErrRateLimitExhausted})

	_, err := run(t, opts, "analyze", writeResume(t, "jane.pdf"))
	if err == nil || !strings.Contains(err.Error(), analyses.CodeRateLimitExhausted) {
		t.Fatalf("expected %s, got %v", analyses.CodeRateLimitExhausted, err)
	}
}

func TestExtractPrintsRecoveredText(t *testing.T) {
	f, opts := newFixture(t, replyLLM{})

	out, err := run(t, opts, "extract", writeResume(t, "jane.pdf"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(out, "Staff Engineer") {
		t.Fatalf("unexpected output %q", out)
	}
	if f.builds != 0 {
		t.Fatalf("extract should not build the app")
	}
}

func TestExtractTooShort(t *testing.T) {
	_, opts := newFixture(t, replyLLM{})
	path := filepath.Join(t.TempDir(), "tiny.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := run(t, opts, "extract", path)
	if err == nil || !strings.Contains(err.Error(), analyses.CodeRecovery) {
		t.Fatalf("expected %s, got %v", analyses.CodeRecovery, err)
	}
}

func TestHistoryCommands(t *testing.T) {
	f, opts := newFixture(t, replyLLM{reply: modelReply})

	out, err := run(t, opts, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "No analysis history yet.") {
		t.Fatalf("unexpected empty listing %q", out)
	}

	if _, err := run(t, opts, "analyze", writeResume(t, "jane.pdf")); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	id := f.store.List()[0].ID

	out, err = run(t, opts, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "jane.pdf") || !strings.Contains(out, "Total: 1 analyses") {
		t.Fatalf("unexpected listing:\n%s", out)
	}

	out, err = run(t, opts, "history", "show", strconv.FormatInt(id, 10))
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	if !strings.Contains(out, "Platform engineer.") {
		t.Fatalf("unexpected detail:\n%s", out)
	}

	if _, err := run(t, opts, "history", "show", "42"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if _, err := run(t, opts, "history", "show", "abc"); err == nil {
		t.Fatalf("expected error for invalid id")
	}

	if _, err := run(t, opts, "history", "clear"); err == nil {
		t.Fatalf("expected clear without --yes to fail")
	}
	if f.store.Len() != 1 {
		t.Fatalf("history should survive an unconfirmed clear")
	}
	if _, err := run(t, opts, "history", "clear", "--yes"); err != nil {
		t.Fatalf("history clear: %v", err)
	}
	if f.store.Len() != 0 {
		t.Fatalf("expected history to be empty after clear")
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"resume.pdf", "application/pdf"},
		{"RESUME.PDF", "application/pdf"},
		{"resume", ""},
		{"page.html", "text/html"},
	}
	for _, tt := range tests {
		if got := contentTypeFor(tt.path); got != tt.want {
			t.Fatalf("contentTypeFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
