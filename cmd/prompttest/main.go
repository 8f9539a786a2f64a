package main

// Send one resume through the prompt and print the model's parsed reply
// without touching history:
//   go run ./cmd/prompttest -resume ./resume.pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-review/internal/analyses"
	"resume-review/internal/extract"
	"resume-review/internal/llm"
	"resume-review/internal/llm/gemini"
	"resume-review/internal/shared/config"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file")
	textPath := flag.String("text", "", "Path to already extracted plain text (skips recovery)")
	outPath := flag.String("out", "", "Path to write parsed JSON output (optional)")
	model := flag.String("model", cfg.LLMModel, "Gemini model")
	mode := flag.String("extractor", cfg.Extractor, "Extraction mode: heuristic, pdf or auto")
	printPrompt := flag.Bool("print-prompt", false, "Print the rendered prompt and exit")
	raw := flag.Bool("raw", false, "Print the unparsed model reply")
	flag.Parse()

	resumeText, fileName := loadText(*resumePath, *textPath, *mode)

	if *printPrompt {
		fmt.Println(llm.BuildPrompt(resumeText))
		return
	}

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		exitErr("GEMINI_API_KEY is required")
	}
	client, err := gemini.NewClient(gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   *model,
		BaseURL: cfg.LLMBaseURL,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		exitErr(err.Error())
	}
	retrying := llm.WithRateLimitRetry(client, llm.RetryPolicy{
		BaseDelay:  cfg.RetryBaseDelay,
		MaxRetries: cfg.MaxRetries,
	})

	reply, err := retrying.AnalyzeResume(context.Background(), llm.AnalyzeInput{
		ResumeText: resumeText,
		FileName:   fileName,
	})
	if err != nil {
		f := analyses.Classify(err)
		exitErr(fmt.Sprintf("llm analyze: %s: %v", f.Code, err))
	}
	if *raw {
		fmt.Println(reply)
		return
	}

	result, err := analyses.ParseResult(reply)
	if err != nil {
		f := analyses.Classify(err)
		exitErr(fmt.Sprintf("%s: %v\n--- reply ---\n%s", f.Code, err, reply))
	}

	pretty, err := prettyJSON(result)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
}

func loadText(resumePath, textPath, mode string) (string, string) {
	if strings.TrimSpace(textPath) != "" {
		data, err := os.ReadFile(textPath)
		if err != nil {
			exitErr(fmt.Sprintf("read text: %v", err))
		}
		return string(data), filepath.Base(textPath)
	}
	if strings.TrimSpace(resumePath) == "" {
		exitErr("resume path is required")
	}

	data, err := os.ReadFile(resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	text, err := extract.New(mode).Extract(context.Background(), data)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}
	return text, filepath.Base(resumePath)
}

func prettyJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
