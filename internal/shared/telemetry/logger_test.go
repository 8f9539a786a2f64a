package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteIncludesLevelMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("llm.rate_limited", map[string]any{"attempt": 2, "level": "ignored"})

	line := strings.TrimSpace(buf.String())
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected level warn, got %v", payload["level"])
	}
	if payload["msg"] != "llm.rate_limited" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["attempt"] != float64(2) {
		t.Fatalf("unexpected attempt: %v", payload["attempt"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts")
	}
}
