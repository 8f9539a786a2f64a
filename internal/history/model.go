package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata keys layered over the result keys in the persisted form.
const (
	keyID            = "id"
	keyFileName      = "fileName"
	keyFileSize      = "fileSize"
	keyAnalyzedAt    = "analyzedAt"
	keyExtractedText = "extractedText"
)

// analyzedAtLayout matches the millisecond UTC timestamps already present in
// stored histories, e.g. 2024-03-01T10:20:30.123Z.
const analyzedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Entry is one stored analysis. Result holds the generated fields as
// returned by the model; entries are never modified after being appended.
type Entry struct {
	ID            int64
	FileName      string
	FileSize      string
	AnalyzedAt    time.Time
	ExtractedText string
	Result        map[string]any
}

// MarshalJSON writes the result keys and the metadata keys in one flat object.
// Metadata wins when a result carries a key of the same name.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Result)+5)
	for k, v := range e.Result {
		out[k] = v
	}
	out[keyID] = e.ID
	out[keyFileName] = e.FileName
	out[keyFileSize] = e.FileSize
	out[keyAnalyzedAt] = e.AnalyzedAt.UTC().Format(analyzedAtLayout)
	out[keyExtractedText] = e.ExtractedText
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat object back into metadata and result keys.
func (e *Entry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("history entry is not an object")
	}

	var out Entry
	num, ok := raw[keyID].(json.Number)
	if !ok {
		return fmt.Errorf("history entry missing numeric id")
	}
	id, err := num.Int64()
	if err != nil {
		f, ferr := num.Float64()
		if ferr != nil {
			return fmt.Errorf("history entry id: %w", err)
		}
		id = int64(f)
	}
	out.ID = id
	out.FileName, _ = raw[keyFileName].(string)
	out.FileSize, _ = raw[keyFileSize].(string)
	out.ExtractedText, _ = raw[keyExtractedText].(string)
	if s, ok := raw[keyAnalyzedAt].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			out.AnalyzedAt = t.UTC()
		}
	}

	for _, k := range []string{keyID, keyFileName, keyFileSize, keyAnalyzedAt, keyExtractedText} {
		delete(raw, k)
	}
	out.Result = normalizeNumbers(raw).(map[string]any)
	*e = out
	return nil
}

// normalizeNumbers converts json.Number values to float64 so a reloaded
// result looks the same as one decoded from the model reply.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return f
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}
