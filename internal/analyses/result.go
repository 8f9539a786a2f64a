package analyses

import (
	"strconv"
	"strings"
)

// Result is the generated analysis as decoded from the model reply. Only
// personalDetails and rating are guaranteed; the accessors tolerate anything
// else being absent or of the wrong type.
type Result map[string]any

// PersonalDetail returns personalDetails[key] as a string.
func (r Result) PersonalDetail(key string) string {
	details, ok := r["personalDetails"].(map[string]any)
	if !ok {
		return ""
	}
	return stringValue(details[key])
}

// Rating returns the 1-10 rating. Numeric strings are accepted.
func (r Result) Rating() (float64, bool) {
	switch v := r["rating"].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Summary returns the professional summary.
func (r Result) Summary() string {
	return r.Text("summary")
}

// Text returns r[key] when it is a scalar.
func (r Result) Text(key string) string {
	return stringValue(r[key])
}

// Strings returns the scalar items of the list at key.
func (r Result) Strings(key string) []string {
	return stringList(r[key])
}

// Objects returns the object items of the list at key.
func (r Result) Objects(key string) []Result {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Result, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, Result(obj))
		}
	}
	return out
}

// RatingLabel describes a rating in words.
func RatingLabel(rating float64) string {
	switch {
	case rating >= 8:
		return "Excellent"
	case rating >= 6:
		return "Good"
	case rating >= 4:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringValue(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
