package analyses

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resultSchema checks only what rendering depends on. Every other field is
// taken as returned.
const resultSchema = `{
  "type": "object",
  "required": ["personalDetails", "rating"],
  "properties": {
    "personalDetails": {"type": "object"}
  }
}`

var compiledResultSchema = jsonschema.MustCompileString("result.json", resultSchema)

// ExtractJSONObject removes code-fence markers and returns the text from the
// first '{' through the last '}'.
func ExtractJSONObject(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object found in response", ErrParse)
	}
	return cleaned[start : end+1], nil
}

// ParseResult extracts, decodes and shape-checks the model reply.
func ParseResult(text string) (Result, error) {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := compiledResultSchema.Validate(decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	obj := decoded.(map[string]any)
	if !truthy(obj["rating"]) {
		return nil, fmt.Errorf("%w: rating is empty", ErrShape)
	}
	return Result(obj), nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	default:
		return true
	}
}
