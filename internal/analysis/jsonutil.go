package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeModelJSON unmarshals a JSON object out of an LLM reply. Models often
// wrap the payload in markdown fences or prefix it with prose, so this scans
// for the outermost object before decoding.
func decodeModelJSON(raw string, v interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON object in model reply")
	}

	return json.Unmarshal([]byte(cleaned[start:end+1]), v)
}
