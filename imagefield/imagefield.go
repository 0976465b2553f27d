// Package imagefield coerces the stored images field into a flat list of
// URLs. Legacy rows hold the field as a JSON-encoded array, a bare URL
// string, or an already-decoded array; new writes always store the JSON
// array form, so this is a read-path adapter only.
package imagefield

import (
	"encoding/json"
	"strings"
)

// Normalize never fails: any input that cannot be recovered collapses to
// an empty list. The branch order is load-bearing — a string that looks
// like JSON but does not parse is still retried as a bare URL.
func Normalize(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return normalizeString(v)
	}
	return []string{}
}

func normalizeString(s string) []string {
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, `"`) {
		if parsed, ok := parseJSON(s); ok {
			return parsed
		}
	}
	if strings.HasPrefix(s, "http") {
		return []string{s}
	}
	return []string{}
}

func parseJSON(s string) ([]string, bool) {
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err == nil {
		return list, true
	}
	// A double-quoted scalar is a one-element list.
	var single string
	if err := json.Unmarshal([]byte(s), &single); err == nil {
		return []string{single}, true
	}
	return nil, false
}
