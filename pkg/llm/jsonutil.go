package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// ```json { ... } ``` or ```json [ ... ] ```
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*\\n?(.*?)\\s*```")
	jsonObjectPattern  = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayPattern   = regexp.MustCompile(`(?s)\[.*\]`)
	// trailing commas before ] or }
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// DecodeStructured pulls a JSON document out of model output. Models wrap
// JSON in code fences and prose, and leave trailing commas behind.
func DecodeStructured(content string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyResponse
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	for _, candidate := range candidates(trimmed) {
		cleaned := trailingCommaPattern.ReplaceAllString(strings.TrimSpace(candidate), "$1")
		if cleaned != "" && json.Valid([]byte(cleaned)) {
			return json.RawMessage(cleaned), nil
		}
	}
	return nil, ErrMalformedJSON
}

func candidates(content string) []string {
	var out []string
	if m := fencedBlockPattern.FindStringSubmatch(content); len(m) > 1 {
		out = append(out, m[1])
	}

	obj := jsonObjectPattern.FindString(content)
	arr := jsonArrayPattern.FindString(content)
	// prefer whichever opens first, so an array of objects is not cut to its first element
	if arr != "" && (obj == "" || strings.Index(content, arr) < strings.Index(content, obj)) {
		out = append(out, arr, obj)
	} else {
		out = append(out, obj, arr)
	}
	return out
}
