// Package jsonx decodes JSON produced by language models. Model output is an
// untrusted format: it arrives wrapped in markdown fences, with trailing
// commas, unquoted keys or commentary around the payload. Decoding goes
// through encoding/json first and falls back to jsonrepair on syntax errors.
package jsonx

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

// Unmarshal unmarshals data into v, attempting to repair malformed JSON.
// If the initial unmarshal fails with a syntax error, it tries to repair the
// document using jsonrepair before retrying.
func Unmarshal(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}

// TrimFences strips a surrounding markdown code fence (``` or ```json) from
// model output, returning the inner document. Input without fences is
// returned trimmed.
func TrimFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:] // drop the language tag line
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// StringArray extracts an array of strings at path from a JSON document,
// returning nil when the document is invalid or the path does not hold an
// array.
func StringArray(doc, path string) []string {
	if !gjson.Valid(doc) {
		return nil
	}
	res := gjson.Get(doc, path)
	if !res.IsArray() {
		return nil
	}
	var out []string
	res.ForEach(func(_, value gjson.Result) bool {
		out = append(out, value.String())
		return true
	})
	return out
}
