// Package llmjson decodes JSON objects out of free-form model replies.
package llmjson

import (
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"
)

// Outcome reports how a reply was decoded.
type Outcome string

const (
	OK       Outcome = "ok"
	Repaired Outcome = "repaired"
	Failed   Outcome = "failed"
)

// Decode unmarshals the outermost JSON object in text into v, which must be a
// non-nil pointer. Replies that only decode after repair report Repaired.
// Anything that is not an object, including a bare null, reports Failed and
// leaves v zeroed.
func Decode(text string, v any) Outcome {
	body := OutermostObject(text)

	if strings.HasPrefix(body, "{") {
		if err := json.Unmarshal([]byte(body), v); err == nil {
			return OK
		}
		reset(v)
	}

	repaired, err := jsonrepair.JSONRepair(body)
	if err != nil || !strings.HasPrefix(strings.TrimSpace(repaired), "{") {
		return Failed
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		reset(v)
		return Failed
	}
	return Repaired
}

// OutermostObject strips code fences and surrounding prose.
func OutermostObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return strings.TrimSpace(text)
	}
	end := strings.LastIndexByte(text, '}')
	if end < start {
		return text[start:]
	}
	return text[start : end+1]
}

func reset(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
}
