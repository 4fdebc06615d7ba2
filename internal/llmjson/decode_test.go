package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type reply struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		outcome Outcome
		want    reply
	}{
		{"plain", `{"title": "Clay", "tags": ["a"]}`, OK, reply{Title: "Clay", Tags: []string{"a"}}},
		{"fenced", "```json\n{\"title\": \"Clay\"}\n```", OK, reply{Title: "Clay"}},
		{"truncated", `{"title": "Clay", "tags": ["a", "b"`, Repaired, reply{Title: "Clay", Tags: []string{"a", "b"}}},
		{"single quotes", `{'title': 'Clay'}`, Repaired, reply{Title: "Clay"}},
		{"null", "null", Failed, reply{}},
		{"array", `["title"]`, Failed, reply{}},
		{"prose", "I cannot help with that.", Failed, reply{}},
		{"empty", "", Failed, reply{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got reply
			assert.Equal(t, tt.outcome, Decode(tt.text, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutermostObject(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, OutermostObject(`Sure! {"a": {"b": 1}} Done.`))
	assert.Equal(t, `{"a": 1`, OutermostObject(`text {"a": 1`))
	assert.Equal(t, "null", OutermostObject("  null "))
}
