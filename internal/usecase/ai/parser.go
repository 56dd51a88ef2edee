package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/johnquangdev/meetly/internal/domain/entities"
)

// defaultSentiment is stored when the model returned no usable sentiment object
var defaultSentiment = []byte(`{"sentiment":"neutral","score":0.0}`)

var fencePattern = regexp.MustCompile("```(?:json|JSON)?")

// Parser turns raw model completions into entities.Analysis
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseAnalysis never fails: malformed completions yield an empty analysis
// with the default neutral sentiment.
func (p *Parser) ParseAnalysis(raw string) *entities.Analysis {
	data := decodeObject(extractJSON(raw))

	result := &entities.Analysis{
		Summary:     toStrings(data["summary"]),
		ActionItems: toActionItems(firstPresent(data, "action_items", "actions")),
		Decisions:   toStrings(data["decisions"]),
	}

	if s, ok := data["sentiment"]; ok && isObject(s) {
		result.Sentiment = append([]byte(nil), s...)
	} else {
		result.Sentiment = append([]byte(nil), defaultSentiment...)
		result.SentimentMissing = true
	}
	return result
}

// extractJSON strips markdown fences and keeps the outermost JSON object or array
func extractJSON(content string) string {
	content = strings.TrimSpace(fencePattern.ReplaceAllString(content, ""))

	start := strings.IndexAny(content, "{[")
	if start == -1 {
		return content
	}
	closer := "}"
	if content[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(content, closer)
	if end < start {
		return content[start:]
	}
	return content[start : end+1]
}

func decodeObject(s string) map[string]json.RawMessage {
	var data map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &data); err != nil || data == nil {
		return map[string]json.RawMessage{}
	}
	return data
}

func firstPresent(data map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := data[k]; ok && !isEmptyValue(v) {
			return v
		}
	}
	return nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 2 && raw[0] == '{' && json.Valid(raw)
}

func isEmptyValue(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "[]", "{}", `""`, "false", "0":
		return true
	}
	return false
}

// toStrings accepts a list of strings, numbers or single-key objects; other shapes are skipped
func toStrings(raw json.RawMessage) []string {
	out := []string{}
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		var single string
		if json.Unmarshal(raw, &single) == nil && strings.TrimSpace(single) != "" {
			out = append(out, strings.TrimSpace(single))
		}
		return out
	}
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		case float64, bool:
			out = append(out, fmt.Sprint(v))
		case map[string]interface{}:
			for _, key := range []string{"text", "decision", "summary", "point"} {
				if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
					break
				}
			}
		}
	}
	return out
}

func toActionItems(raw json.RawMessage) []entities.ActionItem {
	out := []entities.ActionItem{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var text string
		if json.Unmarshal(item, &text) == nil {
			if text = strings.TrimSpace(text); text != "" {
				out = append(out, entities.ActionItem{Task: text})
			}
			continue
		}

		var obj map[string]interface{}
		if json.Unmarshal(item, &obj) != nil {
			continue
		}
		ai := entities.ActionItem{
			Assignee: optionalString(obj["assignee"]),
			Task:     stringOr(obj["task"], stringOr(obj["title"], "")),
			Due:      optionalString(obj["due"]),
			Context:  stringOr(obj["context"], ""),
		}
		if ai.Task == "" && ai.Context == "" {
			continue
		}
		out = append(out, ai)
	}
	return out
}

func optionalString(v interface{}) *string {
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	if !ok || s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

func stringOr(v interface{}, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}
