package ai

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseAnalysis_FencedJSON(t *testing.T) {
	raw := "Here you go:\n```json\n" + `{
  "summary": ["Budget approved", "  ", 42],
  "action_items": [
    {"assignee": "Priya", "task": "Draft the rollout plan", "due": "Friday", "context": "launch"},
    {"assignee": null, "task": "", "context": ""},
    "Book the venue"
  ],
  "decisions": ["Ship in Q3"],
  "sentiment": {"sentiment": "positive", "score": 0.6}
}` + "\n```"

	got := NewParser().ParseAnalysis(raw)

	if want := []string{"Budget approved", "42"}; strings.Join(got.Summary, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected summary %v", got.Summary)
	}
	if len(got.ActionItems) != 2 {
		t.Fatalf("expected 2 action items, got %+v", got.ActionItems)
	}
	first := got.ActionItems[0]
	if first.Assignee == nil || *first.Assignee != "Priya" || first.Due == nil || *first.Due != "Friday" {
		t.Fatalf("unexpected first item %+v", first)
	}
	if got.ActionItems[1].Task != "Book the venue" || got.ActionItems[1].Assignee != nil {
		t.Fatalf("unexpected string item %+v", got.ActionItems[1])
	}
	if got.SentimentMissing {
		t.Fatal("sentiment should be present")
	}
	var s map[string]interface{}
	if err := json.Unmarshal(got.Sentiment, &s); err != nil || s["sentiment"] != "positive" {
		t.Fatalf("unexpected sentiment %s", got.Sentiment)
	}
}

func TestParseAnalysis_ActionsAlias(t *testing.T) {
	got := NewParser().ParseAnalysis(`{"action_items": [], "actions": [{"task": "Send notes"}]}`)
	if len(got.ActionItems) != 1 || got.ActionItems[0].Task != "Send notes" {
		t.Fatalf("expected alias to be used, got %+v", got.ActionItems)
	}
}

func TestParseAnalysis_Garbage(t *testing.T) {
	for _, raw := range []string{"", "I could not summarise this meeting.", "{not json", `["a", "b"]`, `{"sentiment": {}}`, `{"sentiment": "positive"}`} {
		got := NewParser().ParseAnalysis(raw)
		if got.Summary == nil || got.ActionItems == nil || got.Decisions == nil {
			t.Fatalf("%q: expected empty, non-nil slices", raw)
		}
		if !got.SentimentMissing || string(got.Sentiment) != `{"sentiment":"neutral","score":0.0}` {
			t.Fatalf("%q: expected default sentiment, got %s", raw, got.Sentiment)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```":      `{"a":1}`,
		"prefix {\"a\":{\"b\":2}} tail": `{"a":{"b":2}}`,
		"plain text":                   "plain text",
	}
	for in, want := range tests {
		if got := extractJSON(in); got != want {
			t.Errorf("extractJSON(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitTranscript(t *testing.T) {
	if got := SplitTranscript("  short  ", 100); len(got) != 1 || got[0] != "short" {
		t.Fatalf("unexpected single chunk %q", got)
	}

	transcript := strings.Repeat("Alice: we should ship the beta soon.\n", 40)
	chunks := SplitTranscript(transcript, 200)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		if len(c) > 200 {
			t.Fatalf("chunk exceeds size: %d", len(c))
		}
		if !strings.HasPrefix(c, "Alice:") {
			t.Fatalf("chunk should start on a line boundary: %q", c[:20])
		}
		total += strings.Count(c, "Alice:")
	}
	if total != 40 {
		t.Fatalf("lost lines while splitting: %d", total)
	}

	// No spaces or newlines: falls back to a hard cut on a rune boundary
	runes := SplitTranscript(strings.Repeat("é", 50), 15)
	for _, c := range runes {
		if !utf8.ValidString(c) {
			t.Fatalf("chunk split inside a rune: %q", c)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Bob: hi", 2, 3)
	if !strings.Contains(p, "part 2 of 3") || !strings.HasSuffix(p, "Meeting transcript:\nBob: hi\n") {
		t.Fatalf("unexpected prompt:\n%s", p)
	}
	if strings.Contains(BuildPrompt("Bob: hi", 1, 1), "part 1") {
		t.Fatal("single transcript prompt should not mention parts")
	}
}
