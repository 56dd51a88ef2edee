package ai

import (
	"fmt"
	"strings"
)

const promptTemplate = `
You are a JSON-only meeting summarizer.
Return **only valid JSON** with this exact schema, no markdown, no explanations.
If a section has no clear data, still include an empty object or a brief inferred item.

Schema:
{
  "summary": ["<bullet1>", "<bullet2>", "<bullet3>"],
  "action_items": [
    {
      "assignee": "<name or null>",
      "task": "<task or inferred task>",
      "due": "<date or null>",
      "context": "<short context>"
    }
  ],
  "decisions": ["<decision1>", "<decision2>"],
  "sentiment": {"sentiment": "<positive|neutral|negative>", "score": <float between -1 and 1>}
}
`

// BuildPrompt renders the summarizer prompt for one transcript (or one chunk of it).
// part and total describe the chunk position; total <= 1 means the full transcript.
func BuildPrompt(transcript string, part, total int) string {
	var sb strings.Builder
	sb.WriteString(promptTemplate)
	if total > 1 {
		fmt.Fprintf(&sb, "\nThis is part %d of %d of a longer meeting. Summarize only this part.\n", part, total)
	}
	sb.WriteString("\nMeeting transcript:\n")
	sb.WriteString(transcript)
	sb.WriteString("\n")
	return sb.String()
}

// SplitTranscript cuts a transcript into chunks of at most size bytes,
// preferring line breaks and then spaces as cut points.
func SplitTranscript(transcript string, size int) []string {
	transcript = strings.TrimSpace(transcript)
	if size <= 0 || len(transcript) <= size {
		return []string{transcript}
	}

	var chunks []string
	rest := transcript
	for len(rest) > size {
		cut := strings.LastIndex(rest[:size], "\n")
		if cut < size/2 {
			cut = strings.LastIndex(rest[:size], " ")
		}
		if cut < size/2 {
			cut = runeBoundary(rest, size)
		}
		if chunk := strings.TrimSpace(rest[:cut]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		rest = strings.TrimSpace(rest[cut:])
	}
	if rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}

// runeBoundary backs off from n until it lands on the start of a UTF-8 sequence
func runeBoundary(s string, n int) int {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	if n == 0 {
		return len(s)
	}
	return n
}
