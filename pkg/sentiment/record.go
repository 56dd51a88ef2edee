package sentiment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Sentiment labels produced by the analysis models
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// Record is a stored sentiment representation. It is either a triple of
// percentages or a label with a score in [-1, 1].
type Record struct {
	Positive *float64 `json:"positive,omitempty"`
	Neutral  *float64 `json:"neutral,omitempty"`
	Negative *float64 `json:"negative,omitempty"`

	Label *string  `json:"sentiment,omitempty"`
	Score *float64 `json:"score,omitempty"`
}

// NewScalar creates a label/score record
func NewScalar(label string, score float64) *Record {
	return &Record{Label: &label, Score: &score}
}

// NewTriple creates a percentage triple record
func NewTriple(positive, neutral, negative float64) *Record {
	return &Record{Positive: &positive, Neutral: &neutral, Negative: &negative}
}

// HasTriple reports whether the record is in percentage form. The positive
// field selects it; a missing neutral or negative counts as 0.
func (r *Record) HasTriple() bool {
	return r != nil && r.Positive != nil
}

// HasScalar reports whether the record has a non-empty label and a finite score
func (r *Record) HasScalar() bool {
	if r == nil || r.Label == nil || r.Score == nil {
		return false
	}
	return strings.TrimSpace(*r.Label) != "" && isFinite(*r.Score)
}

// LabelOr returns the lower-cased label or def when unset
func (r *Record) LabelOr(def string) string {
	if r == nil || r.Label == nil || strings.TrimSpace(*r.Label) == "" {
		return def
	}
	return strings.ToLower(strings.TrimSpace(*r.Label))
}

// ParseRecord decodes a stored sentiment payload. Numbers may be JSON numbers
// or numeric strings. Empty, null and key-less payloads decode to nil.
func ParseRecord(raw []byte) (*Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode sentiment record: %w", err)
	}

	rec := &Record{
		Positive: number(fields, "positive"),
		Neutral:  number(fields, "neutral"),
		Negative: number(fields, "negative"),
		Score:    number(fields, "score"),
	}
	if label, ok := fields["sentiment"].(string); ok {
		rec.Label = &label
	}

	if !rec.HasTriple() && rec.Label == nil && rec.Score == nil {
		return nil, nil
	}
	return rec, nil
}

func number(fields map[string]interface{}, key string) *float64 {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}

	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	case float64:
		f = t
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &f
}
