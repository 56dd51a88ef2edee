package sentiment

import (
	"math"
	"strings"
)

// Bucket names, in display order
const (
	NamePositive = "Positive"
	NameNeutral  = "Neutral"
	NameNegative = "Negative"
)

// Palette holds the slice colors used for a breakdown
type Palette struct {
	Positive string
	Neutral  string
	Negative string
}

// DefaultPalette is the palette of the meeting details page
var DefaultPalette = Palette{
	Positive: "#22C55E",
	Neutral:  "#EAB308",
	Negative: "#EF4444",
}

// AnalyzePalette is the palette of the analyze page, which draws neutral lighter
var AnalyzePalette = Palette{
	Positive: "#22C55E",
	Neutral:  "#FACC15",
	Negative: "#EF4444",
}

// Slice is one bucket of a breakdown
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Breakdown is the ordered Positive, Neutral, Negative view of a sentiment record.
// An empty breakdown means no usable sentiment data.
type Breakdown []Slice

// IsEmpty reports whether the breakdown carries no data
func (b Breakdown) IsEmpty() bool {
	return len(b) == 0
}

// Synthesizer turns sentiment records into breakdowns with a fixed palette
type Synthesizer struct {
	palette Palette
}

// NewSynthesizer creates a synthesizer. Empty palette colors fall back to DefaultPalette.
func NewSynthesizer(p Palette) *Synthesizer {
	if p.Positive == "" {
		p.Positive = DefaultPalette.Positive
	}
	if p.Neutral == "" {
		p.Neutral = DefaultPalette.Neutral
	}
	if p.Negative == "" {
		p.Negative = DefaultPalette.Negative
	}
	return &Synthesizer{palette: p}
}

// Synthesize builds the breakdown with the default palette
func Synthesize(rec *Record) Breakdown {
	return NewSynthesizer(DefaultPalette).Synthesize(rec)
}

// Synthesize builds the three-bucket breakdown for rec.
//
// Triple records pass through unchanged. Scalar records are mapped with the
// positive and negative heuristics below; they are intentionally asymmetric.
// Scores are clamped to [-1, 1] before mapping.
func (s *Synthesizer) Synthesize(rec *Record) Breakdown {
	if rec == nil {
		return Breakdown{}
	}

	if rec.HasTriple() {
		return s.build(valueOr(rec.Positive), valueOr(rec.Neutral), valueOr(rec.Negative))
	}

	if !rec.HasScalar() {
		return Breakdown{}
	}

	score := clampScore(*rec.Score)

	var positive, neutral, negative float64
	switch strings.ToLower(strings.TrimSpace(*rec.Label)) {
	case LabelPositive:
		positive = math.Round((score + 1) * 50)
		neutral = 100 - positive*0.8
		negative = math.Max(0, 100-positive-neutral)
	case LabelNegative:
		negative = math.Round(math.Abs(score) * 80)
		neutral = 100 - negative*0.8
		positive = math.Max(0, 100-negative-neutral)
	default:
		positive, neutral, negative = 33, 34, 33
	}

	return s.build(positive, neutral, negative)
}

func (s *Synthesizer) build(positive, neutral, negative float64) Breakdown {
	return Breakdown{
		{Name: NamePositive, Value: positive, Color: s.palette.Positive},
		{Name: NameNeutral, Value: neutral, Color: s.palette.Neutral},
		{Name: NameNegative, Value: negative, Color: s.palette.Negative},
	}
}

// Gauge returns the dashboard gauge position (0-100) for a scalar record
func Gauge(rec *Record) (float64, bool) {
	if rec == nil || rec.Score == nil || !isFinite(*rec.Score) {
		return 0, false
	}
	return math.Min(math.Max(*rec.Score*50+50, 0), 100), true
}

func clampScore(score float64) float64 {
	return math.Min(math.Max(score, -1), 1)
}

func valueOr(v *float64) float64 {
	if v == nil || !isFinite(*v) {
		return 0
	}
	return *v
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
