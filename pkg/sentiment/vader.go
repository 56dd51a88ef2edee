package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

// Compound score thresholds used to label a VADER score
const (
	PositiveThreshold = 0.20
	NegativeThreshold = -0.20
)

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
)

// Vader scores free text locally, without a model round trip
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader creates a VADER scorer. Building the lexicon is not free, share one instance.
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound score and its label for text
func (v *Vader) Score(text string) (float64, string) {
	plain := PlainText(text)
	if plain == "" {
		return 0, LabelNeutral
	}
	score := v.analyzer.PolarityScores(plain).Compound
	return score, LabelFor(score)
}

// Record scores text and returns it as a scalar record
func (v *Vader) Record(text string) *Record {
	score, label := v.Score(text)
	return NewScalar(label, score)
}

// LabelFor maps a compound score to a label
func LabelFor(score float64) string {
	switch {
	case score >= PositiveThreshold:
		return LabelPositive
	case score <= NegativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// PlainText flattens markdown and drops links so pasted notes score like speech
func PlainText(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := html.UnescapeString(htmlTag.ReplaceAllString(string(output), " "))
	plain = bareURL.ReplaceAllString(plain, "")
	return strings.Join(strings.Fields(plain), " ")
}
