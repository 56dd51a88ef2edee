package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/internal/domain/entities"
	pkgai "github.com/johnquangdev/meetly/pkg/ai"
	"github.com/johnquangdev/meetly/pkg/sentiment"
)

// maxConcurrentChunks bounds parallel provider calls for one long transcript
const maxConcurrentChunks = 2

// Service runs transcript analysis against the configured language model
type Service interface {
	Analyze(ctx context.Context, transcript string) (*entities.Analysis, error)
}

type aiService struct {
	analyzer  pkgai.Analyzer
	parser    *Parser
	chunkSize int
	logger    *zap.Logger
}

// NewAIService constructs a new AI service. Transcripts longer than chunkSize
// bytes are analysed chunk by chunk and merged.
func NewAIService(analyzer pkgai.Analyzer, chunkSize int, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &aiService{
		analyzer:  analyzer,
		parser:    NewParser(),
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// Analyze returns the structured analysis of a transcript
func (s *aiService) Analyze(ctx context.Context, transcript string) (*entities.Analysis, error) {
	chunks := SplitTranscript(transcript, s.chunkSize)
	start := time.Now()

	if len(chunks) == 1 {
		raw, err := s.analyzer.Analyze(ctx, BuildPrompt(chunks[0], 1, 1))
		if err != nil {
			return nil, fmt.Errorf("%s analysis failed: %w", s.analyzer.Name(), err)
		}
		result := s.parser.ParseAnalysis(raw)
		s.logger.Info("🤖 Transcript analysed",
			zap.String("provider", s.analyzer.Name()),
			zap.Int("transcript_length", len(transcript)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return result, nil
	}

	results := make([]*entities.Analysis, len(chunks))
	errs := make([]error, len(chunks))
	sem := make(chan struct{}, maxConcurrentChunks)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-sem }()

			raw, err := s.analyzer.Analyze(ctx, BuildPrompt(chunk, i+1, len(chunks)))
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = s.parser.ParseAnalysis(raw)
		}(i, chunk)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s analysis of chunk %d/%d failed: %w", s.analyzer.Name(), i+1, len(chunks), err)
		}
	}

	merged := MergeAnalyses(results)
	s.logger.Info("🤖 Long transcript analysed in chunks",
		zap.String("provider", s.analyzer.Name()),
		zap.Int("transcript_length", len(transcript)),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return merged, nil
}

// MergeAnalyses concatenates per-chunk results in order, dropping repeated
// bullets and tasks, and averages the chunk sentiments.
func MergeAnalyses(parts []*entities.Analysis) *entities.Analysis {
	merged := &entities.Analysis{
		Summary:     []string{},
		ActionItems: []entities.ActionItem{},
		Decisions:   []string{},
	}
	seenSummary := map[string]bool{}
	seenDecision := map[string]bool{}
	seenTask := map[string]bool{}
	var records []*sentiment.Record

	for _, p := range parts {
		if p == nil {
			continue
		}
		merged.Summary = appendUnique(merged.Summary, seenSummary, p.Summary)
		merged.Decisions = appendUnique(merged.Decisions, seenDecision, p.Decisions)
		for _, item := range p.ActionItems {
			key := dedupKey(item.Task + "|" + item.Context)
			if seenTask[key] {
				continue
			}
			seenTask[key] = true
			merged.ActionItems = append(merged.ActionItems, item)
		}
		if !p.SentimentMissing {
			if rec, err := sentiment.ParseRecord(p.Sentiment); err == nil && rec != nil {
				records = append(records, rec)
			}
		}
	}

	if avg := sentiment.Average(records); avg != nil {
		b, _ := json.Marshal(avg)
		merged.Sentiment = b
		return merged
	}
	// No scalar to average; keep the first usable record as-is
	if len(records) > 0 {
		b, _ := json.Marshal(records[0])
		merged.Sentiment = b
		return merged
	}
	merged.Sentiment = append([]byte(nil), defaultSentiment...)
	merged.SentimentMissing = true
	return merged
}

func appendUnique(dst []string, seen map[string]bool, items []string) []string {
	for _, s := range items {
		key := dedupKey(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		dst = append(dst, s)
	}
	return dst
}

func dedupKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
