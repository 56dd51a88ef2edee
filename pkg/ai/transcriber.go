package ai

import (
	"context"
	"fmt"
	"io"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meetly/pkg/config"
)

// Transcriber turns uploaded audio into transcript text
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// AssemblyAITranscriber transcribes audio with the AssemblyAI SDK
type AssemblyAITranscriber struct {
	client   *aai.Client
	language string
}

// NewAssemblyAITranscriber returns nil when no API key is configured
func NewAssemblyAITranscriber(cfg *config.AssemblyAIConfig) *AssemblyAITranscriber {
	if cfg == nil || cfg.APIKey == "" {
		return nil
	}
	return &AssemblyAITranscriber{
		client:   aai.NewClient(cfg.APIKey),
		language: cfg.LanguageCode,
	}
}

// Transcribe uploads the audio and waits for the transcript to complete
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
		Punctuate:     aai.Bool(true),
	}
	if t.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(t.language)
	}

	transcript, err := t.client.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("assemblyai transcription failed: %s", aai.ToString(transcript.Error))
	}

	// Prefer speaker-labelled lines when utterances are available
	if len(transcript.Utterances) > 0 {
		var sb strings.Builder
		for _, u := range transcript.Utterances {
			fmt.Fprintf(&sb, "Speaker %s: %s\n", aai.ToString(u.Speaker), aai.ToString(u.Text))
		}
		return strings.TrimSpace(sb.String()), nil
	}
	return strings.TrimSpace(aai.ToString(transcript.Text)), nil
}
