package meeting

import (
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	usecaseErrors "github.com/johnquangdev/meetly/internal/usecase/errors"
)

// UploadKind classifies an uploaded file
type UploadKind int

const (
	UploadUnsupported UploadKind = iota
	UploadText
	UploadSubtitles
	UploadAudio
)

var (
	textExtensions     = map[string]bool{".txt": true, ".md": true, ".markdown": true, ".log": true}
	subtitleExtensions = map[string]bool{".vtt": true, ".srt": true}
	audioExtensions    = map[string]bool{
		".mp3": true, ".wav": true, ".m4a": true, ".ogg": true, ".flac": true,
		".webm": true, ".mp4": true, ".aac": true, ".opus": true,
	}

	cueTiming = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?[.,]\d{3}\s+-->\s+`)
	cueIndex  = regexp.MustCompile(`^\d+$`)
)

// DetectUpload decides how an upload is turned into a transcript.
// The file extension wins over the declared content type.
func DetectUpload(filename, contentType string) UploadKind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case subtitleExtensions[ext]:
		return UploadSubtitles
	case textExtensions[ext]:
		return UploadText
	case audioExtensions[ext]:
		return UploadAudio
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return UploadUnsupported
	}
	switch {
	case mediaType == "text/vtt":
		return UploadSubtitles
	case strings.HasPrefix(mediaType, "text/"):
		return UploadText
	case strings.HasPrefix(mediaType, "audio/"), strings.HasPrefix(mediaType, "video/"):
		return UploadAudio
	}
	return UploadUnsupported
}

// DecodeText returns the transcript text of a text or subtitle upload
func DecodeText(data []byte, kind UploadKind) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", usecaseErrors.ErrUnsupportedUpload)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if kind == UploadSubtitles {
		text = stripCues(text)
	}
	return strings.TrimSpace(text), nil
}

// stripCues drops WEBVTT headers, cue numbers and timing lines from subtitles
func stripCues(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "WEBVTT"), strings.HasPrefix(trimmed, "NOTE"):
			continue
		case cueIndex.MatchString(trimmed), cueTiming.MatchString(trimmed):
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

// titleFromFilename turns "weekly_sync-notes.txt" into "weekly sync notes"
func titleFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Join(strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}), " ")
	if base == "" || base == "." {
		return ""
	}
	return base
}
