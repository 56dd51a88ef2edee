package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestObjectName(t *testing.T) {
	id := uuid.MustParse("6f1c1c4e-8d2a-4a4e-9c55-1b2f3a4d5e6f")
	at := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		filename string
		want     string
	}{
		{"standup.txt", "transcripts/2025-03-09/" + id.String() + "-standup.txt"},
		{"../../etc/passwd", "transcripts/2025-03-09/" + id.String() + "-passwd"},
		{`C:\calls\Weekly Sync (1).mp3`, "transcripts/2025-03-09/" + id.String() + "-Weekly_Sync_1_.mp3"},
		{"", "transcripts/2025-03-09/" + id.String() + "-upload"},
	}

	for _, tt := range tests {
		if got := ObjectName(at, id, tt.filename); got != tt.want {
			t.Errorf("ObjectName(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
