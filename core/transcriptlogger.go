package orchestration

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/venla-ai/intake-core/core/events"
)

// TranscriptRecord is the durable outcome of one call.
type TranscriptRecord struct {
	SessionID    string
	CallerPhone  string
	Name         string
	Email        string
	Status       CompletionStatus
	HangupReason events.HangupReason
	StartedAt    time.Time
	EndedAt      time.Time
	Turns        []Turn
}

// RenderTranscript renders the conversation as alternating speaker-prefixed
// lines, e.g. "USER: yes that's right".
func (r TranscriptRecord) RenderTranscript() string {
	var b strings.Builder
	for _, turn := range r.Turns {
		b.WriteString(string(turn.Speaker))
		b.WriteString(": ")
		b.WriteString(turn.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func buildTranscriptRecord(session *CallSession, reason events.HangupReason) TranscriptRecord {
	snapshot := session.Snapshot()
	return TranscriptRecord{
		SessionID:    snapshot.ID,
		CallerPhone:  snapshot.CallerPhone,
		Name:         snapshot.ExtractedName,
		Email:        snapshot.ExtractedEmail,
		Status:       snapshot.Completion,
		HangupReason: reason,
		StartedAt:    snapshot.StartedAt,
		EndedAt:      time.Now(),
		Turns:        snapshot.Turns,
	}
}

// TranscriptRecorder persists call outcomes. Persistence is best-effort;
// failures must not take the call down.
type TranscriptRecorder interface {
	Log(ctx context.Context, record TranscriptRecord) error
}

const contactsFileName = "contacts.csv"

var contactsHeader = []string{"timestamp", "session_id", "caller_phone", "name", "email", "status"}

// FileTranscriptRecorder appends contact rows to a CSV file and writes one
// transcript file per call under the configured directory.
type FileTranscriptRecorder struct {
	dir string
	mu  sync.Mutex
}

func NewFileTranscriptRecorder(dir string) *FileTranscriptRecorder {
	return &FileTranscriptRecorder{dir: dir}
}

func (r *FileTranscriptRecorder) Log(_ context.Context, record TranscriptRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}

	if err := r.appendContact(record); err != nil {
		return err
	}
	return r.writeTranscript(record)
}

func (r *FileTranscriptRecorder) appendContact(record TranscriptRecord) error {
	path := filepath.Join(r.dir, contactsFileName)

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open contacts file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if isNew {
		if err := writer.Write(contactsHeader); err != nil {
			return fmt.Errorf("failed to write contacts header: %w", err)
		}
	}
	if err := writer.Write([]string{
		record.EndedAt.UTC().Format(time.RFC3339),
		record.SessionID,
		record.CallerPhone,
		record.Name,
		record.Email,
		string(record.Status),
	}); err != nil {
		return fmt.Errorf("failed to write contact row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush contacts file: %w", err)
	}
	return nil
}

func (r *FileTranscriptRecorder) writeTranscript(record TranscriptRecord) error {
	path := filepath.Join(r.dir, record.SessionID+".txt")
	if err := os.WriteFile(path, []byte(record.RenderTranscript()), 0o644); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}
	return nil
}
