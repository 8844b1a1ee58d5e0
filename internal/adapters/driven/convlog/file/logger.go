// Package file writes finished conversations to the log directory in the
// configured record format.
package file

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
)

// Ensure Logger implements the interface.
var _ driven.ConversationLogger = (*Logger)(nil)

const (
	timestampLayout = "2006-01-02 15:04:05"
	separator       = "================================================================================"
)

// Logger persists conversations as txt, json, or csv files. The filename
// derives from the conversation id and start time, so re-logging the same
// conversation overwrites its record.
type Logger struct {
	dir    string
	format domain.LogFormat
}

// NewLogger creates a conversation logger, ensuring the log directory
// exists.
func NewLogger(dir string, format domain.LogFormat) (*Logger, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: unsupported log format %q", domain.ErrConfig, format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}
	return &Logger{dir: dir, format: format}, nil
}

// Log persists the conversation and returns the record's path.
func (l *Logger) Log(conv *domain.Conversation) (string, error) {
	path := filepath.Join(l.dir, l.filename(conv))

	var err error
	switch l.format {
	case domain.LogFormatText:
		err = l.writeText(path, conv)
	case domain.LogFormatJSON:
		err = l.writeJSON(path, conv)
	case domain.LogFormatCSV:
		err = l.writeCSV(path, conv)
	}
	if err != nil {
		return "", fmt.Errorf("log conversation %s: %w", conv.ID(), err)
	}
	return path, nil
}

func (l *Logger) filename(conv *domain.Conversation) string {
	return fmt.Sprintf("conversation_%s_%s.%s",
		conv.ID(), conv.StartedAt().Format("20060102_150405"), l.format)
}

func (l *Logger) writeText(path string, conv *domain.Conversation) error {
	var sb strings.Builder

	sb.WriteString("CONVERSATION LOG\n")
	fmt.Fprintf(&sb, "Conversation ID: %s\n", conv.ID())
	fmt.Fprintf(&sb, "Persona ID: %s\n", conv.PersonaID())
	fmt.Fprintf(&sb, "Status: %s\n", conv.Status())
	fmt.Fprintf(&sb, "Started: %s\n", conv.StartedAt().Format(timestampLayout))
	if ended := conv.EndedAt(); ended != nil {
		fmt.Fprintf(&sb, "Ended: %s\n", ended.Format(timestampLayout))
		if d, ok := conv.Duration(); ok {
			fmt.Fprintf(&sb, "Duration: %.2f seconds\n", d.Seconds())
		}
	}
	fmt.Fprintf(&sb, "Total Messages: %d\n", conv.MessageCount())
	sb.WriteString("\n" + separator + "\n\n")

	for _, m := range conv.Messages() {
		sb.WriteString(m.DisplayFormat())
		sb.WriteString("\n\n")
	}

	sb.WriteString(separator + "\n")
	fmt.Fprintf(&sb, "\nConversation Status: %s\n", conv.Status())

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// jsonRecord is the on-disk json shape of a logged conversation.
type jsonRecord struct {
	ConversationID string        `json:"conversation_id"`
	PersonaID      string        `json:"persona_id"`
	Status         string        `json:"status"`
	StartedAt      time.Time     `json:"started_at"`
	EndedAt        *time.Time    `json:"ended_at,omitempty"`
	Messages       []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func (l *Logger) writeJSON(path string, conv *domain.Conversation) error {
	rec := jsonRecord{
		ConversationID: conv.ID(),
		PersonaID:      conv.PersonaID(),
		Status:         conv.Status().String(),
		StartedAt:      conv.StartedAt(),
		EndedAt:        conv.EndedAt(),
	}
	for _, m := range conv.Messages() {
		rec.Messages = append(rec.Messages, jsonMessage{
			Role:      m.Role.String(),
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Metadata:  m.Metadata,
		})
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (l *Logger) writeCSV(path string, conv *domain.Conversation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	rows := [][]string{
		{"Conversation ID", conv.ID()},
		{"Persona ID", conv.PersonaID()},
		{"Status", conv.Status().String()},
		{"Started At", conv.StartedAt().Format(time.RFC3339)},
	}
	if ended := conv.EndedAt(); ended != nil {
		rows = append(rows, []string{"Ended At", ended.Format(time.RFC3339)})
	}
	rows = append(rows, []string{}, []string{"Timestamp", "Role", "Content"})

	for _, m := range conv.Messages() {
		rows = append(rows, []string{
			m.Timestamp.Format(time.RFC3339),
			m.Role.String(),
			m.Content,
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}
