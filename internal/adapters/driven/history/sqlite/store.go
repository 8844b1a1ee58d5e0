// Package sqlite indexes finished conversation summaries in a local
// SQLite database so the history command works without scanning log
// files.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS conversation_summaries (
	conversation_id    TEXT PRIMARY KEY,
	persona_id         TEXT NOT NULL,
	status             TEXT NOT NULL,
	started_at         TEXT NOT NULL,
	ended_at           TEXT,
	total_messages     INTEGER NOT NULL,
	user_messages      INTEGER NOT NULL,
	assistant_messages INTEGER NOT NULL,
	log_path           TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_summaries_started_at
	ON conversation_summaries(started_at DESC);
`

// Store is a SQLite-backed conversation history index.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the history database at the given path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	// WAL mode keeps a mid-session crash from corrupting the index
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Save records a conversation summary, replacing any previous record for
// the same conversation.
func (s *Store) Save(summary domain.Summary) error {
	var endedAt any
	if summary.EndedAt != nil {
		endedAt = summary.EndedAt.UTC().Format(time.RFC3339Nano)
	}

	_, err := s.db.Exec(`
		INSERT INTO conversation_summaries
			(conversation_id, persona_id, status, started_at, ended_at,
			 total_messages, user_messages, assistant_messages, log_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(conversation_id) DO UPDATE SET
			status = excluded.status,
			ended_at = excluded.ended_at,
			total_messages = excluded.total_messages,
			user_messages = excluded.user_messages,
			assistant_messages = excluded.assistant_messages,
			log_path = excluded.log_path`,
		summary.ConversationID,
		summary.PersonaID,
		summary.Status.String(),
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		endedAt,
		summary.TotalMessages,
		summary.UserMessages,
		summary.AssistantMsgs,
		summary.LogPath,
	)
	if err != nil {
		return fmt.Errorf("saving summary %s: %w", summary.ConversationID, err)
	}
	return nil
}

// List returns recorded summaries, most recent first. A non-positive
// limit returns everything.
func (s *Store) List(limit int) ([]domain.Summary, error) {
	query := `
		SELECT conversation_id, persona_id, status, started_at, ended_at,
		       total_messages, user_messages, assistant_messages, log_path
		FROM conversation_summaries
		ORDER BY started_at DESC`

	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}
	defer rows.Close()

	var out []domain.Summary
	for rows.Next() {
		var (
			summary   domain.Summary
			status    string
			startedAt string
			endedAt   sql.NullString
		)
		if err := rows.Scan(
			&summary.ConversationID,
			&summary.PersonaID,
			&status,
			&startedAt,
			&endedAt,
			&summary.TotalMessages,
			&summary.UserMessages,
			&summary.AssistantMsgs,
			&summary.LogPath,
		); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}

		summary.Status = domain.ConversationStatus(status)
		if summary.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parsing started_at for %s: %w", summary.ConversationID, err)
		}
		if endedAt.Valid {
			t, err := time.Parse(time.RFC3339Nano, endedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parsing ended_at for %s: %w", summary.ConversationID, err)
			}
			summary.EndedAt = &t
		}

		out = append(out, summary)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
