// Package cache persists the conversation log between sessions.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
)

// messagesKey is the single slot the serialized message log lives under.
const messagesKey = "chat_messages"

// Session is a SQLite-backed keyed slot for the serialized message log.
// The message store is its only writer.
type Session struct {
	db  *sql.DB
	log *zap.Logger
}

// Open creates or opens the session cache at path.
func Open(path string, log *zap.Logger) (*Session, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	s := &Session{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache schema: %w", err)
	}
	return s, nil
}

func (s *Session) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session_cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *Session) Close() error {
	return s.db.Close()
}

// Load returns the cached message log, or nil when nothing usable is
// cached. A corrupt entry is logged and treated as absent; Load never
// fails its caller over bad cached data.
func (s *Session) Load() ([]chat.Message, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT value FROM session_cache WHERE key = ?`, messagesKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached messages: %w", err)
	}

	var messages []chat.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		s.log.Warn("discarding corrupt cached chat history", zap.Error(err))
		return nil, nil
	}
	return messages, nil
}

// Save persists the full message log. An empty log is skipped so a
// transient empty state never overwrites a previously cached session.
func (s *Session) Save(messages []chat.Message) error {
	if len(messages) == 0 {
		return nil
	}

	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO session_cache (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		messagesKey, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write cached messages: %w", err)
	}
	return nil
}

// Clear removes the persisted entry unconditionally.
func (s *Session) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session_cache WHERE key = ?`, messagesKey); err != nil {
		return fmt.Errorf("clear cached messages: %w", err)
	}
	return nil
}
