// Package chat holds the client-side conversation core: the message store,
// the startup history sync and the turn controller.
package chat

import (
	"sync"

	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
)

// Cache persists the serialized message log between sessions. The store is
// the single writer; persistence failures never stop the in-memory log.
type Cache interface {
	Load() ([]chat.Message, error)
	Save(messages []chat.Message) error
	Clear() error
}

// Store owns the ordered in-memory conversation. Mutating operations
// attempt the cache write before the next mutation is accepted; readers may
// briefly observe memory ahead of the cache.
type Store struct {
	mu       sync.Mutex
	cache    Cache
	log      *zap.Logger
	messages []chat.Message
}

// NewStore builds an empty store backed by cache.
func NewStore(cache Cache, log *zap.Logger) *Store {
	return &Store{cache: cache, log: log}
}

// Append adds one message to the end of the conversation. Messages carry no
// unique id; position is identity.
func (s *Store) Append(message chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, message)
	s.persistLocked()
}

// ReplaceAll installs a reconciled conversation wholesale.
func (s *Store) ReplaceAll(messages []chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = make([]chat.Message, len(messages))
	copy(s.messages, messages)
	s.persistLocked()
}

// Clear empties the conversation and removes the persisted entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	if err := s.cache.Clear(); err != nil {
		s.log.Warn("failed to clear cached chat history", zap.Error(err))
	}
}

// Messages copies out the current conversation.
func (s *Store) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]chat.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len reports the current conversation length.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// persistLocked writes the full log through the cache. The cache itself
// skips empty logs so transient empty states never clobber a cached
// session.
func (s *Store) persistLocked() {
	if err := s.cache.Save(s.messages); err != nil {
		s.log.Warn("failed to persist chat history",
			zap.Int("messages", len(s.messages)),
			zap.Error(err))
	}
}
