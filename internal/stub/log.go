package stub

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
)

// entry is one stored turn with the server-side id the real backend
// assigns for audit.
type entry struct {
	ID      string
	Message chat.Message
}

// ConversationLog is the stub's in-memory stand-in for the backend's chat
// history table.
type ConversationLog struct {
	mu      sync.RWMutex
	entries []entry
}

// NewConversationLog builds an empty log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{entries: make([]entry, 0, 16)}
}

// Record appends one turn, stamping it when the caller left the timestamp
// zero.
func (l *ConversationLog) Record(message chat.Message) {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry{ID: uuid.NewString(), Message: message})
}

// History copies out the stored turns, oldest first.
func (l *ConversationLog) History() []chat.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]chat.Message, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Message)
	}
	return out
}
