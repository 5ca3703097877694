package chat

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
)

// HistoryFetcher is the slice of the backend client the syncer needs.
type HistoryFetcher interface {
	History(ctx context.Context) ([]chat.Message, error)
}

// Syncer reconciles the store with the backend's conversation log once at
// session start. Remote history is authoritative; the cache only serves as
// a first paint until the remote call settles.
type Syncer struct {
	api   HistoryFetcher
	store *Store
	log   *zap.Logger
}

// NewSyncer wires a syncer over store.
func NewSyncer(api HistoryFetcher, store *Store, log *zap.Logger) *Syncer {
	return &Syncer{api: api, store: store, log: log}
}

// Run installs cached history immediately, then adopts the remote log when
// it has content. When the remote log is empty or unreachable and nothing
// was cached, the conversation opens with the synthetic welcome message.
func (s *Syncer) Run(ctx context.Context) {
	if cached, err := s.store.cache.Load(); err != nil {
		s.log.Warn("failed to read cached chat history", zap.Error(err))
	} else if len(cached) > 0 {
		s.store.ReplaceAll(cached)
	}

	remote, err := s.api.History(ctx)
	if err != nil {
		s.log.Warn("failed to fetch remote chat history", zap.Error(err))
	}

	if len(remote) > 0 {
		sorted := make([]chat.Message, len(remote))
		copy(sorted, remote)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})
		s.store.ReplaceAll(sorted)
		return
	}

	if s.store.Len() == 0 {
		s.store.Append(chat.NewAgentMessage(chat.WelcomeText))
	}
}
