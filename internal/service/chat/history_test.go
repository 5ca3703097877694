package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	chatmodel "github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
	chat "github.com/bilalkalyar/workspace-agent-cli/internal/service/chat"
)

type fakeHistory struct {
	messages []chatmodel.Message
	err      error
}

func (f *fakeHistory) History(_ context.Context) ([]chatmodel.Message, error) {
	return f.messages, f.err
}

func TestSyncInstallsRemoteSortedByTimestamp(t *testing.T) {
	remote := []chatmodel.Message{
		messageAt("third", 2*time.Minute),
		messageAt("first", 0),
		messageAt("second", time.Minute),
	}
	store := chat.NewStore(&memCache{}, zap.NewNop())
	syncer := chat.NewSyncer(&fakeHistory{messages: remote}, store, zap.NewNop())

	syncer.Run(context.Background())

	got := store.Messages()
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Content != want {
			t.Fatalf("position %d: got %q want %q", i, got[i].Content, want)
		}
	}
}

func TestSyncEmptyRemoteSeedsWelcome(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	syncer := chat.NewSyncer(&fakeHistory{}, store, zap.NewNop())

	syncer.Run(context.Background())

	got := store.Messages()
	if len(got) != 1 {
		t.Fatalf("expected exactly one welcome message, got %d", len(got))
	}
	if got[0].Role != chatmodel.RoleAgent {
		t.Fatalf("welcome message should be agent-authored, got %q", got[0].Role)
	}
	if got[0].Content != chatmodel.WelcomeText {
		t.Fatalf("unexpected welcome content: %q", got[0].Content)
	}
	if got[0].Timestamp.IsZero() {
		t.Fatal("welcome message must carry a timestamp")
	}
}

func TestSyncFailedRemoteSeedsWelcome(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	syncer := chat.NewSyncer(&fakeHistory{err: errors.New("connection refused")}, store, zap.NewNop())

	syncer.Run(context.Background())

	if store.Len() != 1 {
		t.Fatalf("expected one welcome message, got %d", store.Len())
	}
}

func TestSyncKeepsCachedHistoryWhenRemoteUnreachable(t *testing.T) {
	cache := &memCache{stored: []chatmodel.Message{
		messageAt("cached one", 0),
		messageAt("cached two", time.Minute),
	}}
	store := chat.NewStore(cache, zap.NewNop())
	syncer := chat.NewSyncer(&fakeHistory{err: errors.New("timeout")}, store, zap.NewNop())

	syncer.Run(context.Background())

	got := store.Messages()
	if len(got) != 2 {
		t.Fatalf("expected cached history to survive, got %d messages", len(got))
	}
	if got[0].Content != "cached one" {
		t.Fatalf("unexpected first message: %q", got[0].Content)
	}
}

func TestSyncRemoteOverridesCache(t *testing.T) {
	cache := &memCache{stored: []chatmodel.Message{messageAt("cached", 0)}}
	store := chat.NewStore(cache, zap.NewNop())
	remote := []chatmodel.Message{
		messageAt("remote one", 0),
		messageAt("remote two", time.Minute),
	}
	syncer := chat.NewSyncer(&fakeHistory{messages: remote}, store, zap.NewNop())

	syncer.Run(context.Background())

	got := store.Messages()
	if len(got) != 2 || got[0].Content != "remote one" {
		t.Fatalf("remote history should be authoritative, got %+v", got)
	}
}
