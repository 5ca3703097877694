package chat_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/api"
	chatmodel "github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
	chat "github.com/bilalkalyar/workspace-agent-cli/internal/service/chat"
)

type fakeCaller struct {
	mu    sync.Mutex
	gate  chan struct{}
	reply api.ChatReply
	err   error
	calls int
}

func (f *fakeCaller) Chat(_ context.Context, _ string) (api.ChatReply, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.reply, f.err
}

type adopted struct {
	mu     sync.Mutex
	labels []string
}

func (a *adopted) AdoptFromResponse(labels []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.labels = labels
}

func awaitTurn(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("turn did not settle in time")
	}
}

func TestSendAppendsUserThenReply(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	caller := &fakeCaller{reply: api.ChatReply{Response: "You have 2 unread emails."}}
	ctrl := chat.NewController(store, caller, nil, zap.NewNop())

	done, err := ctrl.Send(context.Background(), "show me my unread emails")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	awaitTurn(t, done)

	got := store.Messages()
	if len(got) != 2 {
		t.Fatalf("expected store to grow by 2, got %d", len(got))
	}
	if got[0].Role != chatmodel.RoleUser || got[0].Content != "show me my unread emails" {
		t.Fatalf("unexpected user message: %+v", got[0])
	}
	if got[1].Role != chatmodel.RoleAgent || got[1].Content != "You have 2 unread emails." {
		t.Fatalf("unexpected agent message: %+v", got[1])
	}
}

func TestSendUserMessageVisibleBeforeReplySettles(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	gate := make(chan struct{})
	caller := &fakeCaller{gate: gate, reply: api.ChatReply{Response: "ok"}}
	ctrl := chat.NewController(store, caller, nil, zap.NewNop())

	done, err := ctrl.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}

	// The optimistic append is synchronous: the user turn must already be
	// in the store while the network call is still blocked.
	got := store.Messages()
	if len(got) != 1 || got[0].Role != chatmodel.RoleUser {
		t.Fatalf("expected only the user message before settle, got %+v", got)
	}
	if !ctrl.Sending() {
		t.Fatal("controller should report sending while the call is in flight")
	}

	close(gate)
	awaitTurn(t, done)

	if store.Len() != 2 {
		t.Fatalf("expected 2 messages after settle, got %d", store.Len())
	}
	if ctrl.Sending() {
		t.Fatal("sending flag must clear after the turn settles")
	}
}

func TestSendFailureAppendsErrorMessage(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	caller := &fakeCaller{err: errors.New("connection refused")}
	ctrl := chat.NewController(store, caller, nil, zap.NewNop())

	done, err := ctrl.Send(context.Background(), "anything due?")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	awaitTurn(t, done)

	got := store.Messages()
	if len(got) != 2 {
		t.Fatalf("expected user + error message, got %d", len(got))
	}
	if got[1].Content != chatmodel.SendErrorText {
		t.Fatalf("expected fixed error text, got %q", got[1].Content)
	}
	if ctrl.Sending() {
		t.Fatal("sending flag must clear on failure too")
	}
}

func TestSendBlankFallbackReply(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	caller := &fakeCaller{reply: api.ChatReply{}}
	ctrl := chat.NewController(store, caller, nil, zap.NewNop())

	done, _ := ctrl.Send(context.Background(), "hm")
	awaitTurn(t, done)

	got := store.Messages()
	if got[1].Content != chatmodel.FallbackReplyText {
		t.Fatalf("expected fallback reply, got %q", got[1].Content)
	}
}

func TestSendEmptyInputIsNoOp(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	caller := &fakeCaller{}
	ctrl := chat.NewController(store, caller, nil, zap.NewNop())

	for _, input := range []string{"", "   ", "\n\t"} {
		done, err := ctrl.Send(context.Background(), input)
		if err != nil {
			t.Fatalf("Send(%q) err: %v", input, err)
		}
		awaitTurn(t, done)
	}

	if store.Len() != 0 {
		t.Fatalf("blank input must not append, got %d messages", store.Len())
	}
	if caller.calls != 0 {
		t.Fatalf("blank input must not reach the network, got %d calls", caller.calls)
	}
}

func TestSendRejectsWhileInFlight(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	gate := make(chan struct{})
	caller := &fakeCaller{gate: gate, reply: api.ChatReply{Response: "ok"}}
	ctrl := chat.NewController(store, caller, nil, zap.NewNop())

	done, err := ctrl.Send(context.Background(), "first")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}

	if _, err := ctrl.Send(context.Background(), "second"); !errors.Is(err, chat.ErrTurnInFlight) {
		t.Fatalf("expected ErrTurnInFlight, got %v", err)
	}

	close(gate)
	awaitTurn(t, done)

	// Only the first turn went through; the rejected send left no trace.
	if store.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", store.Len())
	}
}

func TestSendAdoptsServerSuggestions(t *testing.T) {
	store := chat.NewStore(&memCache{}, zap.NewNop())
	caller := &fakeCaller{reply: api.ChatReply{
		Response:    "here you go",
		Suggestions: []string{"Any important emails?", "What's due this week?"},
	}}
	sink := &adopted{}
	ctrl := chat.NewController(store, caller, sink, zap.NewNop())

	done, _ := ctrl.Send(context.Background(), "show emails")
	awaitTurn(t, done)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.labels) != 2 {
		t.Fatalf("expected 2 adopted suggestions, got %d", len(sink.labels))
	}
}
