package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/api"
	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
)

// ErrTurnInFlight is returned by Send while a previous turn has not
// settled. Turns are serialized so replies can never interleave across
// concurrent sends.
var ErrTurnInFlight = errors.New("a chat turn is already in flight")

// ChatCaller is the slice of the backend client the controller needs.
type ChatCaller interface {
	Chat(ctx context.Context, query string) (api.ChatReply, error)
}

// SuggestionAdopter receives server-supplied suggestions after a turn.
type SuggestionAdopter interface {
	AdoptFromResponse(labels []string)
}

// Controller orchestrates one chat turn: optimistic append of the user
// message, the remote call, and success/failure reconciliation.
type Controller struct {
	mu      sync.Mutex
	store   *Store
	api     ChatCaller
	suggest SuggestionAdopter
	log     *zap.Logger
	sending bool
	seq     uint64
}

// NewController wires a controller over store. suggest may be nil.
func NewController(store *Store, caller ChatCaller, suggest SuggestionAdopter, log *zap.Logger) *Controller {
	return &Controller{store: store, api: caller, suggest: suggest, log: log}
}

// Sending reports whether a turn is in flight.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// Send runs one chat turn. The user message is appended before any network
// activity starts; the reply (or the fixed error message) is appended only
// after the remote call settles. Blank input is a silent no-op. The
// returned channel closes when the turn settles.
func (c *Controller) Send(ctx context.Context, text string) (<-chan struct{}, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		done := make(chan struct{})
		close(done)
		return done, nil
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	c.sending = true
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.store.Append(chat.NewUserMessage(query))

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			// The sending flag clears on every path out of the turn.
			c.mu.Lock()
			c.sending = false
			c.mu.Unlock()
		}()
		c.settle(ctx, seq, query)
	}()
	return done, nil
}

// settle finishes the asynchronous half of a turn. Transport failures and
// malformed replies both collapse into the fixed error message; no retry.
func (c *Controller) settle(ctx context.Context, seq uint64, query string) {
	reply, err := c.api.Chat(ctx, query)
	if err != nil {
		c.log.Warn("chat turn failed",
			zap.Uint64("turn", seq),
			zap.Error(err))
		c.store.Append(chat.NewAgentMessage(chat.SendErrorText))
		return
	}

	content := reply.Response
	if content == "" {
		content = chat.FallbackReplyText
	}
	c.store.Append(chat.NewAgentMessage(content))

	if c.suggest != nil && len(reply.Suggestions) > 0 {
		c.suggest.AdoptFromResponse(reply.Suggestions)
	}
}
