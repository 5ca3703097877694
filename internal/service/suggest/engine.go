// Package suggest derives prompt chips from the day's activity.
package suggest

import (
	"sync"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
	"github.com/bilalkalyar/workspace-agent-cli/internal/model/workspace"
)

// Engine holds the current suggestion set. Suggestions are regenerated
// wholesale, never merged.
type Engine struct {
	mu      sync.Mutex
	current []chat.Suggestion
}

// NewEngine builds an engine with no suggestions yet.
func NewEngine() *Engine {
	return &Engine{}
}

// DeriveFromSnapshot replaces the current set from the daily snapshot. The
// decision table runs in fixed order and the result is truncated to the
// first three; an all-empty snapshot yields exactly one generic chip.
func (e *Engine) DeriveFromSnapshot(snapshot workspace.Snapshot) []chat.Suggestion {
	var next []chat.Suggestion
	if len(snapshot.Emails) > 0 {
		next = append(next,
			chat.Suggestion{Label: "Show me my unread emails", Category: chat.CategoryMail},
			chat.Suggestion{Label: "Any important emails?", Category: chat.CategoryMail},
		)
	}
	if len(snapshot.Assignments) > 0 {
		next = append(next, chat.Suggestion{Label: "What's due this week?", Category: chat.CategoryAssignment})
	}
	if len(snapshot.Meetings) > 0 {
		next = append(next, chat.Suggestion{Label: "What's my schedule today?", Category: chat.CategoryMeeting})
	}
	if len(next) == 0 {
		next = append(next, chat.Suggestion{Label: "What can you help me with?", Category: chat.CategoryGeneric})
	}
	if len(next) > chat.MaxSuggestions {
		next = next[:chat.MaxSuggestions]
	}

	e.mu.Lock()
	e.current = next
	e.mu.Unlock()
	return e.snapshotCurrent()
}

// AdoptFromResponse replaces the set with server-supplied labels after a
// completed turn. An empty list leaves the existing set untouched.
func (e *Engine) AdoptFromResponse(labels []string) {
	if len(labels) == 0 {
		return
	}

	next := make([]chat.Suggestion, 0, len(labels))
	for _, label := range labels {
		next = append(next, chat.Suggestion{Label: label, Category: chat.CategoryGeneric})
	}
	if len(next) > chat.MaxSuggestions {
		next = next[:chat.MaxSuggestions]
	}

	e.mu.Lock()
	e.current = next
	e.mu.Unlock()
}

// Current copies out the active suggestion set.
func (e *Engine) Current() []chat.Suggestion {
	return e.snapshotCurrent()
}

func (e *Engine) snapshotCurrent() []chat.Suggestion {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]chat.Suggestion, len(e.current))
	copy(out, e.current)
	return out
}
