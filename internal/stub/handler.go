// Package stub implements the assistant backend's HTTP contracts with
// seeded data so the front-end can be developed and tested without the real
// service.
package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
	"github.com/bilalkalyar/workspace-agent-cli/internal/model/workspace"
	"github.com/bilalkalyar/workspace-agent-cli/pkg/httputil"
)

// Handler serves the six workspace-assistant endpoints.
type Handler struct {
	mu        sync.RWMutex
	log       *ConversationLog
	snapshot  workspace.Snapshot
	report    workspace.Report
	hasReport bool
	logger    *zap.Logger
}

// New builds a handler around seeded data. The report starts absent, the
// way a fresh backend answers before its first generation.
func New(logger *zap.Logger) *Handler {
	return &Handler{
		log:      NewConversationLog(),
		snapshot: SeedSnapshot(),
		logger:   logger,
	}
}

// RegisterRoutes mounts the assistant contracts on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/chat/history", h.handleHistory)
	r.Post("/chat", h.handleChat)
	r.Get("/snapshot/today", h.handleSnapshot)
	r.Get("/eod-report", h.handleReport)
	r.Post("/eod-report/generate", h.handleGenerateReport)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, workspace.Health{
		Status:  "healthy",
		Message: "Agent is running",
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"history": h.log.History(),
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Query) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "query is required")
		return
	}

	h.log.Record(chat.Message{Role: chat.RoleUser, Content: payload.Query})

	response, suggestions := h.reply(payload.Query)
	h.log.Record(chat.Message{Role: chat.RoleAgent, Content: response})

	h.logger.Info("answered chat query",
		zap.Int("query_len", len(payload.Query)),
		zap.Int("suggestions", len(suggestions)))

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"response":     response,
		"context_used": true,
		"sources":      []string{"snapshot"},
		"suggestions":  suggestions,
	})
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	snapshot := h.snapshot
	h.mu.RUnlock()
	httputil.RespondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleReport(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	report, ok := h.report, h.hasReport
	h.mu.RUnlock()

	if !ok {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{
			"message": "No report available yet",
		})
		return
	}
	httputil.RespondJSON(w, http.StatusOK, report)
}

func (h *Handler) handleGenerateReport(w http.ResponseWriter, _ *http.Request) {
	report := SeedReport()

	h.mu.Lock()
	h.report = report
	h.hasReport = true
	h.mu.Unlock()

	h.logger.Info("regenerated end-of-day report", zap.String("date", report.Date))
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Report generated",
		"content": report.Content,
	})
}

// reply scripts an answer from the seeded snapshot, mimicking the real
// agent's shape closely enough for front-end development.
func (h *Handler) reply(query string) (string, []string) {
	h.mu.RLock()
	snapshot := h.snapshot
	h.mu.RUnlock()

	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "email"):
		var b strings.Builder
		fmt.Fprintf(&b, "You have **%d unread emails**:\n\n", len(snapshot.Emails))
		for _, e := range snapshot.Emails {
			fmt.Fprintf(&b, "- **%s**: %s\n", e.Sender, e.Subject)
		}
		return b.String(), []string{"Any important emails?", "What's due this week?"}
	case strings.Contains(q, "due") || strings.Contains(q, "assignment"):
		var b strings.Builder
		fmt.Fprintf(&b, "You have **%d assignments** coming up:\n\n", len(snapshot.Assignments))
		for _, a := range snapshot.Assignments {
			fmt.Fprintf(&b, "- **%s** (%s) due %s\n", a.Title, a.Course, a.DueDate)
		}
		return b.String(), []string{"What's my schedule today?"}
	case strings.Contains(q, "schedule") || strings.Contains(q, "meeting"):
		var b strings.Builder
		fmt.Fprintf(&b, "You have **%d meetings** today:\n\n", len(snapshot.Meetings))
		for _, m := range snapshot.Meetings {
			fmt.Fprintf(&b, "- **%s** at %s (%d min)\n", m.Title, m.StartTime, m.DurationMinutes)
		}
		return b.String(), nil
	default:
		reply := "I can check your emails, assignments and meetings. " +
			"Ask me something like \"show me my unread emails\"."
		return reply, []string{"Show me my unread emails", "What's due this week?", "What's my schedule today?"}
	}
}
