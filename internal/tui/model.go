// Package tui renders the chat panel and dashboard in the terminal. All
// session logic lives in the service packages; this is a thin consumer.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/api"
	"github.com/bilalkalyar/workspace-agent-cli/internal/model/workspace"
	chatsvc "github.com/bilalkalyar/workspace-agent-cli/internal/service/chat"
	"github.com/bilalkalyar/workspace-agent-cli/internal/service/report"
	"github.com/bilalkalyar/workspace-agent-cli/internal/service/suggest"
)

// Deps carries the wired session core into the TUI.
type Deps struct {
	Store  *chatsvc.Store
	Ctrl   *chatsvc.Controller
	Syncer *chatsvc.Syncer
	Engine *suggest.Engine
	Poller *report.Poller
	Client *api.Client
	Logger *zap.Logger
}

type tab int

const (
	tabChat tab = iota
	tabDashboard
)

// Model is the bubbletea model for the whole front-end.
type Model struct {
	deps Deps

	input textinput.Model
	spin  spinner.Model
	vp    viewport.Model
	md    *glamour.TermRenderer

	tab        tab
	width      int
	height     int
	ready      bool
	sending    bool
	generating bool

	health workspace.Health
	data   report.Data
}

// New builds the initial model.
func New(deps Deps) Model {
	in := textinput.New()
	in.Placeholder = "Ask me anything about your workspace..."
	in.Prompt = "> "
	in.CharLimit = 0
	in.Width = 60
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		deps:  deps,
		input: in,
		spin:  sp,
		md:    newMarkdown(76),
	}
}

// Init kicks off the once-per-session work: history sync, suggestion
// derivation, health check and the dashboard's first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		textinput.Blink,
		m.syncHistoryCmd(),
		m.loadSuggestionsCmd(),
		m.checkHealthCmd(),
		m.loadDashboardCmd(),
	)
}

func newMarkdown(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}
