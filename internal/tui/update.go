package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/workspace"
	chatsvc "github.com/bilalkalyar/workspace-agent-cli/internal/service/chat"
	"github.com/bilalkalyar/workspace-agent-cli/internal/service/report"
)

type (
	historySyncedMsg    struct{}
	suggestionsReadyMsg struct{}
	turnSettledMsg      struct{}
	healthMsg           struct{ health workspace.Health }
	dashboardMsg        struct {
		data report.Data
		err  error
	}
)

// DashboardRefreshedMsg is pushed into the program by the report poller's
// delayed refetch.
type DashboardRefreshedMsg struct{ Data report.Data }

// Update handles one event.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 20)
		vpHeight := max(msg.Height-8, 3)
		if !m.ready {
			m.vp = newViewport(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.md = newMarkdown(max(msg.Width-6, 20))
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case historySyncedMsg:
		m.refreshTranscript()
		return m, nil

	case suggestionsReadyMsg:
		return m, nil

	case turnSettledMsg:
		m.sending = false
		m.refreshTranscript()
		return m, nil

	case healthMsg:
		m.health = msg.health
		return m, nil

	case dashboardMsg:
		if msg.err != nil {
			m.deps.Logger.Warn("dashboard load failed", zap.Error(msg.err))
			return m, nil
		}
		m.data = msg.data
		return m, nil

	case DashboardRefreshedMsg:
		m.data = msg.Data
		m.generating = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		if m.tab == tabChat {
			m.tab = tabDashboard
		} else {
			m.tab = tabChat
		}
		return m, nil
	}

	if m.tab == tabDashboard {
		switch msg.String() {
		case "g":
			m.deps.Poller.Trigger(context.Background())
			m.generating = true
			return m, nil
		case "r":
			return m, m.loadDashboardCmd()
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		return m.submit(m.input.Value())
	case "1", "2", "3":
		// Chips are offered while the conversation is still fresh; a bare
		// digit picks one as long as nothing is being typed.
		if m.input.Value() == "" && m.chipsVisible() {
			chips := m.deps.Engine.Current()
			idx := int(msg.String()[0] - '1')
			if idx < len(chips) {
				return m.submit(chips[idx].Label)
			}
		}
	case "ctrl+l":
		m.deps.Store.Clear()
		m.refreshTranscript()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	done, err := m.deps.Ctrl.Send(context.Background(), text)
	if err != nil {
		if errors.Is(err, chatsvc.ErrTurnInFlight) {
			return m, nil
		}
		m.deps.Logger.Warn("send rejected", zap.Error(err))
		return m, nil
	}

	m.input.Reset()
	m.sending = m.deps.Ctrl.Sending()
	m.refreshTranscript()
	return m, func() tea.Msg {
		<-done
		return turnSettledMsg{}
	}
}

func (m Model) syncHistoryCmd() tea.Cmd {
	syncer := m.deps.Syncer
	return func() tea.Msg {
		syncer.Run(context.Background())
		return historySyncedMsg{}
	}
}

func (m Model) loadSuggestionsCmd() tea.Cmd {
	client, engine, logger := m.deps.Client, m.deps.Engine, m.deps.Logger
	return func() tea.Msg {
		snapshot, err := client.Snapshot(context.Background())
		if err != nil {
			logger.Warn("failed to load snapshot for suggestions", zap.Error(err))
			return suggestionsReadyMsg{}
		}
		engine.DeriveFromSnapshot(snapshot)
		return suggestionsReadyMsg{}
	}
}

func (m Model) checkHealthCmd() tea.Cmd {
	client, logger := m.deps.Client, m.deps.Logger
	return func() tea.Msg {
		health, err := client.Health(context.Background())
		if err != nil {
			logger.Warn("backend health check failed", zap.Error(err))
			return healthMsg{}
		}
		return healthMsg{health: health}
	}
}

func (m Model) loadDashboardCmd() tea.Cmd {
	poller := m.deps.Poller
	return func() tea.Msg {
		data, err := poller.Refresh(context.Background())
		return dashboardMsg{data: data, err: err}
	}
}

func (m Model) chipsVisible() bool {
	return m.deps.Store.Len() <= 1 && len(m.deps.Engine.Current()) > 0
}
