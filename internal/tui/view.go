package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	agentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	chipStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			MarginRight(1)
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// View renders the active tab.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	if m.tab == tabDashboard {
		b.WriteString(m.dashboardView())
	} else {
		b.WriteString(m.chatView())
	}
	return b.String()
}

func (m Model) headerView() string {
	title := headerStyle.Render("🤖 Workspace Agent")
	status := ""
	if m.health.Status != "" {
		status = subtleStyle.Render("  status: " + m.health.Status)
	}
	hint := subtleStyle.Render("  tab: chat/dashboard · esc: quit")
	return title + status + hint
}

func (m Model) chatView() string {
	var b strings.Builder
	b.WriteString(m.vp.View())
	b.WriteString("\n")

	if m.chipsVisible() {
		b.WriteString(subtleStyle.Render("Try asking:"))
		b.WriteString(" ")
		for i, s := range m.deps.Engine.Current() {
			b.WriteString(chipStyle.Render(fmt.Sprintf("[%d] %s", i+1, s.Label)))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if m.sending {
		b.WriteString(m.spin.View())
		b.WriteString(subtleStyle.Render("thinking..."))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) dashboardView() string {
	var b strings.Builder

	snap := m.data.Snapshot
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(fmt.Sprintf("📧 %d\nUnread", len(snap.Emails))),
		cardStyle.Render(fmt.Sprintf("📚 %d\nAssignments", len(snap.Assignments))),
		cardStyle.Render(fmt.Sprintf("📅 %d\nMeetings", len(snap.Meetings))),
		cardStyle.Render(urgentStyle.Render(fmt.Sprintf("⚠ %d\nUrgent", snap.UrgentCount))),
	)
	b.WriteString(cards)
	b.WriteString("\n")

	if m.generating {
		b.WriteString(m.spin.View())
		b.WriteString(subtleStyle.Render("generating report..."))
		b.WriteString("\n")
	}

	rep := m.data.Report
	if rep.Available() {
		b.WriteString(m.renderMarkdown(rep.Content))
		b.WriteString("\n")
		for _, item := range rep.UrgentItems {
			b.WriteString(urgentStyle.Render(fmt.Sprintf("  ! [%s] %s — %s", item.Type, item.Title, item.Action)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(subtleStyle.Render("No report available yet."))
		b.WriteString("\n")
	}

	b.WriteString(subtleStyle.Render("g: generate report · r: refresh"))
	b.WriteString("\n")
	return b.String()
}

// refreshTranscript rebuilds the chat viewport from the store and keeps it
// scrolled to the latest turn.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, msg := range m.deps.Store.Messages() {
		stamp := subtleStyle.Render(msg.Timestamp.Local().Format("15:04"))
		switch msg.Role {
		case chat.RoleUser:
			b.WriteString(userStyle.Render("You ") + stamp)
			b.WriteString("\n")
			b.WriteString(msg.Content)
		default:
			b.WriteString(agentStyle.Render("Agent ") + stamp)
			b.WriteString("\n")
			b.WriteString(m.renderMarkdown(msg.Content))
		}
		b.WriteString("\n\n")
	}

	m.vp.SetContent(b.String())
	m.vp.GotoBottom()
}

// renderMarkdown renders the agent's markdown subset for the terminal,
// falling back to the raw text when rendering fails.
func (m Model) renderMarkdown(content string) string {
	if m.md == nil {
		return content
	}
	out, err := m.md.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
