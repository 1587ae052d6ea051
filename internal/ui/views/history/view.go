package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	shiftdto "leadtrack/internal/modules/shift/dto"
	"leadtrack/internal/ui/components"
	"leadtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	History(ctx context.Context) ([]shiftdto.SessionOutput, error)
	Delete(ctx context.Context, sessionID string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Sessions []shiftdto.SessionOutput
	Err      error
}

type DeletedMsg struct {
	SessionID string
	Err       error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session shiftdto.SessionOutput
}

func (i sessionItem) Title() string {
	return fmt.Sprintf("%s  %s", i.session.Date, i.session.OperatorName)
}

func (i sessionItem) Description() string {
	if i.session.IsActive {
		return fmt.Sprintf("%s –      active", i.session.LoginTime)
	}
	return fmt.Sprintf("%s – %s  ~%d calls", i.session.LoginTime, i.session.LogoutTime, i.session.EstimatedCallCount)
}

func (i sessionItem) FilterValue() string {
	return i.session.OperatorName + " " + i.session.Date
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       HistoryPort
	list       list.Model
	detail     viewport.Model
	confirming string
	err        string
	width      int
	height     int
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd {
	return m.LoadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())
		return m, tea.Batch(cmds...)

	case DeletedMsg:
		m.confirming = ""
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		return m, m.LoadCmd()

	case tea.KeyMsg:
		if m.confirming != "" {
			switch msg.String() {
			case "y":
				return m, m.DeleteCmd(m.confirming)
			case "n", "esc":
				m.confirming = ""
			}
			m.detail.SetContent(m.renderDetail())
			return m, nil
		}
		if msg.String() == "d" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(sessionItem); ok {
				m.confirming = item.session.ID
				m.detail.SetContent(m.renderDetail())
				return m, nil
			}
		}
	}

	prevIdx := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		m.detail.SetContent(m.renderDetail())
	}
	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Confirming reports whether a delete confirmation is pending.
func (m Model) Confirming() bool {
	return m.confirming != ""
}

func (m Model) LoadCmd() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.History(context.Background())
		return LoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) DeleteCmd(sessionID string) tea.Cmd {
	return func() tea.Msg {
		return DeletedMsg{SessionID: sessionID, Err: m.port.Delete(context.Background(), sessionID)}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(detailW-4, 1)
	m.detail.Height = max(m.height-4, 1)
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	if m.err != "" {
		sb.WriteString(theme.Err.Render(m.err) + "\n\n")
	}
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		sb.WriteString(theme.Muted.Render("No shifts recorded yet"))
		return sb.String()
	}
	s := item.session
	sb.WriteString(theme.Title.Render(s.OperatorName) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:     ") + s.ID + "\n")
	sb.WriteString(theme.Muted.Render("date:   ") + s.Date + "\n")
	sb.WriteString(theme.Muted.Render("login:  ") + s.LoginTime + "\n")
	if s.IsActive {
		sb.WriteString(theme.Hot.Render("active") + "\n\n")
		sb.WriteString(theme.Title.Render("Entry snapshot") + "\n")
		for _, e := range s.EntrySnapshot {
			sb.WriteString(fmt.Sprintf("  %-20s %d\n", e.Status, e.Count))
		}
		return sb.String()
	}
	sb.WriteString(theme.Muted.Render("logout: ") + s.LogoutTime + "\n")
	sb.WriteString(fmt.Sprintf("%s~%d\n\n", theme.Muted.Render("calls:  "), s.EstimatedCallCount))
	sb.WriteString(components.ChangeTable(s.Changes, "Login", "Logout"))
	if m.confirming == s.ID {
		sb.WriteString("\n" + theme.Hot.Render("Delete this shift? y/n"))
	} else {
		sb.WriteString("\n" + theme.Muted.Render("d: delete"))
	}
	return sb.String()
}
