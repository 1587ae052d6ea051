package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "leadtrack/internal/modules/catalog/dto"
	shiftdto "leadtrack/internal/modules/shift/dto"
	"leadtrack/internal/ui/components"
	"leadtrack/internal/ui/theme"
	clientsview "leadtrack/internal/ui/views/clients"
	historyview "leadtrack/internal/ui/views/history"
	shiftview "leadtrack/internal/ui/views/shift"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type shiftPort interface {
	Status(ctx context.Context) (shiftdto.StatusOutput, error)
	Start(ctx context.Context, operatorName, loginTime string) (shiftdto.SessionOutput, error)
	Preview(ctx context.Context, logoutTime string) (shiftdto.SessionOutput, error)
	End(ctx context.Context, sessionID, logoutTime string) (shiftdto.SessionOutput, error)
	Delete(ctx context.Context, sessionID string) error
	History(ctx context.Context) ([]shiftdto.SessionOutput, error)
}

type catalogPort interface {
	ListClients(ctx context.Context) ([]catalogdto.ClientOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabShift tabID = iota
	tabHistory
	tabClients
	tabCount
)

var tabLabels = [tabCount]string{"Shift", "History", "Clients"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Edit    key.Binding
	End     key.Binding
	Delete  key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Edit:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "edit login form")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end shift")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete shift")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Edit, k.End},
		{k.Delete, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	workspace string

	shiftView   shiftview.Model
	historyView historyview.Model
	clientsView clientsview.Model

	activeTab   tabID
	keys        keyMap
	help        help.Model
	showHelp    bool
	palette     components.Palette
	activeLabel string
	status      string
	width       int
	height      int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(workspace, operator string, shift shiftPort, catalog catalogPort, now func() time.Time) Model {
	return Model{
		workspace:   workspace,
		shiftView:   shiftview.New(shift, operator, now),
		historyView: historyview.New(shift),
		clientsView: clientsview.New(catalog),
		activeTab:   tabShift,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.shiftView.Init(),
		m.historyView.Init(),
		m.clientsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Shift messages always reach the shift view, whichever tab is active.
	case shiftview.RefreshTickMsg, spinner.TickMsg:
		return m.updateShift(msg)

	case shiftview.StatusLoadedMsg:
		if msg.Err == nil && msg.Status.HasActive {
			m.activeLabel = msg.Status.Active.OperatorName + " since " + msg.Status.Active.LoginTime
		} else if msg.Err == nil {
			m.activeLabel = ""
		}
		return m.updateShift(msg)

	case shiftview.StartedMsg:
		if msg.Err != nil {
			m.status = "start failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("shift started: %s at %s", msg.Session.OperatorName, msg.Session.LoginTime)
			cmds = append(cmds, m.historyView.LoadCmd())
		}
		next, cmd := m.updateShift(msg)
		return next, tea.Batch(append(cmds, cmd)...)

	case shiftview.PreviewMsg:
		if msg.Err != nil {
			m.status = "preview failed: " + msg.Err.Error()
		} else {
			m.activeTab = tabShift
		}
		return m.updateShift(msg)

	case shiftview.EndedMsg:
		if msg.Err != nil {
			m.status = "end failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("shift ended at %s, ~%d calls", msg.Session.LogoutTime, msg.Session.EstimatedCallCount)
			cmds = append(cmds, m.historyView.LoadCmd(), m.clientsView.LoadCmd())
		}
		next, cmd := m.updateShift(msg)
		return next, tea.Batch(append(cmds, cmd)...)

	case historyview.LoadedMsg, historyview.DeletedMsg:
		if d, ok := msg.(historyview.DeletedMsg); ok {
			if d.Err != nil {
				m.status = "delete failed: " + d.Err.Error()
			} else {
				m.status = "shift deleted: " + d.SessionID
			}
		}
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case clientsview.LoadedMsg:
		var cmd tea.Cmd
		m.clientsView, cmd = m.clientsView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view while it is capturing text or a confirmation.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Everything else goes to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabShift:
		m.shiftView, tabCmd = m.shiftView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	case tabClients:
		m.clientsView, tabCmd = m.clientsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabShift:
		return m.shiftView.View()
	case tabHistory:
		return m.historyView.View()
	case tabClients:
		return m.clientsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "leadtrack  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.activeLabel != "" {
		left = theme.Hot.Render("● "+m.activeLabel) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}

	switch parts[0] {
	case "shift:start":
		if len(parts) < 2 {
			m.status = "usage: shift:start <operator> [HH:MM]"
			return m, nil
		}
		operator := strings.Join(parts[1:], " ")
		login := ""
		if last := parts[len(parts)-1]; len(parts) > 2 && strings.Contains(last, ":") {
			operator = strings.Join(parts[1:len(parts)-1], " ")
			login = last
		}
		m.activeTab = tabShift
		return m, m.shiftView.StartCmd(operator, login)

	case "shift:preview", "shift:end":
		// both open the confirmation; ending always goes through the preview
		m.activeTab = tabShift
		return m, m.shiftView.PreviewCmd(arg(1))

	case "shift:delete":
		if len(parts) < 2 {
			m.status = "usage: shift:delete <session-id>"
			return m, nil
		}
		m.activeTab = tabHistory
		return m, m.historyView.DeleteCmd(parts[1])

	case "history:refresh":
		m.activeTab = tabHistory
		return m, m.historyView.LoadCmd()

	case "clients:refresh":
		m.activeTab = tabClients
		return m, m.clientsView.LoadCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) updateShift(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.shiftView, cmd = m.shiftView.Update(msg)
	return m, cmd
}

// subViewCapturing reports whether the active tab is taking free text or a
// y/n answer, in which case global key bindings must yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabShift:
		return m.shiftView.Editing()
	case tabHistory:
		return m.historyView.Filtering() || m.historyView.Confirming()
	case tabClients:
		return m.clientsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.shiftView, _ = m.shiftView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.clientsView, _ = m.clientsView.Update(sz)
}
