package shift

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	shiftdto "leadtrack/internal/modules/shift/dto"
	"leadtrack/internal/platform/clock"
	"leadtrack/internal/ui/components"
	"leadtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ShiftPort interface {
	Status(ctx context.Context) (shiftdto.StatusOutput, error)
	Start(ctx context.Context, operatorName, loginTime string) (shiftdto.SessionOutput, error)
	Preview(ctx context.Context, logoutTime string) (shiftdto.SessionOutput, error)
	End(ctx context.Context, sessionID, logoutTime string) (shiftdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StatusLoadedMsg struct {
	Status shiftdto.StatusOutput
	Err    error
}

// StartedMsg and EndedMsg bubble up to the app model, which updates the
// status bar and reloads history.
type StartedMsg struct {
	Session shiftdto.SessionOutput
	Err     error
}

type EndedMsg struct {
	Session shiftdto.SessionOutput
	Err     error
}

type PreviewMsg struct {
	Session shiftdto.SessionOutput
	Err     error
}

// RefreshTickMsg re-reads the live comparison while a session is active.
type RefreshTickMsg struct{}

const refreshEvery = 5 * time.Second

// ─── model ───────────────────────────────────────────────────────────────────

type mode int

const (
	modeLoading mode = iota
	modeLogin
	modeActive
	modeConfirm
)

type Model struct {
	port    ShiftPort
	now     func() time.Time
	spinner spinner.Model

	mode     mode
	status   shiftdto.StatusOutput
	preview  shiftdto.SessionOutput
	operator textinput.Model
	login    textinput.Model
	editing  bool
	err      string
	width    int
	height   int
}

func New(port ShiftPort, operator string, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	op := textinput.New()
	op.Placeholder = "operator name"
	op.CharLimit = 64
	op.SetValue(operator)

	login := textinput.New()
	login.Placeholder = "HH:MM"
	login.CharLimit = 5

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, now: now, spinner: sp, operator: op, login: login}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.LoadCmd(), m.spinner.Tick, refreshTick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.mode != modeLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RefreshTickMsg:
		if m.mode == modeActive {
			return m, tea.Batch(m.LoadCmd(), refreshTick())
		}
		return m, refreshTick()

	case StatusLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			if m.mode == modeLoading {
				m.mode = modeLogin
			}
			return m, nil
		}
		m.status = msg.Status
		if m.mode == modeConfirm {
			return m, nil
		}
		if msg.Status.HasActive {
			m.mode = modeActive
		} else {
			m.mode = modeLogin
		}

	case StartedMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.login.SetValue("")
		m.stopEditing()
		return m, m.LoadCmd()

	case PreviewMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.preview = msg.Session
		m.mode = modeConfirm

	case EndedMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			m.mode = modeActive
			return m, nil
		}
		m.err = ""
		m.preview = shiftdto.SessionOutput{}
		return m, m.LoadCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeLogin:
		if !m.editing {
			if msg.String() == "i" || msg.String() == "enter" {
				return m, m.focus(0)
			}
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.stopEditing()
			return m, nil
		case "up", "down":
			if m.operator.Focused() {
				return m, m.focus(1)
			}
			return m, m.focus(0)
		case "enter":
			if m.operator.Focused() {
				return m, m.focus(1)
			}
			return m, m.StartCmd(m.operator.Value(), m.login.Value())
		}
		var cmd tea.Cmd
		if m.operator.Focused() {
			m.operator, cmd = m.operator.Update(msg)
		} else {
			m.login, cmd = m.login.Update(msg)
		}
		return m, cmd

	case modeActive:
		switch msg.String() {
		case "e":
			return m, m.PreviewCmd("")
		case "r":
			return m, m.LoadCmd()
		}

	case modeConfirm:
		switch msg.String() {
		case "y":
			return m, m.EndCmd(m.preview.LogoutTime)
		case "n", "esc":
			m.mode = modeActive
			m.preview = shiftdto.SessionOutput{}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.mode {
	case modeLoading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading shift…")
	case modeLogin:
		body = m.renderLogin()
	case modeActive:
		body = m.renderActive()
	case modeConfirm:
		body = m.renderConfirm()
	}
	if m.err != "" {
		body += "\n\n" + theme.Err.Render(m.err)
	}
	return theme.Pane.Width(max(m.width-4, 20)).Render(body)
}

// Editing reports whether a form field has focus; the app model must not
// treat keystrokes as global bindings while it does.
func (m Model) Editing() bool { return m.editing }

// ActiveSessionID returns the id of the active session, or "".
func (m Model) ActiveSessionID() string {
	if !m.status.HasActive {
		return ""
	}
	return m.status.Active.ID
}

func (m Model) LoadCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background())
		return StatusLoadedMsg{Status: status, Err: err}
	}
}

// StartCmd starts a session; an empty login time means now.
func (m Model) StartCmd(operator, loginTime string) tea.Cmd {
	loginTime = m.defaultTime(loginTime)
	return func() tea.Msg {
		out, err := m.port.Start(context.Background(), operator, loginTime)
		return StartedMsg{Session: out, Err: err}
	}
}

func (m Model) PreviewCmd(logoutTime string) tea.Cmd {
	logoutTime = m.defaultTime(logoutTime)
	return func() tea.Msg {
		out, err := m.port.Preview(context.Background(), logoutTime)
		return PreviewMsg{Session: out, Err: err}
	}
}

func (m Model) EndCmd(logoutTime string) tea.Cmd {
	logoutTime = m.defaultTime(logoutTime)
	return func() tea.Msg {
		out, err := m.port.End(context.Background(), "", logoutTime)
		return EndedMsg{Session: out, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) defaultTime(value string) string {
	if strings.TrimSpace(value) == "" {
		return clock.TimeOfDay(m.now())
	}
	return strings.TrimSpace(value)
}

func (m *Model) focus(field int) tea.Cmd {
	m.editing = true
	if field == 0 {
		m.login.Blur()
		return m.operator.Focus()
	}
	m.operator.Blur()
	return m.login.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.operator.Blur()
	m.login.Blur()
}

func (m Model) renderLogin() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Start a shift") + "\n\n")
	sb.WriteString(theme.Muted.Render("Operator  ") + m.operator.View() + "\n")
	sb.WriteString(theme.Muted.Render("Login     ") + m.login.View() + "\n\n")
	sb.WriteString(theme.Title.Render("Current leads") + "\n")
	sb.WriteString(renderCounts(m.status.Current))
	hint := "i: edit  enter: next/submit  esc: done  (empty login = now)"
	sb.WriteString("\n" + theme.Muted.Render(hint))
	return sb.String()
}

func (m Model) renderActive() string {
	a := m.status.Active
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render("● "+a.OperatorName) + theme.Muted.Render(fmt.Sprintf("  %s  logged in %s", a.Date, a.LoginTime)) + "\n\n")
	sb.WriteString(components.ChangeTable(m.status.Changes, "Login", "Now"))
	sb.WriteString("\n" + theme.Muted.Render("e: end shift  r: refresh"))
	return sb.String()
}

func (m Model) renderConfirm() string {
	p := m.preview
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("End shift for %s at %s?", p.OperatorName, p.LogoutTime)) + "\n\n")
	sb.WriteString(components.ChangeTable(p.Changes, "Login", "Logout"))
	sb.WriteString(fmt.Sprintf("\n%s %d\n", theme.Muted.Render("Estimated calls:"), p.EstimatedCallCount))
	sb.WriteString("\n" + theme.Hot.Render("y: confirm") + theme.Muted.Render("  n: cancel"))
	return sb.String()
}

func renderCounts(entries []shiftdto.SnapshotEntry) string {
	if len(entries) == 0 {
		return theme.Muted.Render("no status categories defined") + "\n"
	}
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %-20s %d\n", e.Status, e.Count))
	}
	return sb.String()
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshEvery, func(time.Time) tea.Msg { return RefreshTickMsg{} })
}
