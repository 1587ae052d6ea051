package clients

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "leadtrack/internal/modules/catalog/dto"
	"leadtrack/internal/ui/theme"
)

type ClientsPort interface {
	ListClients(ctx context.Context) ([]catalogdto.ClientOutput, error)
}

type LoadedMsg struct {
	Clients []catalogdto.ClientOutput
	Err     error
}

type clientItem struct {
	client catalogdto.ClientOutput
}

func (i clientItem) Title() string { return i.client.Name }
func (i clientItem) Description() string {
	status := i.client.Status
	if status == "" {
		status = "no status"
	}
	if i.client.Company != "" {
		return fmt.Sprintf("%s · %s", status, i.client.Company)
	}
	return status
}
func (i clientItem) FilterValue() string { return i.client.Name + " " + i.client.Status }

// Model is a read-only list of clients; edits go through the CLI.
type Model struct {
	port   ClientsPort
	list   list.Model
	width  int
	height int
}

func New(port ClientsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Clients"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.LoadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height)
	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Clients: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Clients (%d)", len(msg.Clients))
		items := make([]list.Item, len(msg.Clients))
		for i, c := range msg.Clients {
			items[i] = clientItem{client: c}
		}
		return m, m.list.SetItems(items)
	case tea.KeyMsg:
		if msg.String() == "r" && !m.Filtering() {
			return m, m.LoadCmd()
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(m.list.View())
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) LoadCmd() tea.Cmd {
	return func() tea.Msg {
		clients, err := m.port.ListClients(context.Background())
		return LoadedMsg{Clients: clients, Err: err}
	}
}
