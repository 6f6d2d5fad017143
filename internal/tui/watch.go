// Package tui implements the live notification watch view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/fetch"
	"github.com/atlassify/atlassify/internal/format"
	"github.com/atlassify/atlassify/internal/settings"
	"github.com/atlassify/atlassify/internal/tray"
)

const headerFooterLines = 3

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

type fetchedMsg struct {
	results []domain.AccountNotifications
	err     error
}

type tickMsg time.Time

// Model is the bubbletea model for the watch view.
type Model struct {
	orchestrator *fetch.Orchestrator
	accounts     []domain.Account
	settings     settings.State

	viewport viewport.Model
	spinner  spinner.Model
	results  []domain.AccountNotifications
	fetching bool
	lastErr  error
	ready    bool
}

// NewModel creates a watch model.
func NewModel(orchestrator *fetch.Orchestrator, accounts []domain.Account, st settings.State) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle
	return &Model{
		orchestrator: orchestrator,
		accounts:     accounts,
		settings:     st,
		spinner:      sp,
	}
}

// Init starts the first fetch and the refresh ticker.
func (m *Model) Init() tea.Cmd {
	m.fetching = true
	return tea.Batch(m.fetchCmd(), m.tickCmd(), m.spinner.Tick)
}

func (m *Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		results, err := m.orchestrator.FetchAll(context.Background(), m.accounts, m.settings)
		return fetchedMsg{results: results, err: err}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	interval := time.Duration(m.settings.RefreshIntervalSeconds) * time.Second
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.fetching {
				m.fetching = true
				return m, m.fetchCmd()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerFooterLines)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerFooterLines
		}
		m.viewport.SetContent(m.content())
		return m, nil

	case fetchedMsg:
		m.fetching = false
		// An overlapping cycle is a no-op, not a failure.
		if msg.err != nil && !errors.Is(msg.err, fetch.ErrFetchInFlight) {
			m.lastErr = msg.err
			return m, nil
		}
		if msg.results != nil {
			m.results = msg.results
			m.lastErr = nil
		}
		if m.ready {
			m.viewport.SetContent(m.content())
		}
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{m.tickCmd()}
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the watch screen.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.header() + "\n" + m.viewport.View() + "\n" + m.footer()
}

func (m *Model) header() string {
	count := domain.CountUnread(m.results)
	if m.lastErr != nil || domain.AllErrored(m.results) {
		count = -1
	}
	state := tray.Derive(count, domain.AnyHasMore(m.results), true, m.settings.Tray())

	title := titleStyle.Render("atlassify")
	status := fmt.Sprintf("icon=%s", state.Icon)
	if state.Title != "" {
		status += " unread=" + state.Title
	}
	if m.fetching {
		status += " " + m.spinner.View() + "refreshing"
	}
	return title + "  " + statusStyle.Render(status)
}

func (m *Model) footer() string {
	return footerStyle.Render("r refresh · q quit")
}

func (m *Model) content() string {
	if m.lastErr != nil {
		return "fetch failed: " + m.lastErr.Error()
	}
	if len(m.results) == 0 {
		return "no accounts configured"
	}
	return format.Results(m.results, format.Options{
		GroupByProduct:      m.settings.GroupByProduct,
		GroupAlphabetically: m.settings.GroupAlphabetically,
		ShowAccountHeader:   len(m.results) > 1,
	})
}

// Run starts the watch view and blocks until the user quits.
func Run(orchestrator *fetch.Orchestrator, accounts []domain.Account, st settings.State) error {
	p := tea.NewProgram(NewModel(orchestrator, accounts, st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
