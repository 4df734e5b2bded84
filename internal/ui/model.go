package ui

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/anomaly-terminal/internal/coordinator"
	"github.com/ngmaloney/anomaly-terminal/internal/journal"
	"github.com/ngmaloney/anomaly-terminal/internal/logger"
	"github.com/ngmaloney/anomaly-terminal/internal/models"
	"github.com/ngmaloney/anomaly-terminal/internal/prediction"
)

const appTitle = "Sea Surface Temp Anomaly"

// Options wires the model to its collaborators
type Options struct {
	Window    models.DayWindow
	Client    prediction.Client
	Journal   journal.Recorder // optional
	Logger    *slog.Logger     // optional
	SessionID string
}

// Model represents the application's state
type Model struct {
	width  int
	height int

	coord     coordinator.Coordinator
	pending   coordinator.Ticket // Initial fetch, issued by Init
	client    prediction.Client
	journal   journal.Recorder
	logger    *slog.Logger
	sessionID string

	// Blocking failure notification, dismissed by any key
	notice error

	anomaly *anomalyMap

	spinner spinner.Model
	keys    keyMap
	help    help.Model
}

// NewModel creates the application model and selects today, so the first
// render already shows a pending fetch.
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		coord:     coordinator.New(opts.Window, log),
		client:    opts.Client,
		journal:   opts.Journal,
		logger:    log,
		sessionID: opts.SessionID,
		spinner:   s,
		keys:      newKeyMap(),
		help:      help.New(),
	}
	m.pending = m.coord.Start()
	m.syncView()

	return m
}

// Init issues the initial fetch for today
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchPrediction(m.client, m.pending))
}

// Snapshot exposes the coordinator state as last rendered
func (m Model) Snapshot() coordinator.Snapshot {
	return m.coord.Snapshot()
}

// Notice returns the pending failure notification, if any
func (m Model) Notice() error {
	return m.notice
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.coord.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case predictionFetchedMsg:
		outcome := m.coord.Resolve(msg.done)
		if outcome == coordinator.OutcomeApplied {
			if err := m.coord.State().Err; err != nil {
				m.notice = err
			}
			m.syncView()
		}
		entry := journal.FromCompletion(m.sessionID, msg.done, outcome)
		return m, recordFetch(m.journal, entry)

	case fetchRecordedMsg:
		if msg.err != nil {
			m.logger.Warn("journal write failed", "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey maps key presses onto day selection
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// The notification blocks everything else until acknowledged
	if m.notice != nil {
		m.notice = nil
		return m, nil
	}

	active := m.coord.ActiveIndex()
	switch {
	case key.Matches(msg, m.keys.Pick):
		index, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		return m.selectDay(index - 1)
	case key.Matches(msg, m.keys.Prev):
		if active == 0 {
			return m, nil
		}
		return m.selectDay(active - 1)
	case key.Matches(msg, m.keys.Next):
		if active == models.WindowSize-1 {
			return m, nil
		}
		return m.selectDay(active + 1)
	case key.Matches(msg, m.keys.Reload):
		return m.selectDay(active)
	}

	return m, nil
}

// selectDay forwards a selection to the coordinator and starts the fetch
func (m Model) selectDay(index int) (tea.Model, tea.Cmd) {
	ticket, err := m.coord.SelectDay(index)
	if err != nil {
		m.logger.Error("invalid day selection", "day_index", index, "error", err)
		return m, nil
	}
	m.syncView()

	return m, tea.Batch(m.spinner.Tick, fetchPrediction(m.client, ticket))
}

// syncView derives presentation state from the coordinator after a transition
func (m *Model) syncView() {
	snap := m.coord.Snapshot()
	m.keys.setSelectionEnabled(!snap.Loading)

	switch {
	case snap.Image == nil:
		m.anomaly = nil
	case m.anomaly == nil || m.anomaly.ref != *snap.Image:
		m.anomaly = newAnomalyMap(*snap.Image)
	}
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.notice != nil {
		return m.viewNotice()
	}

	snap := m.coord.Snapshot()

	contentWidth := m.width - 4
	if contentWidth > 120 {
		contentWidth = 120
	}
	if contentWidth < 24 {
		contentWidth = 24
	}

	title := titleBarStyle.Width(contentWidth + 2).Align(lipgloss.Center).Render(appTitle)

	// Title, legend, dock and help take roughly 11 lines
	mapRows := m.height - 13
	if mapRows < 3 {
		mapRows = 3
	}

	sections := []string{
		title,
		mapFrameStyle.Render(m.viewMap(snap, contentWidth, mapRows)),
		" " + renderLegend(contentWidth, snap.MinTemperature, snap.MaxTemperature),
		"",
		renderDock(snap.Window, snap.ActiveIndex, snap.Loading),
		helpStyle.Render(m.help.View(m.keys)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewMap renders the map area: skeleton while loading, the map on success
func (m Model) viewMap(snap coordinator.Snapshot, cols, rows int) string {
	area := lipgloss.NewStyle().Width(cols).Height(rows)

	switch {
	case snap.Loading:
		day := snap.Window[snap.ActiveIndex]
		status := fmt.Sprintf("%s Fetching prediction for %s...", m.spinner.View(), day.Label())
		return skeletonStyle.Width(cols).Height(rows).
			Align(lipgloss.Center, lipgloss.Center).
			Render(status)
	case m.anomaly != nil:
		return area.Align(lipgloss.Center).Render(m.anomaly.render(cols, rows))
	case snap.Phase == coordinator.PhaseFailed:
		return area.Align(lipgloss.Center, lipgloss.Center).
			Render(mutedStyle.Render("No prediction available. Press enter to retry."))
	}

	return area.Render("")
}

// viewNotice renders the blocking failure notification
func (m Model) viewNotice() string {
	title := noticeTitleStyle.Render("✗ Failed to fetch prediction")

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.notice.Error(),
		"",
		mutedStyle.Render("Press any key to continue • Q: Quit"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, noticeStyle.Render(body))
}
