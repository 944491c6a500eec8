// Package boardui provides the Bubble Tea leaderboard interface.
package boardui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/runtally/internal/board"
	"github.com/verte-zerg/runtally/internal/model"
	"github.com/verte-zerg/runtally/internal/store"
)

const defaultTop = 25

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	detailStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#C89A3A")).
			Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea leaderboard UI.
type Model struct {
	store *store.Store
	cfg   model.BoardConfig

	report board.Report
	errMsg string

	runTable table.Model
	detail   viewport.Model

	showDetail bool

	filterMode  bool
	filterInput textinput.Model
	filterError string

	width  int
	height int
}

// NewModel constructs a leaderboard UI model.
func NewModel(st *store.Store, cfg model.BoardConfig) *Model {
	if cfg.Top <= 0 {
		cfg.Top = defaultTop
	}
	m := &Model{
		store: st,
		cfg:   cfg,
	}
	m.initTable()
	m.initFilterInput()
	m.detail = viewport.New(60, 12)
	m.refreshReport()
	return m
}

func (m *Model) initTable() {
	columns := []table.Column{
		{Title: "Rank", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 8},
		{Title: "Depth", Width: 6},
		{Title: "Deaths", Width: 6},
		{Title: "Mult", Width: 6},
		{Title: "Result", Width: 18},
		{Title: "Date", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(defaultTop),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	styles.Selected = selectedStyle
	t.SetStyles(styles)
	m.runTable = t
}

func (m *Model) initFilterInput() {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(m.cfg.Top)
	ti.CharLimit = 4
	ti.Width = 6
	m.filterInput = ti
}

func (m *Model) refreshReport() {
	report, err := board.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.report = report
	rows := make([]table.Row, 0, len(report.Top))
	for i, r := range report.Top {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			board.FormatScore(r.ScoreTotal),
			board.FormatDuration(r.Time),
			fmt.Sprintf("%.0fm", r.DepthReached),
			strconv.Itoa(r.Deaths),
			fmt.Sprintf("x%.2f", r.ScoreMult),
			board.ResultLabel(r),
			r.RecordedAt.Format("2006-01-02"),
		})
	}
	m.runTable.SetRows(rows)
	if cursor := m.runTable.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.runTable.SetCursor(len(rows) - 1)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.showDetail {
			return m.updateDetail(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m *Model) resize() {
	height := m.height - 8
	if height < 3 {
		height = 3
	}
	m.runTable.SetHeight(height)
	detailWidth := m.width - 4
	if detailWidth < 20 {
		detailWidth = 20
	}
	m.detail.Width = detailWidth
	m.detail.Height = height
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		if run, ok := m.selectedRun(); ok {
			m.detail.SetContent(strings.Join(board.BreakdownLines(run), "\n"))
			m.detail.GotoTop()
			m.showDetail = true
		}
		return m, nil
	case "v":
		m.cfg.VictoryOnly = !m.cfg.VictoryOnly
		m.refreshReport()
		return m, nil
	case "t":
		m.filterMode = true
		m.filterError = ""
		m.filterInput.SetValue("")
		return m, m.filterInput.Focus()
	case "r":
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.runTable, cmd = m.runTable.Update(msg)
	return m, cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.showDetail = false
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.filterInput.Value())
		top, err := strconv.Atoi(value)
		if err != nil || top <= 0 {
			m.filterError = fmt.Sprintf("invalid board size %q", value)
			return m, nil
		}
		m.cfg.Top = top
		m.filterMode = false
		m.filterInput.Blur()
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) selectedRun() (model.RunStats, bool) {
	cursor := m.runTable.Cursor()
	if cursor < 0 || cursor >= len(m.report.Top) {
		return model.RunStats{}, false
	}
	return m.report.Top[cursor], true
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.titleLine()))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	switch {
	case m.filterMode:
		b.WriteString(headerStyle.Render("Board size:"))
		b.WriteString(" ")
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
		if m.filterError != "" {
			b.WriteString(errorStyle.Render(m.filterError))
			b.WriteString("\n")
		}
		b.WriteString(footerStyle.Render("enter apply · esc cancel"))
	case m.showDetail:
		b.WriteString(detailStyle.Render(m.detail.View()))
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("esc back · q quit"))
	default:
		if len(m.report.Top) == 0 {
			b.WriteString(headerStyle.Render("No runs on the board yet."))
			b.WriteString("\n")
		} else {
			b.WriteString(m.runTable.View())
			b.WriteString("\n")
		}
		b.WriteString(footerStyle.Render("enter details · v victories · t board size · r refresh · q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) titleLine() string {
	title := fmt.Sprintf("runtally · top %d", m.cfg.Top)
	if m.cfg.VictoryOnly {
		title += " (victories)"
	}
	if m.report.Summary.Runs > 0 {
		title += fmt.Sprintf(" · %d runs · best %s",
			m.report.Summary.Runs, board.FormatScore(m.report.Summary.BestScore))
	}
	return title
}
