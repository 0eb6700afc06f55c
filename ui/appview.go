package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calctui/config"
	appmodel "calctui/model"
)

const (
	minHistoryHeight = 3
	// Lines taken by everything above and below the history panel
	reservedLines = 20
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	keys keyMap
	help help.Model

	// History panels: flat list for operations, table for expressions
	viewport     viewport.Model
	historyTable table.Model

	// Window state
	width  int
	height int
	ready  bool

	showHelp  bool
	showAbout bool

	// Loading spinner; ticks only while a calculation is outstanding
	loadingSpinner spinner.Model
	spinning       bool

	// Operation selector
	selectedOp  int
	filterMode  bool
	filterInput textinput.Model
	filteredOps []string

	// One-line notice in the footer (e.g. "Copied")
	flash   string
	flashID int
}

func NewAppView(cfg *config.Config, service appmodel.CalculatorService, version, license string) AppView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = AccentStyle

	filterInput := textinput.New()
	filterInput.Prompt = "Filter: "
	filterInput.CharLimit = 32

	t := table.New(
		table.WithColumns(historyColumns(60)),
		table.WithHeight(minHistoryHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle()
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(successColor).Bold(true)

	return AppView{
		dataModel:      appmodel.NewModel(cfg, service, version, license),
		keys:           newKeyMap(cfg.Keybindings),
		help:           h,
		viewport:       viewport.New(0, minHistoryHeight),
		historyTable:   t,
		loadingSpinner: s,
		filterInput:    filterInput,
	}
}

func (a AppView) Init() tea.Cmd {
	return a.dataModel.Mount()
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading calctui..."
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showAbout {
		return a.renderAboutModal(a.width, a.height)
	}

	modeName := "Operations"
	if a.dataModel.Mode == appmodel.ModeExpression {
		modeName = "Expression"
	}
	title := AccentStyle.Render("calctui") +
		TitleStyle.Render(" - "+modeName) +
		DimStyle.Render(" - "+a.dataModel.Config.ServiceURL())
	if a.dataModel.Busy() {
		title += " " + a.loadingSpinner.View()
	}

	var body string
	if a.dataModel.Mode == appmodel.ModeOperations {
		body = a.renderOperationsCalculator()
	} else {
		body = a.renderExpressionCalculator()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		body,
		"",
		a.renderHistory(),
		a.renderFooter(),
	)
}

func (a AppView) renderFooter() string {
	if a.filterMode {
		return StatusStyle.Render(FormatFooter("Enter", "Select", "↑/↓", "Move", "Esc", "Cancel"))
	}

	var keys help.KeyMap = operationsHelp{a.keys}
	if a.dataModel.Mode == appmodel.ModeExpression {
		keys = expressionHelp{a.keys}
	}
	footer := a.help.View(keys)
	if a.flash != "" {
		footer += "  " + DimStyle.Render(a.flash)
	}
	return StatusStyle.Render(footer)
}

func historyColumns(width int) []table.Column {
	resultWidth := 16
	exprWidth := width - resultWidth - 4
	if exprWidth < 10 {
		exprWidth = 10
	}
	return []table.Column{
		{Title: "Expression", Width: exprWidth},
		{Title: "Result", Width: resultWidth},
	}
}
