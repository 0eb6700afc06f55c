package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	appmodel "calctui/model"
)

const (
	displayWidth = 36
	cellWidth    = 7
)

// Expression calculator keypad, row by row. Labels are what the key sends.
var expressionKeypad = [][]string{
	{"AC", "CE", "^", "/"},
	{"7", "8", "9", "*"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", ".", "="},
	{"√", "log", "sin", "cos", "tan"},
}

var (
	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(0, 1).
			Width(displayWidth).
			Align(lipgloss.Right)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// updateHistoryContent refreshes whichever history panel the mode shows.
func (a *AppView) updateHistoryContent() {
	entries := a.dataModel.History.Entries()

	if a.dataModel.Mode == appmodel.ModeExpression {
		rows := make([]table.Row, len(entries))
		for i, entry := range entries {
			rows[i] = table.Row{entry.Expression, entry.Result}
		}
		a.historyTable.SetRows(rows)
		a.historyTable.GotoBottom()
		return
	}

	if len(entries) == 0 {
		a.viewport.SetContent(DimStyle.Render(emptyHistory))
		return
	}

	exprWidth := 0
	for _, entry := range entries {
		exprWidth = max(exprWidth, runewidth.StringWidth(entry.Expression))
	}

	var content strings.Builder
	for i, entry := range entries {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(runewidth.FillRight(entry.Expression, exprWidth))
		content.WriteString(DimStyle.Render(" = "))
		content.WriteString(ValueStyle.Render(entry.Result))
	}
	a.viewport.SetContent(content.String())
	a.viewport.GotoBottom()
}

const emptyHistory = "No calculations yet"

func (a AppView) renderHistory() string {
	heading := TitleStyle.Render("History")

	if a.dataModel.History.Len() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, heading, DimStyle.Render(emptyHistory))
	}
	if a.dataModel.Mode == appmodel.ModeExpression {
		return lipgloss.JoinVertical(lipgloss.Left, heading, a.historyTable.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, heading, a.viewport.View())
}

func (a AppView) renderOperationsCalculator() string {
	collector := a.dataModel.Collector

	display := displayStyle.Render(lipgloss.JoinVertical(
		lipgloss.Right,
		DimStyle.Render(collector.Display()),
		TitleStyle.Render(strings.Join(collector.Operands(), " ")),
	))

	lines := []string{display}

	if _, ok := collector.Operation(); ok {
		lines = append(lines, DimStyle.Render(collector.Hint()))
	}
	lines = append(lines, a.renderErrorSlot())

	if a.filterMode {
		lines = append(lines, a.filterInput.View())
	}
	lines = append(lines, a.renderOperationButtons())
	lines = append(lines, "", a.renderResultPanel())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a AppView) renderExpressionCalculator() string {
	expr := a.dataModel.Expression

	pending := expr.Display()
	if n := expr.Queued(); n > 0 {
		pending = fmt.Sprintf("%s (%d keys waiting)", pending, n)
	}
	display := displayStyle.Render(lipgloss.JoinVertical(
		lipgloss.Right,
		DimStyle.Render(pending),
		TitleStyle.Render(expr.Input()),
	))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		display,
		a.renderErrorSlot(),
		renderKeypad(expressionKeypad),
		"",
		a.renderResultPanel(),
	)
}

// renderErrorSlot always takes one line so the layout does not jump.
func (a AppView) renderErrorSlot() string {
	if a.dataModel.Err == "" {
		return " "
	}
	return ErrorStyle.Render(a.dataModel.Err)
}

func (a AppView) renderResultPanel() string {
	return TitleStyle.Render("Result: ") + ValueStyle.Render(a.dataModel.Result)
}

func (a AppView) renderOperationButtons() string {
	ops := a.visibleOperations()
	if len(ops) == 0 {
		if len(a.dataModel.Operations) == 0 {
			return DimStyle.Render("No operations available")
		}
		return DimStyle.Render("No matching operations")
	}

	chosen, _ := a.dataModel.Collector.Operation()
	cols := a.operationColumns()
	width := operationCellWidth(ops)

	var rows []string
	for start := 0; start < len(ops); start += cols {
		end := min(start+cols, len(ops))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			label := "[" + runewidth.FillRight(ops[i], width) + "]"
			switch {
			case i == a.selectedOp:
				cells = append(cells, SelectedStyle.Render(label))
			case ops[i] == chosen:
				cells = append(cells, HighlightStyle.Render(label))
			default:
				cells = append(cells, label)
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

// operationColumns is how many operation buttons fit on one row.
func (a AppView) operationColumns() int {
	width := operationCellWidth(a.visibleOperations()) + 3
	cols := displayWidth / width
	if a.width > 0 {
		cols = a.width / width
	}
	return max(1, min(cols, 4))
}

func operationCellWidth(ops []string) int {
	width := cellWidth
	for _, op := range ops {
		width = max(width, runewidth.StringWidth(op))
	}
	return width
}

func renderKeypad(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, label := range row {
			// FillLeft pads by display width, not bytes
			cells[j] = buttonStyle.Render("[" + runewidth.FillLeft(label, cellWidth-2) + "]")
		}
		lines[i] = strings.Join(cells, " ")
	}
	return strings.Join(lines, "\n")
}
