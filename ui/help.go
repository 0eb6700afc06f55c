package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"calctui/config"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.dataModel.Config.Keybindings
	if kb == nil {
		kb = config.DefaultKeybindings()
	}
	key := kb.DisplayActionKey

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("calctui - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global"),
		fmt.Sprintf("• %-10s Switch calculator", key("switch_mode")),
		fmt.Sprintf("• %-10s Copy result", key("yank_result")),
		fmt.Sprintf("• %-10s Reload history", key("refresh_history")),
		fmt.Sprintf("• %-10s Toggle this help", key("help")),
		fmt.Sprintf("• %-10s About", key("about")),
		fmt.Sprintf("• %-10s Quit", key("quit")),
	)

	operations := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Operations calculator"),
		fmt.Sprintf("• %-10s Move between operations", "Arrows"),
		fmt.Sprintf("• %-10s Choose operation", key("select_operation")),
		fmt.Sprintf("• %-10s Filter operations", key("filter_operations")),
		fmt.Sprintf("• %-10s Add a number", "0-9 ."),
		fmt.Sprintf("• %-10s Calculate", key("evaluate")),
		fmt.Sprintf("• %-10s Clear (C)", key("all_clear")),
	)

	expression := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Expression calculator"),
		fmt.Sprintf("• %-10s Digits and decimal point", "0-9 ."),
		fmt.Sprintf("• %-10s Operators", "+ - * /"),
		fmt.Sprintf("• %-10s Power", key("pow")),
		fmt.Sprintf("• %-10s Square root", key("sqrt")),
		fmt.Sprintf("• %-10s Log", key("log")),
		fmt.Sprintf("• %-10s Sin / Cos / Tan", key("sin")+" "+key("cos")+" "+key("tan")),
		fmt.Sprintf("• %-10s Equals", key("evaluate")+" Enter"),
		fmt.Sprintf("• %-10s All clear (AC)", key("all_clear")),
		fmt.Sprintf("• %-10s Clear entry (CE)", key("clear_entry")),
	)

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Tips"),
		"• Results come from "+a.dataModel.Config.ServiceURL(),
		"• Evaluation is left to right",
	)

	columnStyle := lipgloss.NewStyle().Width(44).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, globalActions, "", operations)),
		columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, expression, "", tips)),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("Press %s or Esc to close this help", key("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
