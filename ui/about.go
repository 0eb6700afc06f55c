package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ASCIIArt = ` ___  __ _ | |  ___ | |_  _   _ (_)
/ __|/ _' || | / __|| __|| | | || |
| (__| (_| || || (__ | |_ | |_| || |
 \___|\__,_||_| \___| \__| \__,_||_|`

var Features = []string{
	"• Operations calculator: pick an operation, enter its numbers",
	"• Expression calculator: type as you would on a desk calculator",
	"• Every result is computed by the calculator service",
	"• Keyboard only, history included",
}

func (a AppView) renderAboutModal(width, height int) string {
	var sb strings.Builder

	asciiStyle := lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true).
		Align(lipgloss.Center)

	sb.WriteString(asciiStyle.Render(ASCIIArt))
	sb.WriteString("\n\n\n")

	featureStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	for _, feature := range Features {
		sb.WriteString(featureStyle.Render(feature))
		sb.WriteString("\n")
	}

	sb.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	sb.WriteString(labelStyle.Render("Version: "))
	sb.WriteString(valueStyle.Render(a.dataModel.Version))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("License: "))
	sb.WriteString(valueStyle.Render(a.dataModel.License))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Service: "))
	sb.WriteString(valueStyle.Render(a.dataModel.Config.ServiceURL()))
	sb.WriteString("\n\n\n")

	sb.WriteString(featureStyle.Render(fmt.Sprintf("Press Esc or %s to close", a.keys.About.Help().Key)))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(sb.String()))
}
