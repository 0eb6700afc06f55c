package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"calctui/calcapi"
	"calctui/config"
	"calctui/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

// showStartupError runs the standalone error modal and exits.
func showStartupError(title, message string) {
	p := tea.NewProgram(
		ui.NewErrorModal(title, message),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		showStartupError("Configuration Error", fmt.Sprintf(
			"%v\n\nCheck %s\nor the CALCTUI_API_URL and CALCTUI_MODE variables.",
			err, config.GetConfigDir()))
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.ConfigDir())
	defer config.SyncLog()

	client, err := calcapi.NewClient(cfg.ServiceURL(), cfg.Timeout)
	if err != nil {
		showStartupError("Service Error", err.Error())
	}

	config.Log.Info("starting calctui",
		zap.String("version", Version),
		zap.String("service", client.BaseURL()),
		zap.String("mode", cfg.Mode),
	)

	p := tea.NewProgram(
		ui.NewAppView(cfg, client, Version, License),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		config.Log.Error("program exited with error", zap.Error(err))
		fmt.Printf("Error running calctui: %v\n", err)
		os.Exit(1)
	}
}
