package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	ModeOperations = "operations"
	ModeExpression = "expression"
)

type ServiceConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout,omitempty"`
}

type UIConfig struct {
	Mode string `toml:"mode"`
}

type UserConfig struct {
	Service ServiceConfig `toml:"service"`
	UI      UIConfig      `toml:"ui"`
}

type Config struct {
	ConfigDirectory string
	BaseURL         string
	Timeout         time.Duration
	Mode            string
	Keybindings     *KeyBindingsConfig
}

// Log is a no-op logger until InitDebugLog swaps in a file logger.
var Log = zap.NewNop()

func (c *Config) ServiceURL() string {
	return c.BaseURL
}

func (c *Config) ConfigDir() string {
	return ExpandPath(c.ConfigDirectory)
}

func (c *Config) applyEnvOverrides() {
	if baseURL := os.Getenv("CALCTUI_API_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}
	if mode := os.Getenv("CALCTUI_MODE"); mode != "" {
		c.Mode = mode
	}
}

// Validate reports the first setting that would keep the calculator from starting.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeOperations, ModeExpression:
	default:
		return fmt.Errorf("unknown mode %q (expected %q or %q)", c.Mode, ModeOperations, ModeExpression)
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid service base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("service base_url must be http or https, got %q", c.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("service base_url has no host: %q", c.BaseURL)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("service timeout cannot be negative: %s", c.Timeout)
	}

	return nil
}

func CheckDebug() bool {
	debug := os.Getenv("CALCTUI_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog points Log at <dir>/debug.log when CALCTUI_DEBUG is set.
// The terminal belongs to the UI, so nothing is ever logged to stderr.
func InitDebugLog(dir string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dir, "debug.log")

	// Create up front so the file gets 0600 instead of zap's default mode
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}
	f.Close()

	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{logPath}
	zcfg.ErrorOutputPaths = []string{logPath}

	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not start debug log: %v\n", err)
		return
	}

	Log = logger
	Log.Debug("debug logging started",
		zap.String("CALCTUI_DEBUG", os.Getenv("CALCTUI_DEBUG")),
		zap.String("path", logPath),
	)
}

func SyncLog() {
	_ = Log.Sync()
}

func Load() (*Config, error) {
	cfg := &Config{
		ConfigDirectory: GetConfigDir(),
		BaseURL:         DefaultBaseURL,
		Mode:            ModeOperations,
	}

	dir := cfg.ConfigDir()
	if err := EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if userCfg.Service.BaseURL != "" {
		cfg.BaseURL = userCfg.Service.BaseURL
	}
	if userCfg.UI.Mode != "" {
		cfg.Mode = userCfg.UI.Mode
	}
	if userCfg.Service.Timeout != "" {
		timeout, err := time.ParseDuration(userCfg.Service.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid service timeout %q: %w", userCfg.Service.Timeout, err)
		}
		cfg.Timeout = timeout
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kb, err := LoadKeybindings(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	if ok, warning := kb.Validate(); !ok {
		return nil, fmt.Errorf("invalid keybindings: %s", warning)
	}
	cfg.Keybindings = kb

	return cfg, nil
}
