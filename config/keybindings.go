package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBindingsConfig holds the modifier choice and optional per-action overrides
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"`
}

type ModifierConfig struct {
	Primary string `toml:"primary"` // e.g., "alt", "ctrl"
}

type actionDef struct {
	modifier string // "primary" or "none"
	key      string
}

// actionRegistry maps action names to their default keys.
// Digits, "." and the + - * / operators are fixed and not listed here.
var actionRegistry = map[string]actionDef{
	// Global
	"help":            {"primary", "h"},
	"about":           {"primary", "a"},
	"quit":            {"primary", "q"},
	"switch_mode":     {"none", "tab"},
	"yank_result":     {"primary", "y"},
	"refresh_history": {"primary", "r"},

	// Both modes
	"evaluate":  {"none", "="},
	"all_clear": {"none", "esc"},

	// Operations mode
	"select_operation":  {"none", "enter"},
	"filter_operations": {"none", "/"},
	"operation_next":    {"none", "right"},
	"operation_prev":    {"none", "left"},
	"operation_down":    {"none", "down"},
	"operation_up":      {"none", "up"},

	// Expression mode
	"clear_entry": {"none", "delete"},
	"pow":         {"none", "^"},
	"sqrt":        {"none", "s"},
	"log":         {"none", "l"},
	"sin":         {"none", "n"},
	"cos":         {"none", "c"},
	"tan":         {"none", "t"},
}

func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{
			Primary: "alt",
		},
	}
}

// LoadKeybindings loads keybindings.toml from dir, writing the template on first run
func LoadKeybindings(dir string) (*KeyBindingsConfig, error) {
	cfg := DefaultKeybindings()
	keybindingsPath := filepath.Join(dir, "keybindings.toml")

	if !FileExists(keybindingsPath) {
		if err := CreateDefaultKeybindings(dir); err != nil {
			return nil, fmt.Errorf("failed to create keybindings: %w", err)
		}
		return cfg, nil
	}

	_, err := toml.DecodeFile(keybindingsPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	if cfg.Modifiers.Primary == "" {
		cfg.Modifiers.Primary = "alt"
	}

	return cfg, nil
}

func CreateDefaultKeybindings(dir string) error {
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	keybindingsPath := filepath.Join(dir, "keybindings.toml")
	if FileExists(keybindingsPath) {
		return nil
	}

	if err := os.WriteFile(keybindingsPath, []byte(GenerateKeybindingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write keybindings: %w", err)
	}

	return nil
}

func GenerateKeybindingsTemplate() string {
	return `# calctui keybindings
# Location: ~/.config/calctui/keybindings.toml
# This file uses TOML format: https://toml.io

[modifiers]
primary = "alt"   # Used by help, about, quit, yank_result and refresh_history

[actions]
# Override single actions here. Examples:
#   quit = "ctrl+q"
#   clear_entry = "backspace"
#   sqrt = "r"
`
}

func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return "alt"
	}
	return kb.Modifiers.Primary
}

// PrimaryKey builds a keybinding string with the primary modifier
// Example: PrimaryKey("q") returns "alt+q"
func (kb *KeyBindingsConfig) PrimaryKey(key string) string {
	return kb.Primary() + "+" + key
}

// GetActionKey returns the key for an action: user override, then registry default.
// Unknown actions return "".
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if kb.Actions != nil {
		if override, exists := kb.Actions[action]; exists && override != "" {
			return override
		}
	}

	if def, exists := actionRegistry[action]; exists {
		switch def.modifier {
		case "primary":
			return kb.PrimaryKey(def.key)
		case "none":
			return def.key
		}
	}

	return ""
}

// DisplayActionKey returns a display-friendly version of an action's key
// Example: "alt+q" -> "Alt+Q"
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}
	return capitalizeKeybinding(key)
}

func capitalizeKeybinding(key string) string {
	// "+" alone is a key, not a separator
	if key == "+" {
		return key
	}

	parts := strings.Split(key, "+")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		result = append(result, strings.ToUpper(part[:1])+part[1:])
	}
	return strings.Join(result, "+")
}

// Validate checks if the configuration is usable
// Returns (isValid, warningMessage)
func (kb *KeyBindingsConfig) Validate() (bool, string) {
	primary := kb.Primary()

	if primary == "shift" {
		return false, "Shift alone conflicts with typing"
	}

	for action := range kb.Actions {
		if _, known := actionRegistry[action]; !known {
			return false, fmt.Sprintf("Unknown action %q", action)
		}
	}

	if strings.Contains(primary, "ctrl") {
		return true, "Warning: Ctrl may conflict with terminal shortcuts (Ctrl+C, Ctrl+Z, Ctrl+D)"
	}

	return true, ""
}
