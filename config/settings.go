package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

func LoadUserConfig(dir string) (*UserConfig, error) {
	cfg := DefaultUserConfig()
	userConfigPath := filepath.Join(dir, "config.toml")

	if !FileExists(userConfigPath) {
		if err := CreateDefaultUserConfig(dir); err != nil {
			return nil, fmt.Errorf("failed to create user config: %w", err)
		}
		return cfg, nil
	}

	_, err := toml.DecodeFile(userConfigPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return cfg, nil
}

// SaveUserConfig writes cfg to <dir>/config.toml. The file is replaced
// in one rename so a crash never leaves it half written.
func SaveUserConfig(cfg *UserConfig, dir string) error {
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create user config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode user config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, "config.toml")); err != nil {
		return fmt.Errorf("failed to replace user config: %w", err)
	}
	return nil
}

// SaveMode records mode as the calculator to open next time, keeping the
// rest of config.toml as it is.
func SaveMode(dir, mode string) error {
	cfg, err := LoadUserConfig(dir)
	if err != nil {
		return err
	}
	if cfg.UI.Mode == mode {
		return nil
	}
	cfg.UI.Mode = mode
	return SaveUserConfig(cfg, dir)
}

func CreateDefaultUserConfig(dir string) error {
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	userConfigPath := filepath.Join(dir, "config.toml")
	if FileExists(userConfigPath) {
		return nil
	}

	content := GenerateUserConfigTemplate()
	if err := os.WriteFile(userConfigPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}
