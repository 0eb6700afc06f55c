package config

const DefaultBaseURL = "http://localhost:8080/api/calculator"

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Service: ServiceConfig{
			BaseURL: DefaultBaseURL,
		},
		UI: UIConfig{
			Mode: ModeOperations,
		},
	}
}

func GenerateUserConfigTemplate() string {
	return `# calctui configuration
# Location: ~/.config/calctui/config.toml
# This file uses TOML format: https://toml.io

[service]
# Calculator service; /operations, /history and /calculate live under it
base_url = "` + DefaultBaseURL + `"

# Per-request timeout (Go duration, e.g. "10s"). Empty means wait forever.
timeout = ""

[ui]
# "operations": pick an operation, then enter its operands
# "expression": running calculator with + - * / and scientific keys
mode = "` + ModeOperations + `"
`
}
