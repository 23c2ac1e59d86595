package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent renders cfg as a TOML document suitable for
// $XDG_CONFIG_HOME/dotgen/config.toml.
func GenerateConfigContent(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render configuration: %w", err)
	}
	header := "# dotgen configuration\n# Written by `dotgen genconfig`. Remove any key to fall back to the default.\n\n"
	return header + string(data), nil
}
