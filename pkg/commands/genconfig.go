package commands

import (
	"github.com/arthur-debert/dotgen/pkg/config"
	"github.com/arthur-debert/dotgen/pkg/logging"
)

// GenConfig returns the effective configuration as TOML.
func GenConfig(env *Env) (string, error) {
	logger := logging.GetLogger("commands.genconfig")
	logger.Debug().Msg("Rendering effective config")
	return config.GenerateConfigContent(env.Config)
}
