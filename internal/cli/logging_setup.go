package cli

import (
	"github.com/spf13/cobra"

	"github.com/SharodX/keymark-heat-pumps/internal/config"
	"github.com/SharodX/keymark-heat-pumps/internal/logging"
)

// setupLogging configures logging from config file, environment and CLI
// flags, loads the application config, and attaches both to the command
// context.
func setupLogging(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	loggingCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Out:    cmd.ErrOrStderr(),
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
	}

	root := logging.NewLogger(loggingCfg)
	logger = logging.ComponentLogger(root, "cli")

	ctx := logging.WithContext(cmd.Context(), root)
	ctx = config.WithContext(ctx, cfg)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}
