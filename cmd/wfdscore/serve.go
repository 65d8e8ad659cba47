package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/wfdscore/internal/app"
	"github.com/MrSnakeDoc/wfdscore/internal/config"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scoring HTTP service",
	Long: `Serve exposes POST /score for ad-hoc scoring and, when WFD_LOG_FILE is set,
keeps that log scored on GET /live. Configuration comes from WFD_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
		defer func() { _ = loggerClient.Sync() }()

		a, err := app.New(cfg, loggerClient)
		if err != nil {
			loggerClient.Error("❌ wfdscore failed to start", logger.Error(err))
			return err
		}
		return a.Run()
	},
}
