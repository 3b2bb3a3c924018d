package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/app"
	"github.com/yungbote/neurobridge-edugen/internal/platform/logger"
	"github.com/yungbote/neurobridge-edugen/internal/platform/shutdown"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides http.addr)")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Lookup("addr") != nil {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.NewWithConfig(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
