package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/scroll-api/internal/schemas"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server and background workers",
	Long: "Start the HTTP server, resume render polling for studysets left " +
		"pending by a previous run, and process generation requests.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := loadAppConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	validator, err := schemas.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to load schemas: %w", err)
	}

	st, closeStore, err := openStore(ctx, cfg, validator, logger)
	if err != nil {
		return err
	}

	collab, err := newGeminiCollaborators(ctx, cfg.LLM, validator, logger)
	if err != nil {
		_ = closeStore()
		return err
	}

	app, err := newApplication(cfg, logger, st, collab)
	if err != nil {
		_ = closeStore()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	app.closeStore = closeStore

	return app.Run(ctx)
}

// commandContext returns the command's context, or Background when the
// command was invoked without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
