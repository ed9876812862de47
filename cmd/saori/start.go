package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/saori/pkg/log"
	"github.com/sandevgo/saori/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Saori services",
	Long:  `Starts the HTTP API and the configured chat channels (Telegram, terminal) and waits for a shutdown signal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Leaving the terminal chat stops everything else too.
		ctx, exit := context.WithCancel(ctx)
		defer exit()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting saori")

		services := NewServices(ctx, exit)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("saori has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
