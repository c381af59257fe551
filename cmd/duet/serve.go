package main

import (
	"os"
	"os/signal"

	"github.com/duetsim/duet/pkg/log"
	"github.com/duetsim/duet/pkg/srv"
	"github.com/spf13/cobra"
)

var servePersona string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the configured duet services",
	Long:  `Initializes and starts the configured transports (Telegram bot, interactive chat) and background services.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting duet")

		services := NewServices(ctx, servePersona)

		srv.StartServices(ctx, services)

		// Blocks until a shutdown signal arrives.
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("duet has been shut down gracefully")

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePersona, "persona", "", "persona id for the interactive chat (default: first saved)")
	rootCmd.AddCommand(serveCmd)
}
