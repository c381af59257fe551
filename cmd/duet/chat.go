package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/profile"
	"github.com/duetsim/duet/internal/providers/llm"
)

var chatCmd = &cobra.Command{
	Use:          "chat [persona_id]",
	Short:        "Chat with a persona while it scores you as a match",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		engineCfg := config.NewEngineConfig(ctx)
		llmCfg := config.NewLLMConfig(ctx)

		provider, err := llm.NewDynamicProvider(ctx, llmCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize LLM provider: %w", err)
		}

		store := profile.NewStore(appCfg.GetProfilesPath())

		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		session, err := newChatService(appCfg, engineCfg, llmCfg, provider, store, id)
		if err != nil {
			return err
		}

		if err := session.Start(ctx); err != nil {
			return err
		}
		return session.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
