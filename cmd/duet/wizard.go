package main

import (
	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/profile"
	"github.com/duetsim/duet/internal/service/wizard"
	"github.com/duetsim/duet/pkg/log"
	"github.com/spf13/cobra"
)

var wizardCmd = &cobra.Command{
	Use:           "wizard",
	Short:         "Build a persona interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		store := profile.NewStore(appCfg.GetProfilesPath())

		state, err := wizard.RunWizard(store)
		if err != nil {
			return err
		}

		logger.Info().Msgf("persona saved as %q; try 'duet run %s <partner_id>'", state.SavedID, state.SavedID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}
