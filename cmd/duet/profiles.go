package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/profile"
	"github.com/duetsim/duet/internal/service/ui"
	"github.com/duetsim/duet/pkg/log"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage saved personas",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		profiles, err := store.List()
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No personas yet. Run 'duet profiles init' to seed examples or 'duet wizard' to build one.")
			return nil
		}

		for _, p := range profiles {
			desc := p.Name
			if p.Age > 0 {
				desc += fmt.Sprintf(", %d", p.Age)
			}
			if p.Occupation != "" {
				desc += ", " + p.Occupation
			}
			fmt.Printf("%s  %s\n", ui.FlagStyle.Render(p.Slug()), ui.DescStyle.Render(desc))
		}
		return nil
	},
}

var profilesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the store with example personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		for _, p := range profile.Examples() {
			id, err := store.Save(p)
			if err != nil {
				return fmt.Errorf("failed to save %q: %w", p.Name, err)
			}
			logger.Debug().Str("id", id).Msg("seeded persona")
		}

		logger.Info().Msgf("seeded %d example personas", len(profile.Examples()))
		return nil
	},
}

var profilesImportCmd = &cobra.Command{
	Use:          "import <name> <url>",
	Short:        "Import a persona from a web page",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		prof, err := profile.NewImporter().FromURL(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to import persona: %w", err)
		}

		id, err := store.Save(prof)
		if err != nil {
			return fmt.Errorf("failed to save persona: %w", err)
		}

		logger.Info().Msgf("imported persona %q as %q", prof.Name, id)
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		if err := store.Delete(args[0]); err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Msgf("deleted persona %q", args[0])
		return nil
	},
}

func openStore(ctx context.Context) (*profile.Store, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, err
	}
	appCfg := config.NewAppConfig(ctx)
	return profile.NewStore(appCfg.GetProfilesPath()), nil
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesInitCmd)
	profilesCmd.AddCommand(profilesImportCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	rootCmd.AddCommand(profilesCmd)
}
