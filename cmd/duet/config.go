package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/pkg/env"
	"github.com/duetsim/duet/pkg/log"
)

var configCmd = &cobra.Command{
	Use:          "config",
	Short:        "Show the resolved configuration as env lines",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		out, err := renderConfig(ctx)
		if err != nil {
			return err
		}

		fmt.Print(out)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write a starter .env file to the runtime directory",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		out, err := renderConfig(ctx)
		if err != nil {
			return err
		}

		// Same location initEnv loads from on every start.
		path := filepath.Join(config.GetRuntimePath(), ".env")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf(".env file already exists at %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(out), 0600); err != nil {
			return fmt.Errorf("failed to write env file: %w", err)
		}

		log.FromCtx(ctx).Info().Str("path", path).Msg("wrote env file")
		return nil
	},
}

// renderConfig resolves all config sections and renders them as env lines.
func renderConfig(ctx context.Context) (string, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return "", err
	}

	sections := []struct {
		name string
		cfg  any
	}{
		{"app", config.NewAppConfig(ctx)},
		{"engine", config.NewEngineConfig(ctx)},
		{"llm", config.NewLLMConfig(ctx)},
	}

	var out strings.Builder
	for _, s := range sections {
		lines, err := env.MarshalEnv(s.cfg)
		if err != nil {
			return "", fmt.Errorf("failed to marshal %s config: %w", s.name, err)
		}
		fmt.Fprintf(&out, "# %s\n%s\n", s.name, lines)
	}

	return out.String(), nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
