package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/duetsim/duet/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"DUET_RUNTIME_PATH" envDefault:".duet"`

	// Transport flags
	EnableTelegram bool `env:"DUET_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"DUET_ENABLE_CLI" envDefault:"true"`

	// Dialogue pacing
	MaxTurns  int           `env:"DUET_MAX_TURNS" envDefault:"8"`
	TurnPause time.Duration `env:"DUET_TURN_PAUSE" envDefault:"500ms"`

	// Pre-dialogue research through an MCP search server
	EnableResearch bool `env:"DUET_ENABLE_RESEARCH" envDefault:"false"`

	// Prompt context management
	ContextWindowSize int `env:"DUET_CONTEXT_WINDOW_SIZE" envDefault:"10"`
	PromptTokenBudget int `env:"DUET_PROMPT_TOKEN_BUDGET" envDefault:"1200"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetProfilesPath() string {
	return filepath.Join(c.RuntimePath, "profiles")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "duet.db")
}

func (c AppConfig) GetResearchConfigPath() string {
	return filepath.Join(c.RuntimePath, "research.json")
}
