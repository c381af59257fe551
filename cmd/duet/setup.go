package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/duetsim/duet/internal/compat"
	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/observe"
	"github.com/duetsim/duet/internal/persona"
	"github.com/duetsim/duet/internal/profile"
	"github.com/duetsim/duet/internal/providers/llm"
	"github.com/duetsim/duet/internal/providers/research"
	"github.com/duetsim/duet/internal/service/command"
	"github.com/duetsim/duet/internal/service/state"
	"github.com/duetsim/duet/internal/storage/sqlite"
	"github.com/duetsim/duet/internal/transport/cli"
	"github.com/duetsim/duet/internal/transport/telegram"
	"github.com/duetsim/duet/pkg/log"
	"github.com/duetsim/duet/pkg/srv"
)

func NewServices(ctx context.Context, chatPersona string) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Config from env
	appCfg := config.NewAppConfig(ctx)
	engineCfg := config.NewEngineConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	// 2. Persona store
	store := profile.NewStore(appCfg.GetProfilesPath())

	// 3. AI provider, swappable at runtime through /model
	provider, err := llm.NewDynamicProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Pre-dialogue research (optional)
	researcher, researchServices := newResearcher(appCfg, provider)
	services = append(services, researchServices...)

	// 5. Transports
	if appCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize storage")
		}
		services = append(services, srv.NewCleanup(db.Close))

		bot, err := telegram.NewBot(ctx, tgCfg, telegram.Deps{
			App:        appCfg,
			Engine:     engineCompat(engineCfg),
			Provider:   provider,
			Profiles:   store,
			Researcher: researcher,
			Dialogues:  sqlite.NewDialoguesRepo(db),
			Reports:    sqlite.NewReportsRepo(db),
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	if appCfg.EnableCLI {
		chat, err := newChatService(appCfg, engineCfg, llmCfg, provider, store, chatPersona)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize chat session")
		}
		services = append(services, chat)
	}

	if !appCfg.EnableTelegram && !appCfg.EnableCLI {
		logger.Warn().Msg("no transports enabled; set DUET_ENABLE_TELEGRAM or DUET_ENABLE_CLI")
	}

	return services
}

// newChatService wires an interactive chat with one persona. An empty id
// picks the first saved persona.
func newChatService(
	appCfg *config.AppConfig,
	engineCfg *config.EngineConfig,
	llmCfg *config.LLMConfig,
	provider *llm.DynamicProvider,
	store *profile.Store,
	id string,
) (srv.Service, error) {
	prof, err := loadChatPersona(store, id)
	if err != nil {
		return nil, err
	}

	agent := persona.NewAgent(appCfg, prof, provider)
	observer := observe.NewObserver(cli.UserName)
	engine := compat.NewEngine(engineCompat(engineCfg), nil)

	commands := command.NewCommands(
		llmCfg,
		state.NewGlobalState(provider),
		prof.Name,
		engine,
		observer,
		store,
		engineCfg.SampleSize,
	)

	return cli.NewReadLine(appCfg, agent, observer, engine, command.New(commands))
}

func loadChatPersona(store *profile.Store, id string) (profile.Profile, error) {
	if id != "" {
		return store.Load(id)
	}

	profiles, err := store.List()
	if err != nil {
		return profile.Profile{}, err
	}
	if len(profiles) == 0 {
		return profile.Profile{}, errors.New("no personas saved; run 'duet profiles init' or 'duet wizard' first")
	}
	return profiles[0], nil
}

// newResearcher wires the MCP-backed research stack when enabled. The
// returned services must be running before the researcher is used.
func newResearcher(appCfg *config.AppConfig, provider core.AIProvider) (core.Researcher, []srv.Service) {
	if !appCfg.EnableResearch {
		return nil, nil
	}

	registry := research.NewRegistry(research.NewFileStorage(appCfg.GetResearchConfigPath()))
	svc := research.NewService(research.NewPool(), registry, research.NewToolCache())
	return research.NewResearcher(provider, svc), []srv.Service{svc}
}

// engineCompat maps the env-driven settings onto the engine's config.
func engineCompat(cfg *config.EngineConfig) compat.Config {
	return compat.Config{
		PositiveThreshold: cfg.PositiveThreshold,
		NegativeThreshold: cfg.NegativeThreshold,
		Confidence:        cfg.Confidence,
		MinTurns:          cfg.MinTurns,
		DecisionCooldown:  cfg.DecisionCooldown,
		SampleSize:        cfg.SampleSize,
		TrendWindow:       cfg.TrendWindow,
		TrendGuard:        cfg.TrendGuard,
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
