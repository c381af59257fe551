// Package telegram exposes duels over a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/duetsim/duet/internal/compat"
	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/dialogue"
	"github.com/duetsim/duet/internal/persona"
	"github.com/duetsim/duet/internal/profile"
	"github.com/duetsim/duet/pkg/log"
)

const baseContextKey = "base_context"

// Deps bundles everything a duel needs at runtime. Researcher may be nil.
// When Dialogues and Reports are set, every finished duel is persisted.
type Deps struct {
	App        *config.AppConfig
	Engine     compat.Config
	Provider   core.AIProvider
	Profiles   *profile.Store
	Researcher core.Researcher
	Dialogues  core.DialoguesRepository
	Reports    core.ReportsRepository
}

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	deps    Deps
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	deps Deps,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		deps:    deps,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Hand every handler the signal-aware base context.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Anyone but the owner is ignored.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/duel", bot.handleDuel)
	b.Handle("/profiles", bot.handleProfiles)
	b.Handle("/help", bot.handleHelp)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleDuel(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /duel <first_id> <second_id>\nPick ids from /profiles.")
	}

	first, err := b.deps.Profiles.Load(args[0])
	if err != nil {
		return c.Send(fmt.Sprintf("Unknown persona %q. Try /profiles.", args[0]))
	}
	second, err := b.deps.Profiles.Load(args[1])
	if err != nil {
		return c.Send(fmt.Sprintf("Unknown persona %q. Try /profiles.", args[1]))
	}

	_ = c.Notify(tele.Typing)

	runner := dialogue.NewRunner(dialogue.Config{
		MaxTurns:   b.deps.App.MaxTurns,
		TurnPause:  b.deps.App.TurnPause,
		Engine:     b.deps.Engine,
		Researcher: b.deps.Researcher,
	},
		persona.NewAgent(b.deps.App, first, b.deps.Provider),
		persona.NewAgent(b.deps.App, second, b.deps.Provider),
	)

	if err := c.Send(dialogue.Banner(first.Name, second.Name)); err != nil {
		return err
	}

	res, err := runner.Run(ctx, func(u dialogue.Update) {
		if err := c.Send(fmt.Sprintf("%s: %s", u.Speaker, u.Text)); err != nil {
			logger.Error().Err(err).Int("turn", u.Turn).Msg("failed to send turn")
			return
		}
		if u.Scores != nil {
			if err := c.Send(u.Scores.Line()); err != nil {
				logger.Error().Err(err).Int("turn", u.Turn).Msg("failed to send score line")
			}
		}
		_ = c.Notify(tele.Typing)
	})
	if err != nil {
		logger.Error().Err(err).Msg("duel failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	if b.deps.Dialogues != nil && b.deps.Reports != nil {
		if err := dialogue.Persist(ctx, b.deps.Dialogues, b.deps.Reports, res); err != nil {
			logger.Error().Err(err).Str("dialogue_id", res.DialogueID).Msg("failed to persist duel")
		}
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), dialogue.RenderMarkdown(res), false)
}

func (b *Bot) handleProfiles(c tele.Context) error {
	profiles, err := b.deps.Profiles.List()
	if err != nil {
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	if len(profiles) == 0 {
		return c.Send("No personas yet. Create one with `duet wizard` on the host.")
	}

	var sb strings.Builder
	sb.WriteString("Personas:\n")
	for _, p := range profiles {
		fmt.Fprintf(&sb, "• %s: %s", p.Slug(), p.Name)
		if p.Age > 0 {
			fmt.Fprintf(&sb, ", %d", p.Age)
		}
		if p.Occupation != "" {
			fmt.Fprintf(&sb, ", %s", p.Occupation)
		}
		sb.WriteString("\n")
	}
	return c.Send(sb.String())
}

func (b *Bot) handleHelp(c tele.Context) error {
	return c.Send("Commands:\n" +
		"/duel <a> <b> - run a scored conversation between two personas\n" +
		"/profiles - list saved personas\n" +
		"/help - this message")
}
