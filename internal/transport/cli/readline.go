// Package cli is the interactive chat: the user talks to one persona, and
// that persona's engine scores the user as the conversation goes.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/duetsim/duet/internal/compat"
	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/observe"
	"github.com/duetsim/duet/internal/persona"
	"github.com/duetsim/duet/internal/service/ui"
	"github.com/duetsim/duet/pkg/log"
)

// UserName labels the human side of a chat session. The persona's observer
// must be created with this name so its summary reads correctly.
const UserName = "Guest"

const (
	defaultSessionID = "cli-local"

	// scoreSamples sizes the per-message posterior draw. Smaller than the
	// stop policy's sample size; this is display only.
	scoreSamples = 2000
)

type ReadLine struct {
	cfg      *config.AppConfig
	agent    *persona.Agent
	observer *observe.Observer
	engine   *compat.Engine
	router   core.CmdRouter
	rl       *readline.Instance

	scored    int
	announced bool
}

func NewReadLine(
	cfg *config.AppConfig,
	agent *persona.Agent,
	observer *observe.Observer,
	engine *compat.Engine,
	router core.CmdRouter,
) (*ReadLine, error) {
	// History lives under the runtime dir, which may not exist yet.
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "chat_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:      cfg,
		agent:    agent,
		observer: observer,
		engine:   engine,
		router:   router,
		rl:       rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("persona", r.agent.Name()).Msg("chat started")

	out := r.rl.Stdout()
	fmt.Fprintf(out, "%s %s\n", ui.SpeakerStyle.Render(r.agent.Name()+":"), r.agent.Introduce())
	fmt.Fprintf(out, "%s\n", ui.DescStyle.Render(r.commandHint()+"  Type 'exit' to quit."))

	for {
		// Readline blocks, so check for shutdown first.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if result, handled := r.router.Execute(ctx, defaultSessionID, line); handled {
			fmt.Fprintf(out, "%s\n", result)
			continue
		}

		r.scoreTurn(out, line)

		r.agent.Observe(UserName, line)
		reply, err := r.agent.Reply(ctx, UserName)
		if err != nil {
			logger.Error().Err(err).Msg("persona reply failed")
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", ui.SpeakerStyle.Render(r.agent.Name()+":"), reply)
	}
}

// scoreTurn feeds one user message through the persona's observer and
// engine, prints the dim running estimate and announces a verdict once the
// stopping policy becomes confident.
func (r *ReadLine) scoreTurn(out io.Writer, line string) {
	r.observer.Observe(line)
	r.engine.Ingest(r.agent.Profile(), r.observer.Snapshot(), observe.AnalyzeTurn(line))
	r.scored++

	est := r.engine.EstimateInterval(scoreSamples)
	fmt.Fprintf(out, "%s\n", ui.ScoreStyle.Render(
		fmt.Sprintf("[%s's read: mean=%.3f [90%% %.3f,%.3f]]", r.agent.Name(), est.Mean, est.Low, est.High)))

	if !r.announced && r.engine.ShouldStop(r.scored-1) {
		status, message := r.engine.Status()
		fmt.Fprintf(out, "%s\n", ui.VerdictStyle.Render(
			fmt.Sprintf("%s reached a confident read: %s. %s", r.agent.Name(), status, message)))
		r.announced = true
	}
}

func (r *ReadLine) commandHint() string {
	names := make([]string, 0)
	for _, cmd := range r.router.ListCommands() {
		names = append(names, "/"+cmd.Name())
	}
	return "Commands: " + strings.Join(names, ", ") + "."
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
