// Package dialogue runs a scored conversation between two personas. Each
// side owns an observer and a compatibility engine pointed at the other, so
// the pair produces two independent verdicts that never share state.
package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"github.com/duetsim/duet/internal/compat"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/observe"
	"github.com/duetsim/duet/internal/persona"
	"github.com/duetsim/duet/pkg/log"
)

const (
	EndReasonDecision  = "compatibility_decision"
	EndReasonTurnLimit = "turn_limit"
)

// scoreSamples sizes the per-turn posterior draw behind live score updates.
// Smaller than the stop-check draw since these are display-only.
const scoreSamples = 2000

// Config shapes one dialogue run. Researcher is optional; when set, both
// personas research each other before the first line. Src is optional and,
// when set, is shared by both engines so scripted runs are reproducible.
type Config struct {
	MaxTurns   int
	TurnPause  time.Duration
	Engine     compat.Config
	Researcher core.Researcher
	Src        rand.Source
}

// side bundles everything one persona brings to the table. The observer and
// engine both face the partner, not the persona itself.
type side struct {
	agent    *persona.Agent
	observer *observe.Observer
	engine   *compat.Engine
}

// Update is one progress event: the intro or a completed turn. Scores is nil
// for the intro, which contributes no evidence.
type Update struct {
	Turn    int
	Speaker string
	Text    string
	Intro   bool
	Scores  *ScorePair
}

// ScorePair holds both directions' live posterior summaries after a turn.
type ScorePair struct {
	FirstName  string
	SecondName string
	First      compat.Interval
	Second     compat.Interval
}

func (s ScorePair) Avg() float64 {
	return 0.5 * (s.First.Mean + s.Second.Mean)
}

// SideReport is one persona's closing view of the other.
type SideReport struct {
	Name          string
	Partner       string
	Status        string
	StatusMessage string
	Estimate      float64
	Factors       []compat.FactorStatus
	Summary       string
	Stats         persona.Stats
}

// Result is the final analysis of a finished dialogue.
type Result struct {
	DialogueID  string
	Turns       int
	EndReason   string
	StoppedBy   string
	First       SideReport
	Second      SideReport
	AvgEstimate float64
	Verdict     string
	VerdictNote string
	Transcript  []persona.Line
}

// Runner drives one dialogue to completion.
type Runner struct {
	cfg    Config
	first  side
	second side
}

func NewRunner(cfg Config, first, second *persona.Agent) *Runner {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 8
	}
	if cfg.Engine == (compat.Config{}) {
		cfg.Engine = compat.DefaultConfig()
	}
	return &Runner{
		cfg: cfg,
		first: side{
			agent:    first,
			observer: observe.NewObserver(second.Name()),
			engine:   compat.NewEngine(cfg.Engine, cfg.Src),
		},
		second: side{
			agent:    second,
			observer: observe.NewObserver(first.Name()),
			engine:   compat.NewEngine(cfg.Engine, cfg.Src),
		},
	}
}

// Run plays the dialogue: the first persona introduces itself, then the two
// sides alternate replies. Every reply is delivered to the listening agent
// and routed through its observer and engine, and that engine's stopping
// policy is checked before the roles swap. The dialogue ends on the first policy trigger or when the
// turn ceiling is reached, whichever comes first. onUpdate, when non-nil, is
// called after the intro and after every turn.
func (r *Runner) Run(ctx context.Context, onUpdate func(Update)) (*Result, error) {
	logger := log.FromCtx(ctx)

	if r.cfg.Researcher != nil {
		if err := r.researchPhase(ctx); err != nil {
			return nil, err
		}
	}

	intro := r.first.agent.Introduce()
	transcript := []persona.Line{{Speaker: r.first.agent.Name(), Text: intro}}
	emit(onUpdate, Update{Turn: 0, Speaker: r.first.agent.Name(), Text: intro, Intro: true})

	// The introduction is recorded but never scored: nobody has listened to
	// a full exchange yet. The second persona speaks first in response.
	r.second.agent.Observe(r.first.agent.Name(), intro)
	speaker, listener := &r.second, &r.first

	turns := 0
	endReason := EndReasonTurnLimit
	stoppedBy := ""

	for turn := 1; turn <= r.cfg.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		reply, err := speaker.agent.Reply(ctx, listener.agent.Name())
		if err != nil {
			return nil, err
		}
		turns = turn
		transcript = append(transcript, persona.Line{Speaker: speaker.agent.Name(), Text: reply})

		listener.agent.Observe(speaker.agent.Name(), reply)
		listener.observer.Observe(reply)
		listener.engine.Ingest(listener.agent.Profile(), listener.observer.Snapshot(), observe.AnalyzeTurn(reply))
		stop := listener.engine.ShouldStop(turn - 1)

		scores := r.scores()
		emit(onUpdate, Update{Turn: turn, Speaker: speaker.agent.Name(), Text: reply, Scores: &scores})

		if stop {
			endReason = EndReasonDecision
			stoppedBy = listener.agent.Name()
			logger.Info().
				Str("stopped_by", stoppedBy).
				Int("turn", turn).
				Msg("stopping policy fired")
			break
		}

		if r.cfg.TurnPause > 0 && turn < r.cfg.MaxTurns {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.cfg.TurnPause):
			}
		}

		speaker, listener = listener, speaker
	}

	return r.finish(turns, endReason, stoppedBy, transcript), nil
}

// researchPhase lets both personas look each other up. Failures degrade to a
// note explaining why, never to an aborted dialogue.
func (r *Runner) researchPhase(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	pairs := []struct {
		agent   *persona.Agent
		partner string
	}{
		{r.first.agent, r.second.agent.Name()},
		{r.second.agent, r.first.agent.Name()},
	}
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info().Str("researcher", p.agent.Name()).Str("subject", p.partner).Msg("research phase")
		notes, err := r.cfg.Researcher.Research(ctx, p.partner)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			notes = fmt.Sprintf("Could not research %s due to: %v", p.partner, err)
			logger.Warn().Err(err).Str("subject", p.partner).Msg("research failed")
		}
		p.agent.SetResearchNotes(p.partner, notes)
	}
	return nil
}

func (r *Runner) scores() ScorePair {
	return ScorePair{
		FirstName:  r.first.agent.Name(),
		SecondName: r.second.agent.Name(),
		First:      r.first.engine.EstimateInterval(scoreSamples),
		Second:     r.second.engine.EstimateInterval(scoreSamples),
	}
}

func (r *Runner) finish(turns int, endReason, stoppedBy string, transcript []persona.Line) *Result {
	avg := 0.5 * (r.first.engine.PointEstimate() + r.second.engine.PointEstimate())
	verdict, note := compat.Verdict(avg, r.cfg.Engine.PositiveThreshold, r.cfg.Engine.NegativeThreshold)

	return &Result{
		DialogueID:  uuid.NewString(),
		Turns:       turns,
		EndReason:   endReason,
		StoppedBy:   stoppedBy,
		First:       r.first.report(r.cfg.Engine.SampleSize),
		Second:      r.second.report(r.cfg.Engine.SampleSize),
		AvgEstimate: avg,
		Verdict:     verdict,
		VerdictNote: note,
		Transcript:  transcript,
	}
}

func (s *side) report(samples int) SideReport {
	status, message := s.engine.Status()
	return SideReport{
		Name:          s.agent.Name(),
		Partner:       s.observer.Name(),
		Status:        status,
		StatusMessage: message,
		Estimate:      s.engine.PointEstimate(),
		Factors:       s.engine.FactorView(samples),
		Summary:       s.observer.Summary(),
		Stats:         s.agent.Stats(),
	}
}

func emit(onUpdate func(Update), u Update) {
	if onUpdate != nil {
		onUpdate(u)
	}
}
