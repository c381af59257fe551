package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/dialogue"
	"github.com/duetsim/duet/internal/persona"
	"github.com/duetsim/duet/internal/profile"
	"github.com/duetsim/duet/internal/providers/llm"
	"github.com/duetsim/duet/internal/service/ui"
	"github.com/duetsim/duet/internal/storage/sqlite"
	"github.com/duetsim/duet/pkg/log"
)

var (
	runMaxTurns int
	runResearch bool
	runSave     bool
	runLogPath  string
	runScript   string
)

var runCmd = &cobra.Command{
	Use:          "run <first_id> <second_id>",
	Short:        "Run a scored dialogue between two saved personas",
	Args:         cobra.ExactArgs(2),
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

		store := profile.NewStore(appCfg.GetProfilesPath())
		first, err := store.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load persona %q: %w", args[0], err)
		}
		second, err := store.Load(args[1])
		if err != nil {
			return fmt.Errorf("failed to load persona %q: %w", args[1], err)
		}

		cfg := dialogue.Config{
			MaxTurns:  appCfg.MaxTurns,
			TurnPause: appCfg.TurnPause,
			Engine:    engineCompat(engineCfg),
		}
		if runMaxTurns > 0 {
			cfg.MaxTurns = runMaxTurns
		}

		var firstAI, secondAI core.AIProvider
		if runScript != "" {
			// Scripted runs skip research so the script only feeds dialogue turns.
			firstAI, secondAI, err = scriptedProviders(runScript)
			if err != nil {
				return err
			}
		} else {
			provider, err := llm.NewDynamicProvider(ctx, config.NewLLMConfig(ctx))
			if err != nil {
				return fmt.Errorf("failed to initialize LLM provider: %w", err)
			}
			firstAI, secondAI = provider, provider

			if runResearch {
				appCfg.EnableResearch = true
			}
			researcher, researchServices := newResearcher(appCfg, provider)
			for _, svc := range researchServices {
				if err := svc.Start(ctx); err != nil {
					return fmt.Errorf("failed to start research: %w", err)
				}
				defer svc.Shutdown(ctx)
			}
			cfg.Researcher = researcher
		}

		runner := dialogue.NewRunner(cfg,
			persona.NewAgent(appCfg, first, firstAI),
			persona.NewAgent(appCfg, second, secondAI),
		)

		fmt.Println(ui.TitleStyle.Render(dialogue.Banner(first.Name, second.Name)))

		res, err := runner.Run(ctx, printUpdate)
		if err != nil {
			return err
		}

		fmt.Println(dialogue.RenderText(res))

		if runSave {
			if err := saveResult(ctx, appCfg, res); err != nil {
				return err
			}
			log.FromCtx(ctx).Info().Str("dialogue_id", res.DialogueID).Msg("dialogue saved")
		}

		if runLogPath != "" {
			if err := writeLogFile(runLogPath, res); err != nil {
				return err
			}
			log.FromCtx(ctx).Info().Str("path", runLogPath).Msg("conversation log written")
		}

		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runMaxTurns, "max-turns", 0, "override the configured turn limit")
	runCmd.Flags().BoolVar(&runResearch, "research", false, "research each persona's partner before the first turn")
	runCmd.Flags().BoolVar(&runSave, "save", false, "persist the dialogue and reports to the local database")
	runCmd.Flags().StringVar(&runLogPath, "log", "", "write a JSON conversation log to this path")
	runCmd.Flags().StringVar(&runScript, "script", "", "drive both personas from a JSON script instead of an LLM")
	rootCmd.AddCommand(runCmd)
}

func printUpdate(u dialogue.Update) {
	fmt.Printf("%s %s\n", ui.SpeakerStyle.Render(u.Speaker+":"), u.Text)
	if u.Scores != nil {
		fmt.Println(ui.ScoreStyle.Render(u.Scores.Line()))
	}
	fmt.Println()
}

// scriptFile holds pre-written lines for each side, in speaking order.
type scriptFile struct {
	First  []string `json:"first"`
	Second []string `json:"second"`
}

func scriptedProviders(path string) (core.AIProvider, core.AIProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read script: %w", err)
	}

	var s scriptFile
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if len(s.First) == 0 || len(s.Second) == 0 {
		return nil, nil, errors.New("script must provide lines for both sides")
	}

	return llm.NewScripted(s.First), llm.NewScripted(s.Second), nil
}

func saveResult(ctx context.Context, cfg *config.AppConfig, res *dialogue.Result) error {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer db.Close()

	return dialogue.Persist(ctx, sqlite.NewDialoguesRepo(db), sqlite.NewReportsRepo(db), res)
}

type logTurn struct {
	Speaker string `json:"speaker"`
	Message string `json:"message"`
}

type logReport struct {
	Observer string  `json:"observer"`
	Subject  string  `json:"subject"`
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Estimate float64 `json:"estimate"`
	Summary  string  `json:"summary,omitempty"`
}

type logAnalysis struct {
	Turns       int         `json:"turns"`
	EndReason   string      `json:"end_reason"`
	StoppedBy   string      `json:"stopped_by,omitempty"`
	Reports     []logReport `json:"reports"`
	AvgEstimate float64     `json:"avg_estimate"`
	Verdict     string      `json:"verdict"`
	Note        string      `json:"note"`
}

type logFile struct {
	Participants        []string    `json:"participants"`
	ConversationHistory []logTurn   `json:"conversation_history"`
	FinalAnalysis       logAnalysis `json:"final_analysis"`
	Timestamp           time.Time   `json:"timestamp"`
}

func writeLogFile(path string, res *dialogue.Result) error {
	out := logFile{
		Participants: []string{res.First.Name, res.Second.Name},
		FinalAnalysis: logAnalysis{
			Turns:       res.Turns,
			EndReason:   res.EndReason,
			StoppedBy:   res.StoppedBy,
			Reports:     []logReport{toLogReport(res.First), toLogReport(res.Second)},
			AvgEstimate: res.AvgEstimate,
			Verdict:     res.Verdict,
			Note:        res.VerdictNote,
		},
		Timestamp: time.Now(),
	}
	for _, line := range res.Transcript {
		out.ConversationHistory = append(out.ConversationHistory, logTurn{Speaker: line.Speaker, Message: line.Text})
	}

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode log: %w", err)
	}
	return os.WriteFile(path, raw, 0644)
}

func toLogReport(s dialogue.SideReport) logReport {
	return logReport{
		Observer: s.Name,
		Subject:  s.Partner,
		Status:   s.Status,
		Message:  s.StatusMessage,
		Estimate: s.Estimate,
		Summary:  s.Summary,
	}
}
