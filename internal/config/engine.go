package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/duetsim/duet/pkg/log"
)

// EngineConfig holds the decision thresholds of the compatibility engine.
// Defaults match the calibrated values the simulator ships with.
type EngineConfig struct {
	PositiveThreshold float64 `env:"DUET_POSITIVE_THRESHOLD" envDefault:"0.55"`
	NegativeThreshold float64 `env:"DUET_NEGATIVE_THRESHOLD" envDefault:"0.15"`
	Confidence        float64 `env:"DUET_CONFIDENCE" envDefault:"0.90"`
	MinTurns          int     `env:"DUET_MIN_TURNS" envDefault:"6"`
	DecisionCooldown  int     `env:"DUET_DECISION_COOLDOWN" envDefault:"2"`
	SampleSize        int     `env:"DUET_SAMPLE_SIZE" envDefault:"3000"`
	TrendWindow       int     `env:"DUET_TREND_WINDOW" envDefault:"5"`
	TrendGuard        float64 `env:"DUET_TREND_GUARD" envDefault:"0.005"`
}

func NewEngineConfig(ctx context.Context) *EngineConfig {
	c := &EngineConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Engine config")
	}
	return c
}
