// Package compat maintains one persona's probabilistic belief about how
// compatible their dialogue partner is. Seven Beta-distributed factors are
// updated from observed evidence and combined into a weighted posterior.
package compat

import (
	"math"
	"strings"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/duetsim/duet/internal/belief"
	"github.com/duetsim/duet/internal/observe"
	"github.com/duetsim/duet/internal/profile"
)

const (
	FactorPersonalitySimilarity  = "personality_similarity"
	FactorComplementaryTraits    = "complementary_traits"
	FactorSharedInterests        = "shared_interests"
	FactorValueAlignment         = "value_alignment"
	FactorCommunicationStyle     = "communication_style"
	FactorLifestyleCompatibility = "lifestyle_compatibility"
	FactorSocialEnergy           = "social_energy"
)

// factorOrder fixes iteration order for sampling and reports.
var factorOrder = []string{
	FactorPersonalitySimilarity,
	FactorComplementaryTraits,
	FactorSharedInterests,
	FactorValueAlignment,
	FactorCommunicationStyle,
	FactorLifestyleCompatibility,
	FactorSocialEnergy,
}

var defaultWeights = map[string]float64{
	FactorPersonalitySimilarity:  0.20,
	FactorComplementaryTraits:    0.15,
	FactorSharedInterests:        0.25,
	FactorValueAlignment:         0.20,
	FactorCommunicationStyle:     0.10,
	FactorLifestyleCompatibility: 0.05,
	FactorSocialEnergy:           0.05,
}

// Extroversion cue sets for the complementary-traits factor. Matched
// against observed trait tags, not raw words.
var (
	extrovertCues = []string{"social", "outgoing", "energetic", "talkative"}
	introvertCues = []string{"reflective", "quiet", "thoughtful", "reserved", "analytical"}
)

const maxAgeGap = 8

// Config carries the thresholds of the stopping policy.
type Config struct {
	PositiveThreshold float64
	NegativeThreshold float64
	Confidence        float64
	MinTurns          int
	DecisionCooldown  int
	SampleSize        int
	TrendWindow       int
	TrendGuard        float64
}

func DefaultConfig() Config {
	return Config{
		PositiveThreshold: 0.55,
		NegativeThreshold: 0.15,
		Confidence:        0.90,
		MinTurns:          6,
		DecisionCooldown:  2,
		SampleSize:        3000,
		TrendWindow:       5,
		TrendGuard:        0.005,
	}
}

type decision uint8

const (
	decisionNone decision = iota
	decisionHigh
	decisionLow
)

// Interval is a posterior point estimate with a 90% credible interval.
type Interval struct {
	Mean float64
	Low  float64
	High float64
}

// FactorStatus is one factor's posterior view for reports.
type FactorStatus struct {
	Name   string
	Weight float64
	Mean   float64
	Low    float64
	High   float64
}

// Engine owns the seven belief factors for a single scoring direction:
// one observer judging one partner. A dialogue holds two independent
// engines, one per side.
type Engine struct {
	cfg     Config
	factors map[string]*belief.Factor
	weights map[string]float64
	src     rand.Source

	history   []float64
	decisions []decision
}

// NewEngine builds an engine with fresh uniform priors. A nil src is seeded
// from the clock; tests inject a fixed seed for reproducible draws.
func NewEngine(cfg Config, src rand.Source) *Engine {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	factors := make(map[string]*belief.Factor, len(factorOrder))
	for _, name := range factorOrder {
		factors[name] = belief.New()
	}
	return &Engine{
		cfg:     cfg,
		factors: factors,
		weights: defaultWeights,
		src:     src,
	}
}

// Ingest folds one observed utterance into the seven factors. own is the
// scoring persona's declared profile, observed the partner picture the
// observer has accumulated so far, turn the per-utterance context.
func (e *Engine) Ingest(own profile.Profile, observed observe.Snapshot, turn observe.TurnContext) {
	ownTraits := own.Personality.Traits

	sim := jaccard(ownTraits, observed.PersonalityTraits)
	e.factors[FactorPersonalitySimilarity].Update(sim, 2.0*float64(len(observed.PersonalityTraits)))

	ownInterests := own.Interests()
	shared := jaccard(ownInterests, observed.Interests)
	e.factors[FactorSharedInterests].Update(shared, 2.0*float64(intersectCount(ownInterests, observed.Interests)))

	ownGoals := own.Personality.Goals
	values := jaccard(ownGoals, observed.Goals)
	e.factors[FactorValueAlignment].Update(values, 1.5*float64(intersectCount(ownGoals, observed.Goals)))

	comm := 0.0
	if turn.AsksQuestions {
		comm += 0.6
	}
	if turn.RespondsThoughtfully {
		comm += 0.4
	}
	e.factors[FactorCommunicationStyle].Update(comm, 1.0)

	lifestyle := 0.0
	if math.Abs(float64(own.Age-observed.Age)) <= maxAgeGap {
		lifestyle += 0.5
	}
	ownLoc := own.Background.Location
	obsLoc := observed.Location
	if ownLoc != "" && obsLoc != "" && strings.Contains(strings.ToLower(obsLoc), strings.ToLower(ownLoc)) {
		lifestyle += 0.5
	}
	e.factors[FactorLifestyleCompatibility].Update(lifestyle, 0.8)

	tNorm := clip01(1.0 - math.Min(float64(turn.TokenCount), 60)/60.0)
	qNorm := clip01(math.Min(float64(turn.QuestionMarks), 3) / 3.0)
	e.factors[FactorSocialEnergy].Update(0.5*tNorm+0.5*qNorm, 0.5)

	// Complementary traits need extroversion cues on both sides; skip the
	// turn entirely when either side has none.
	selfRatio, selfOK := extroversionRatio(ownTraits)
	otherRatio, otherOK := extroversionRatio(observed.PersonalityTraits)
	if selfOK && otherOK {
		comp := balance((selfRatio + (1 - otherRatio)) / 2)
		e.factors[FactorComplementaryTraits].Update(comp, 1.0)
	}
}

func extroversionRatio(traits []string) (float64, bool) {
	ext := intersectCount(traits, extrovertCues)
	intr := intersectCount(traits, introvertCues)
	if ext+intr == 0 {
		return 0, false
	}
	return float64(ext) / float64(ext+intr), true
}

// PointEstimate is the weighted sum of factor means, without sampling.
func (e *Engine) PointEstimate() float64 {
	total := 0.0
	for _, name := range factorOrder {
		total += e.weights[name] * e.factors[name].Mean()
	}
	return total
}

// PosteriorSamples draws n values from the weighted mixture of factor
// posteriors. The result approximates the overall compatibility posterior.
func (e *Engine) PosteriorSamples(n int) []float64 {
	total := make([]float64, n)
	for _, name := range factorOrder {
		w := e.weights[name]
		for i, x := range e.factors[name].Sample(n, e.src) {
			total[i] += w * x
		}
	}
	return total
}

// EstimateInterval samples the posterior and summarizes it as a mean with a
// 90% credible interval.
func (e *Engine) EstimateInterval(n int) Interval {
	samples := e.PosteriorSamples(n)
	return Interval{
		Mean: stat.Mean(samples, nil),
		Low:  quantile(0.05, samples),
		High: quantile(0.95, samples),
	}
}

// FactorView reports each factor's posterior: the exact mean alongside a
// sampled 90% credible interval, n draws per factor.
func (e *Engine) FactorView(n int) []FactorStatus {
	out := make([]FactorStatus, 0, len(factorOrder))
	for _, name := range factorOrder {
		samples := e.factors[name].Sample(n, e.src)
		out = append(out, FactorStatus{
			Name:   name,
			Weight: e.weights[name],
			Mean:   e.factors[name].Mean(),
			Low:    quantile(0.05, samples),
			High:   quantile(0.95, samples),
		})
	}
	return out
}

func fractionAtOrAbove(samples []float64, threshold float64) float64 {
	n := 0
	for _, s := range samples {
		if s >= threshold {
			n++
		}
	}
	return float64(n) / float64(len(samples))
}

func fractionAtOrBelow(samples []float64, threshold float64) float64 {
	n := 0
	for _, s := range samples {
		if s <= threshold {
			n++
		}
	}
	return float64(n) / float64(len(samples))
}
