package compat

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

const (
	StatusHigh     = "HIGH_COMPATIBILITY"
	StatusLow      = "LOW_COMPATIBILITY"
	StatusModerate = "MODERATE_COMPATIBILITY"
)

const (
	VerdictHigh     = "HIGH COMPATIBILITY"
	VerdictLow      = "LOW COMPATIBILITY"
	VerdictModerate = "MODERATE COMPATIBILITY"
)

// Status classifies the current posterior. It never touches the decision
// window and may be called at any point mid-dialogue.
func (e *Engine) Status() (status, message string) {
	samples := e.PosteriorSamples(e.cfg.SampleSize)
	mean := stat.Mean(samples, nil)
	low := quantile(0.05, samples)
	high := quantile(0.95, samples)
	pHigh := fractionAtOrAbove(samples, e.cfg.PositiveThreshold)
	pLow := fractionAtOrBelow(samples, e.cfg.NegativeThreshold)

	switch {
	case pHigh >= e.cfg.Confidence:
		return StatusHigh, fmt.Sprintf("Strong potential. Mean=%.2f, 90%% CI [%.2f, %.2f]", mean, low, high)
	case pLow >= e.cfg.Confidence:
		return StatusLow, fmt.Sprintf("Unlikely match. Mean=%.2f, 90%% CI [%.2f, %.2f]", mean, low, high)
	default:
		return StatusModerate, fmt.Sprintf("Developing. Mean=%.2f, 90%% CI [%.2f, %.2f]", mean, low, high)
	}
}

// Verdict grades the average of both sides' point estimates against the
// decision thresholds and returns the final label with its closing note.
func Verdict(avg, positiveThreshold, negativeThreshold float64) (string, string) {
	switch {
	case avg >= positiveThreshold:
		return VerdictHigh, "These two are likely to become good friends!"
	case avg <= negativeThreshold:
		return VerdictLow, "Friendship is unlikely to develop."
	default:
		return VerdictModerate, "Friendship potential is uncertain."
	}
}
