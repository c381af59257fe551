package compat

import "gonum.org/v1/gonum/stat"

// ShouldStop decides whether the observing side has seen enough. turnIndex
// is the zero-based index of the dialogue turn that was just scored, so with
// MinTurns=6 the first real check happens on the sixth turn.
//
// The policy: wait out the patience floor, then sample the posterior and
// record its mean. While the recent trend is still climbing faster than the
// guard, defer any verdict and let the dialogue play out. Otherwise record a
// HIGH or LOW decision when the confidence bar is met. The dialogue stops
// only once the decision window is full and unanimously non-none.
func (e *Engine) ShouldStop(turnIndex int) bool {
	if turnIndex+1 < e.cfg.MinTurns {
		return false
	}

	samples := e.PosteriorSamples(e.cfg.SampleSize)
	pHigh := fractionAtOrAbove(samples, e.cfg.PositiveThreshold)
	pLow := fractionAtOrBelow(samples, e.cfg.NegativeThreshold)
	e.history = append(e.history, stat.Mean(samples, nil))

	improving := trendSlope(e.history, e.cfg.TrendWindow) > e.cfg.TrendGuard

	d := decisionNone
	if !improving {
		switch {
		case pHigh >= e.cfg.Confidence:
			d = decisionHigh
		case pLow >= e.cfg.Confidence:
			d = decisionLow
		}
	}

	e.decisions = append(e.decisions, d)
	if len(e.decisions) > e.cfg.DecisionCooldown {
		e.decisions = e.decisions[len(e.decisions)-e.cfg.DecisionCooldown:]
	}

	if len(e.decisions) < e.cfg.DecisionCooldown {
		return false
	}
	first := e.decisions[0]
	if first == decisionNone {
		return false
	}
	for _, dec := range e.decisions {
		if dec != first {
			return false
		}
	}
	return true
}
