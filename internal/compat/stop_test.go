package compat

import (
	"strings"
	"testing"

	"golang.org/x/exp/rand"
)

func pumpAll(e *Engine, evidence, weight float64) {
	for _, name := range factorOrder {
		e.factors[name].Update(evidence, weight)
	}
}

func TestShouldStopRespectsPatienceFloor(t *testing.T) {
	e := newTestEngine()
	pumpAll(e, 1.0, 500)

	for turn := 0; turn <= 4; turn++ {
		if e.ShouldStop(turn) {
			t.Fatalf("must never stop before the patience floor, stopped at turn %d", turn)
		}
	}
	if len(e.history) != 0 {
		t.Errorf("checks below the floor must not sample, history has %d entries", len(e.history))
	}

	e.ShouldStop(5)
	if len(e.history) != 1 {
		t.Errorf("first real check should record one posterior mean, got %d", len(e.history))
	}
}

func TestSingleHighDecisionDoesNotStop(t *testing.T) {
	e := newTestEngine()
	pumpAll(e, 1.0, 500)

	if e.ShouldStop(5) {
		t.Fatal("one confident check must not end the dialogue")
	}
	if !e.ShouldStop(6) {
		t.Fatal("two consecutive confident checks should end it")
	}
}

func TestStopOnConsecutiveLows(t *testing.T) {
	e := newTestEngine()
	pumpAll(e, 0.0, 500)

	if e.ShouldStop(5) {
		t.Fatal("one low check must not end the dialogue")
	}
	if !e.ShouldStop(6) {
		t.Fatal("two consecutive low checks should end it")
	}
}

func TestMixedWindowDoesNotStop(t *testing.T) {
	e := newTestEngine()
	pumpAll(e, 1.0, 500)

	if e.ShouldStop(5) {
		t.Fatal("unexpected stop on first check")
	}

	// Collapse enough mass that neither threshold holds with confidence.
	e.factors[FactorSharedInterests].Update(0, 1e6)
	e.factors[FactorPersonalitySimilarity].Update(0, 1e6)
	e.factors[FactorValueAlignment].Update(0, 1e6)

	if e.ShouldStop(6) {
		t.Fatal("window HIGH,none must not stop")
	}
	if e.ShouldStop(7) {
		t.Fatal("window none,none must not stop")
	}
}

func TestTrendGuardDefersDecisions(t *testing.T) {
	e := newTestEngine()

	// Undecided start: posterior sits at the prior.
	if e.ShouldStop(5) {
		t.Fatal("fresh engine must not stop")
	}

	// Jump every factor near certainty. The posterior mean leaps, so the
	// recent trend reads as improving and the guard must hold the verdict
	// back even though confidence is already there.
	pumpAll(e, 1.0, 500)

	for turn := 6; turn <= 9; turn++ {
		if e.ShouldStop(turn) {
			t.Fatalf("guard should defer the verdict while the trend climbs, stopped at turn %d", turn)
		}
	}

	// The mean has plateaued; the next two checks both read HIGH.
	if e.ShouldStop(10) {
		t.Fatal("first post-plateau check alone must not stop")
	}
	if !e.ShouldStop(11) {
		t.Fatal("expected stop after two flat confident checks")
	}
}

func TestStatusLabels(t *testing.T) {
	t.Run("moderate at prior", func(t *testing.T) {
		e := newTestEngine()
		status, message := e.Status()
		if status != StatusModerate {
			t.Errorf("status = %q, want %q", status, StatusModerate)
		}
		if !strings.HasPrefix(message, "Developing. Mean=") || !strings.Contains(message, "90% CI [") {
			t.Errorf("unexpected message %q", message)
		}
	})

	t.Run("high when confident", func(t *testing.T) {
		e := newTestEngine()
		pumpAll(e, 1.0, 500)
		status, message := e.Status()
		if status != StatusHigh {
			t.Errorf("status = %q, want %q", status, StatusHigh)
		}
		if !strings.HasPrefix(message, "Strong potential. Mean=") {
			t.Errorf("unexpected message %q", message)
		}
	})

	t.Run("low when hopeless", func(t *testing.T) {
		e := newTestEngine()
		pumpAll(e, 0.0, 500)
		status, message := e.Status()
		if status != StatusLow {
			t.Errorf("status = %q, want %q", status, StatusLow)
		}
		if !strings.HasPrefix(message, "Unlikely match. Mean=") {
			t.Errorf("unexpected message %q", message)
		}
	})
}

func TestStatusHasNoSideEffects(t *testing.T) {
	e := NewEngine(DefaultConfig(), rand.NewSource(9))
	pumpAll(e, 1.0, 500)

	e.Status()
	e.Status()

	if len(e.decisions) != 0 || len(e.history) != 0 {
		t.Errorf("status peeked %d decisions, %d history entries into the stop state", len(e.decisions), len(e.history))
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		avg         float64
		wantLabel   string
		wantClosing string
	}{
		{0.80, VerdictHigh, "These two are likely to become good friends!"},
		{0.55, VerdictHigh, "These two are likely to become good friends!"},
		{0.549, VerdictModerate, "Friendship potential is uncertain."},
		{0.30, VerdictModerate, "Friendship potential is uncertain."},
		{0.15, VerdictLow, "Friendship is unlikely to develop."},
		{0.05, VerdictLow, "Friendship is unlikely to develop."},
	}

	for _, tt := range tests {
		label, closing := Verdict(tt.avg, 0.55, 0.15)
		if label != tt.wantLabel || closing != tt.wantClosing {
			t.Errorf("Verdict(%v) = (%q, %q), want (%q, %q)", tt.avg, label, closing, tt.wantLabel, tt.wantClosing)
		}
	}
}
