// Package belief tracks one compatibility dimension as a Beta distribution
// over the chance that the dimension holds for a pair of personas.
package belief

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Factor starts at the uninformative Beta(1, 1) prior and absorbs weighted
// evidence from conversation turns.
type Factor struct {
	alpha float64
	beta  float64
}

func New() *Factor {
	return &Factor{alpha: 1, beta: 1}
}

func (f *Factor) Alpha() float64 { return f.alpha }
func (f *Factor) Beta() float64  { return f.beta }

func (f *Factor) Mean() float64 {
	return f.alpha / (f.alpha + f.beta)
}

func (f *Factor) Variance() float64 {
	n := f.alpha + f.beta
	return f.alpha * f.beta / (n * n * (n + 1))
}

// Update folds one piece of evidence into the posterior. Evidence is clamped
// to [0, 1] with NaN counting as zero; a NaN or negative weight makes the
// update a no-op.
func (f *Factor) Update(evidence, weight float64) {
	evidence = clamp01(evidence)
	if math.IsNaN(weight) || weight < 0 {
		weight = 0
	}
	f.alpha += evidence * weight
	f.beta += (1 - evidence) * weight
}

// Sample draws n values from the current posterior. A nil src falls back to
// the shared global source.
func (f *Factor) Sample(n int, src rand.Source) []float64 {
	dist := distuv.Beta{Alpha: f.alpha, Beta: f.beta, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}
