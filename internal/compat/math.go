package compat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

func clip01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// jaccard treats both slices as sets. Either side empty yields 0.
func jaccard(a, b []string) float64 {
	as, bs := toSet(a), toSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	inter := 0
	for k := range as {
		if _, ok := bs[k]; ok {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	return float64(inter) / float64(union)
}

func intersectCount(a, b []string) int {
	as, bs := toSet(a), toSet(b)
	n := 0
	for k := range as {
		if _, ok := bs[k]; ok {
			n++
		}
	}
	return n
}

// balance maps x in [0,1] to 1 at the midpoint and 0 at either extreme.
func balance(x float64) float64 {
	return 1 - math.Abs(x-0.5)*2
}

// trendSlope fits a least-squares line through the last window values and
// returns its slope. Fewer than two points have no trend.
func trendSlope(values []float64, window int) float64 {
	if len(values) < 2 {
		return 0
	}
	start := len(values) - window
	if start < 0 {
		start = 0
	}
	y := values[start:]
	if len(y) < 2 {
		return 0
	}
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	_, slope := stat.LinearRegression(x, y, nil, false)
	return slope
}

// quantile returns the p-quantile of xs without mutating the input.
func quantile(p float64, xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
