package elo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// placeScores returns the score awarded to each finish place, best place
// first. Scores sum to 1, decrease strictly, and the last place scores 0.
func placeScores(n int, cfg Config) []float64 {
	if cfg.exponential {
		return exponentialScores(n, cfg.base)
	}
	return linearScores(n)
}

// linearScores awards points in even steps: improving by one place is worth
// the same anywhere in the field.
func linearScores(n int) []float64 {
	scores := make([]float64, n)
	denom := float64(n) * float64(n-1) / 2
	for p := 1; p <= n; p++ {
		scores[p-1] = float64(n-p) / denom
	}
	return scores
}

// exponentialScores weighs top finishes more heavily: each place is worth
// roughly base times the next one. Expm1 keeps the values stable as base
// approaches 1, where the function converges to linearScores.
func exponentialScores(n int, base float64) []float64 {
	scores := make([]float64, n)
	logBase := math.Log(base)
	for p := 1; p <= n; p++ {
		scores[p-1] = math.Expm1(float64(n-p) * logBase)
	}
	floats.Scale(1/floats.Sum(scores), scores)
	return scores
}

// actualScores maps finish ranks to awarded scores, index-aligned with
// ranks. Tied participants all receive the mean of the place scores their
// tie spans, which keeps the total at 1 no matter how ties fall.
func actualScores(ranks []int, cfg Config) []float64 {
	n := len(ranks)
	scores := placeScores(n, cfg)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ranks[order[a]] < ranks[order[b]]
	})

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && ranks[order[j]] == ranks[order[i]] {
			j++
		}
		score := floats.Sum(scores[i:j]) / float64(j-i)
		for t := i; t < j; t++ {
			out[order[t]] = score
		}
		i = j
	}
	return out
}
