package elo

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RankSampler draws one plausible finish for the given ratings and returns a
// rank per participant, index-aligned, 1 for first place.
type RankSampler func(ratings []float64) []int

// NewGumbelSampler returns a sampler that ranks participants by rating plus
// independent Gumbel noise. The noise scale D/ln(10) makes the pairwise win
// probabilities match the logistic curve used for expected scores. A nil
// source uses the global one.
func NewGumbelSampler(cfg Config, src rand.Source) RankSampler {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	noise := distuv.GumbelRight{Mu: 0, Beta: cfg.d / math.Ln10, Src: src}
	return func(ratings []float64) []int {
		n := len(ratings)
		perturbed := make([]float64, n)
		for i, r := range ratings {
			perturbed[i] = r + noise.Rand()
		}
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return perturbed[order[a]] > perturbed[order[b]]
		})
		ranks := make([]int, n)
		for place, i := range order {
			ranks[i] = place + 1
		}
		return ranks
	}
}

// WinProbabilities estimates by Monte-Carlo how likely each participant is
// to take each place. The result is indexed [participant][place-1];
// result[i][0] is the probability that participant i wins outright. A nil
// sampler uses NewGumbelSampler with the global random source.
//
// Ratings are never mutated; every trial is independent.
func WinProbabilities(ratings []float64, trials int, sampler RankSampler, cfg Config) ([][]float64, error) {
	if err := validateRatings(ratings); err != nil {
		return nil, err
	}
	if trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidInput, trials)
	}
	if sampler == nil {
		sampler = NewGumbelSampler(cfg, nil)
	}

	n := len(ratings)
	probs := make([][]float64, n)
	for i := range probs {
		probs[i] = make([]float64, n)
	}
	for t := 0; t < trials; t++ {
		ranks := sampler(ratings)
		if len(ranks) != n {
			return nil, fmt.Errorf("%w: sampler returned %d ranks for %d participants", ErrInvalidInput, len(ranks), n)
		}
		for i, rank := range ranks {
			if rank < 1 || rank > n {
				return nil, fmt.Errorf("%w: sampler returned rank %d for participant %d", ErrInvalidInput, rank, i)
			}
			probs[i][rank-1]++
		}
	}
	for i := range probs {
		for p := range probs[i] {
			probs[i][p] /= float64(trials)
		}
	}
	return probs, nil
}
