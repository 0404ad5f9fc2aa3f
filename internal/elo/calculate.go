package elo

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidInput is returned for matchups the engine cannot rate.
var ErrInvalidInput = errors.New("invalid matchup")

// Calculate returns new ratings for a single multiplayer matchup.
//
// ratings holds the participants' ratings before the matchup and ranks their
// finish places, index-aligned with ratings. Rank 1 is the best finish.
// Participants sharing a rank value are tied. Rank values do not have to be
// contiguous, only their relative order matters.
//
// The rating changes are zero sum: the returned ratings have the same total
// as the input. With two participants the result is exactly the classical
// Elo update.
func Calculate(ratings []float64, ranks []int, cfg Config) ([]float64, error) {
	if err := validateRatings(ratings); err != nil {
		return nil, err
	}
	if len(ranks) != len(ratings) {
		return nil, fmt.Errorf("%w: %d ratings for %d ranks", ErrInvalidInput, len(ratings), len(ranks))
	}
	for i, rank := range ranks {
		if rank <= 0 {
			return nil, fmt.Errorf("%w: rank of participant %d must be positive, got %d", ErrInvalidInput, i, rank)
		}
	}
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}

	n := len(ratings)
	expected := expectedScores(ratings, cfg.d)
	actual := actualScores(ranks, cfg)

	scale := cfg.k * float64(n-1)
	updated := make([]float64, n)
	for i := range ratings {
		updated[i] = ratings[i] + scale*(actual[i]-expected[i])
	}
	return updated, nil
}

// ExpectedScores returns each participant's expected score against the rest
// of the field, derived from rating differences only. The scores sum to 1.
func ExpectedScores(ratings []float64, cfg Config) ([]float64, error) {
	if err := validateRatings(ratings); err != nil {
		return nil, err
	}
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return expectedScores(ratings, cfg.d), nil
}

// expectedScores averages the classical two player expected score over every
// pairwise sub-matchup, scaled so the whole field sums to 1.
func expectedScores(ratings []float64, d float64) []float64 {
	n := len(ratings)
	scores := make([]float64, n)
	for i, ra := range ratings {
		var sum float64
		for j, rb := range ratings {
			if i == j {
				continue
			}
			sum += 1 / (1 + math.Pow(10, (rb-ra)/d))
		}
		scores[i] = sum
	}
	// n*(n-1)/2 head-to-head matchups between n players
	floats.Scale(2/(float64(n)*float64(n-1)), scores)
	return scores
}

func validateRatings(ratings []float64) error {
	if len(ratings) < 2 {
		return fmt.Errorf("%w: need at least 2 participants, got %d", ErrInvalidInput, len(ratings))
	}
	for i, r := range ratings {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: rating of participant %d is not finite", ErrInvalidInput, i)
		}
	}
	return nil
}
