package elo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/exp/rand"
)

func TestWinProbabilitiesFixedSampler(t *testing.T) {
	sampler := func(ratings []float64) []int {
		return []int{2, 1, 3}
	}
	probs, err := WinProbabilities([]float64{1000, 1000, 1000}, 100, sampler, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{0, 1, 0},
		{1, 0, 0},
		{0, 0, 1},
	}, probs)
}

func TestWinProbabilitiesRotatingSampler(t *testing.T) {
	trial := 0
	sampler := func(ratings []float64) []int {
		ranks := make([]int, len(ratings))
		for i := range ranks {
			ranks[i] = 1 + (i+trial)%len(ratings)
		}
		trial++
		return ranks
	}
	probs, err := WinProbabilities([]float64{900, 1000, 1100}, 300, sampler, DefaultConfig())
	require.NoError(t, err)
	for i := range probs {
		for p := range probs[i] {
			assert.InDelta(t, 1.0/3, probs[i][p], 1e-9, "participant %d place %d", i, p+1)
		}
	}
}

// The default Gumbel sampler has to reproduce the logistic pairwise win
// model: at 400 rating points difference the favorite wins about 10 times
// out of 11.
func TestWinProbabilitiesGumbelSampler(t *testing.T) {
	cfg := DefaultConfig()
	sampler := NewGumbelSampler(cfg, rand.NewSource(1))
	probs, err := WinProbabilities([]float64{1400, 1000}, 20000, sampler, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 10.0/11, probs[0][0], 0.02)
	assert.InDelta(t, 1.0/11, probs[1][0], 0.02)
	for i := range probs {
		var sum float64
		for _, p := range probs[i] {
			sum += p
		}
		assert.InDelta(t, 1, sum, 1e-9)
	}
}

func TestWinProbabilitiesInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		trials  int
		sampler RankSampler
	}{
		{
			name:    "single participant",
			ratings: []float64{1000},
			trials:  10,
		},
		{
			name:    "no trials",
			ratings: []float64{1000, 1100},
			trials:  0,
		},
		{
			name:    "sampler returns wrong length",
			ratings: []float64{1000, 1100},
			trials:  1,
			sampler: func([]float64) []int { return []int{1} },
		},
		{
			name:    "sampler returns out of range rank",
			ratings: []float64{1000, 1100},
			trials:  1,
			sampler: func([]float64) []int { return []int{1, 5} },
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := WinProbabilities(tt.ratings, tt.trials, tt.sampler, DefaultConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}
