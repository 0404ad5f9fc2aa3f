package elo

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		ratings  []float64
		ranks    []int
		want     []float64
	}{
		{
			name:    "two players higher rated wins",
			ratings: []float64{1200, 1000},
			ranks:   []int{1, 2},
			want:    []float64{1207.6880983472654, 992.3119016527346},
		},
		{
			name:    "two players upset",
			ratings: []float64{900, 1000},
			ranks:   []int{1, 2},
			want:    []float64{920.4820799936923, 979.5179200063077},
		},
		{
			name:    "two players listed loser first",
			ratings: []float64{1200, 1000},
			ranks:   []int{2, 1},
			want:    []float64{1175.6880983472654, 1024.3119016527346},
		},
		{
			name:    "two players draw",
			ratings: []float64{1200, 1000},
			ranks:   []int{1, 1},
			want:    []float64{1191.6880983472654, 1008.3119016527346},
		},
		{
			name:    "two equal players",
			ratings: []float64{1000, 1000},
			ranks:   []int{1, 2},
			want:    []float64{1016, 984},
		},
		{
			name:    "three players",
			ratings: []float64{1200, 1000, 900},
			ranks:   []int{1, 3, 2},
			want:    []float64{1208.3462961186851, 981.2198811060282, 910.4338227752867},
		},
		{
			name:    "four players",
			ratings: []float64{1200, 1000, 1100, 900},
			ranks:   []int{1, 2, 3, 4},
			want:    []float64{1212.0186820921676, 1012.1559508263673, 1087.8440491736326, 887.9813179078324},
		},
		{
			name:    "tie in the middle",
			ratings: []float64{1000, 1000, 1000, 1000},
			ranks:   []int{1, 2, 2, 4},
			want:    []float64{1024, 1000, 1000, 976},
		},
		{
			name:    "tie for first",
			ratings: []float64{1000, 1000, 1000},
			ranks:   []int{1, 1, 3},
			want:    []float64{1010.6666666666666, 1010.6666666666666, 978.6666666666666},
		},
		{
			name:    "all tied equal ratings",
			ratings: []float64{1000, 1000, 1000},
			ranks:   []int{2, 2, 2},
			want:    []float64{1000, 1000, 1000},
		},
		{
			name:     "exponential equals linear for two players",
			settings: Settings{ScoreFunction: ScoreExponential},
			ratings:  []float64{1200, 1000},
			ranks:    []int{1, 2},
			want:     []float64{1207.6880983472654, 992.3119016527346},
		},
		{
			name:     "exponential three players",
			settings: Settings{ScoreFunction: ScoreExponential},
			ratings:  []float64{1200, 1000, 900},
			ranks:    []int{1, 2, 3},
			want:     []float64{1211.3939151663042, 999.5055953917425, 889.1004894419533},
		},
		{
			name:     "smaller k",
			settings: Settings{K: 20},
			ratings:  []float64{1200, 1000},
			ranks:    []int{1, 2},
			want:     []float64{1204.8050614670408, 995.1949385329592},
		},
		{
			name:     "smaller d",
			settings: Settings{D: 200},
			ratings:  []float64{1200, 1000},
			ranks:    []int{1, 2},
			want:     []float64{1202.909090909091, 997.0909090909091},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewConfig(tt.settings)
			require.NoError(t, err)
			got, err := Calculate(tt.ratings, tt.ranks, cfg)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculateInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		ranks   []int
	}{
		{
			name:    "no participants",
			ratings: nil,
			ranks:   nil,
		},
		{
			name:    "single participant",
			ratings: []float64{1000},
			ranks:   []int{1},
		},
		{
			name:    "length mismatch",
			ratings: []float64{1000, 1100, 900},
			ranks:   []int{1, 2},
		},
		{
			name:    "nan rating",
			ratings: []float64{1000, math.NaN()},
			ranks:   []int{1, 2},
		},
		{
			name:    "infinite rating",
			ratings: []float64{math.Inf(1), 1000},
			ranks:   []int{1, 2},
		},
		{
			name:    "zero rank",
			ratings: []float64{1000, 1100},
			ranks:   []int{0, 1},
		},
		{
			name:    "negative rank",
			ratings: []float64{1000, 1100},
			ranks:   []int{1, -2},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Calculate(tt.ratings, tt.ranks, DefaultConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestCalculateZeroSum(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for _, n := range []int{2, 3, 4, 10} {
		for _, fn := range []string{ScoreLinear, ScoreExponential} {
			for trial := 0; trial < 10; trial++ {
				cfg, err := NewConfig(Settings{
					K:             16 + 48*rnd.Float64(),
					D:             200 + 600*rnd.Float64(),
					ScoreFunction: fn,
					ScoreBase:     1 + 2*rnd.Float64(),
				})
				require.NoError(t, err)
				ratings := make([]float64, n)
				ranks := make([]int, n)
				for i := range ratings {
					ratings[i] = 600 + 800*rnd.Float64()
					ranks[i] = 1 + rnd.Intn(n)
				}
				got, err := Calculate(ratings, ranks, cfg)
				require.NoError(t, err)
				var sumBefore, sumAfter float64
				for i := range got {
					sumBefore += ratings[i]
					sumAfter += got[i]
				}
				assert.InDelta(t, sumBefore, sumAfter, 1e-9*math.Abs(sumBefore))
			}
		}
	}
}

// With two players the update must match the classical Elo formula exactly.
func TestCalculateTwoPlayerEquivalence(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	cfg := DefaultConfig()
	for trial := 0; trial < 50; trial++ {
		ra := 600 + 800*rnd.Float64()
		rb := 600 + 800*rnd.Float64()

		ea := 1 / (1 + math.Pow(10, (rb-ra)/DefaultD))
		eb := 1 / (1 + math.Pow(10, (ra-rb)/DefaultD))

		got, err := Calculate([]float64{ra, rb}, []int{1, 2}, cfg)
		require.NoError(t, err)
		assert.InDelta(t, ra+DefaultK*(1-ea), got[0], 1e-9)
		assert.InDelta(t, rb+DefaultK*(0-eb), got[1], 1e-9)

		got, err = Calculate([]float64{ra, rb}, []int{2, 1}, cfg)
		require.NoError(t, err)
		assert.InDelta(t, ra+DefaultK*(0-ea), got[0], 1e-9)
		assert.InDelta(t, rb+DefaultK*(1-eb), got[1], 1e-9)
	}
}

// Moving a participant to a better place while keeping everyone else in the
// same relative order must never shrink that participant's rating change.
func TestCalculateMonotonicRewardByPlace(t *testing.T) {
	ratings := []float64{1200, 1100, 1000, 900, 800}
	n := len(ratings)
	for _, fn := range []string{ScoreLinear, ScoreExponential} {
		cfg, err := NewConfig(Settings{ScoreFunction: fn})
		require.NoError(t, err)
		for mover := 0; mover < n; mover++ {
			prev := math.Inf(1)
			for place := 0; place < n; place++ {
				ranks := make([]int, n)
				pos := 0
				for i := 0; i < n; i++ {
					if i == mover {
						continue
					}
					if pos == place {
						pos++
					}
					ranks[i] = pos + 1
					pos++
				}
				ranks[mover] = place + 1
				got, err := Calculate(ratings, ranks, cfg)
				require.NoError(t, err)
				delta := got[mover] - ratings[mover]
				assert.LessOrEqual(t, delta, prev+1e-12,
					"%s: participant %d moving to place %d", fn, mover, place+1)
				prev = delta
			}
		}
	}
}

// Equally rated participants that tie must end up with identical ratings.
func TestCalculateTieSymmetry(t *testing.T) {
	got, err := Calculate([]float64{1100, 1000, 1000, 900}, []int{1, 2, 2, 4}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, got[1], got[2])
}

func TestExpectedScores(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    []float64
	}{
		{
			name:    "two players",
			ratings: []float64{1200, 1000},
			want:    []float64{0.7597469266479578, 0.2402530733520421},
		},
		{
			name:    "three players",
			ratings: []float64{1200, 1000, 900},
			want:    []float64{0.5362557898122114, 0.29343935771830904, 0.17030485246947938},
		},
		{
			name:    "equal ratings",
			ratings: []float64{1000, 1000, 1000, 1000},
			want:    []float64{0.25, 0.25, 0.25, 0.25},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExpectedScores(tt.ratings, DefaultConfig())
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
			var sum float64
			for _, s := range got {
				sum += s
			}
			assert.InDelta(t, 1, sum, 1e-9)
		})
	}
}
