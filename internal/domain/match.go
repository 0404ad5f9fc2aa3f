package domain

import (
	"errors"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

var (
	ErrNotEnoughPlayers = errors.New("матч должен содержать минимум двух игроков")
	ErrDuplicatePlayer  = errors.New("игрок не может участвовать в матче дважды")
	ErrBadRank          = errors.New("место должно быть положительным числом")
)

// Match is a single multiplayer matchup. Results are index aligned with the
// participants and carry the finish rank of each one; equal ranks mean a tie.
type Match struct {
	ID      uuid.UUID
	Date    time.Time
	Results []Result
}

type Result struct {
	Player Player
	Rank   int

	// filled in when the match history is replayed
	RatingBefore float64
	RatingAfter  float64
}

func (m Match) Validate() error {
	if len(m.Results) < 2 {
		return ErrNotEnoughPlayers
	}
	seen := mapset.NewSet[uuid.UUID]()
	for _, r := range m.Results {
		if !seen.Add(r.Player.ID) {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, r.Player.Name)
		}
		if r.Rank <= 0 {
			return fmt.Errorf("%w: %d", ErrBadRank, r.Rank)
		}
	}
	return nil
}

// Ratings returns the pre-match ratings of the participants, index aligned
// with Results.
func (m Match) Ratings() []float64 {
	ratings := make([]float64, len(m.Results))
	for i := range m.Results {
		ratings[i] = m.Results[i].RatingBefore
	}
	return ratings
}

// Ranks returns the finish ranks of the participants, index aligned with
// Results.
func (m Match) Ranks() []int {
	ranks := make([]int, len(m.Results))
	for i := range m.Results {
		ranks[i] = m.Results[i].Rank
	}
	return ranks
}

// Winners returns the participants that finished at the best rank.
func (m Match) Winners() []Player {
	if len(m.Results) == 0 {
		return nil
	}
	best := m.Results[0].Rank
	for _, r := range m.Results {
		if r.Rank < best {
			best = r.Rank
		}
	}
	var winners []Player
	for _, r := range m.Results {
		if r.Rank == best {
			winners = append(winners, r.Player)
		}
	}
	return winners
}
