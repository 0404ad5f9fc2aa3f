package service

import (
	"github.com/goserg/multielo/internal/domain"
	"github.com/goserg/multielo/internal/elo"

	"github.com/google/uuid"
)

type playerState struct {
	rating float64
	games  int
}

// replayMatches runs the stored match history through the rating engine in
// chronological order. It returns the matches with every result annotated
// with the rating before and after, plus the final state per player.
// Players start at initialRating on their first appearance.
func replayMatches(
	matches []domain.Match,
	cfg elo.Config,
	initialRating float64,
) ([]domain.Match, map[uuid.UUID]playerState, error) {
	states := make(map[uuid.UUID]playerState)
	for mi := range matches {
		results := matches[mi].Results
		ratings := make([]float64, len(results))
		ranks := make([]int, len(results))
		for i := range results {
			state, ok := states[results[i].Player.ID]
			if !ok {
				state = playerState{rating: initialRating}
			}
			ratings[i] = state.rating
			ranks[i] = results[i].Rank
		}
		updated, err := elo.Calculate(ratings, ranks, cfg)
		if err != nil {
			return nil, nil, err
		}
		for i := range results {
			results[i].RatingBefore = ratings[i]
			results[i].RatingAfter = updated[i]
			state := states[results[i].Player.ID]
			state.rating = updated[i]
			state.games++
			states[results[i].Player.ID] = state
		}
	}
	return matches, states, nil
}
