package service

import (
	"github.com/goserg/multielo/internal/domain"

	"github.com/google/uuid"
	glicko "github.com/zelenin/go-glicko2"
)

// calculateGlicko2 builds a secondary Glicko-2 view of the same match
// history. Every multiplayer match is decomposed into its pairwise
// sub-matchups and each match becomes one rating period.
func calculateGlicko2(matches []domain.Match) map[uuid.UUID]domain.Glicko2Rating {
	players := make(map[uuid.UUID]*glicko.Player)
	get := func(id uuid.UUID) *glicko.Player {
		p, ok := players[id]
		if !ok {
			p = glicko.NewPlayer(glicko.NewDefaultRating())
			players[id] = p
		}
		return p
	}
	for _, match := range matches {
		period := glicko.NewRatingPeriod()
		for i := 0; i < len(match.Results); i++ {
			for j := i + 1; j < len(match.Results); j++ {
				a := match.Results[i]
				b := match.Results[j]
				result := glicko.MATCH_RESULT_DRAW
				switch {
				case a.Rank < b.Rank:
					result = glicko.MATCH_RESULT_WIN
				case a.Rank > b.Rank:
					result = glicko.MATCH_RESULT_LOSS
				}
				period.AddMatch(get(a.Player.ID), get(b.Player.ID), result)
			}
		}
		period.Calculate()
	}

	ratings := make(map[uuid.UUID]domain.Glicko2Rating, len(players))
	for id, player := range players {
		r := player.Rating()
		ratings[id] = domain.Glicko2Rating{
			Rating: r.R(),
			Interval: domain.Interval{
				Min: r.R() - 2*r.Rd(),
				Max: r.R() + 2*r.Rd(),
			},
		}
	}
	return ratings
}
