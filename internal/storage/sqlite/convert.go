package sqlite

import (
	"fmt"

	"github.com/goserg/multielo/gen/model"
	"github.com/goserg/multielo/internal/domain"

	"github.com/google/uuid"
)

func convertPlayerToDomain(player model.Players) (domain.Player, error) {
	id, err := uuid.Parse(player.ID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("player %q: %w", player.Name, err)
	}
	return domain.Player{
		ID:           id,
		Name:         player.Name,
		RegisteredAt: player.CreatedAt,
	}, nil
}

func convertPlayersToDomain(players []model.Players) ([]domain.Player, error) {
	converted := make([]domain.Player, 0, len(players))
	for _, player := range players {
		p, err := convertPlayerToDomain(player)
		if err != nil {
			return nil, err
		}
		converted = append(converted, p)
	}
	return converted, nil
}

func convertPlayerFromDomain(player domain.Player) model.Players {
	return model.Players{
		ID:        player.ID.String(),
		Name:      player.Name,
		CreatedAt: player.RegisteredAt,
	}
}

func convertPlayersToMap(players []domain.Player) map[uuid.UUID]domain.Player {
	m := make(map[uuid.UUID]domain.Player, len(players))
	for i := range players {
		m[players[i].ID] = players[i]
	}
	return m
}

func convertMatchToDomain(
	match model.Matches,
	results []model.MatchResults,
	players map[uuid.UUID]domain.Player,
) (domain.Match, error) {
	id, err := uuid.Parse(match.ID)
	if err != nil {
		return domain.Match{}, fmt.Errorf("match %q: %w", match.ID, err)
	}
	converted := domain.Match{
		ID:      id,
		Date:    match.PlayedAt,
		Results: make([]domain.Result, 0, len(results)),
	}
	for _, result := range results {
		playerID, err := uuid.Parse(result.PlayerID)
		if err != nil {
			return domain.Match{}, fmt.Errorf("match %q: %w", match.ID, err)
		}
		converted.Results = append(converted.Results, domain.Result{
			Player: players[playerID],
			Rank:   int(result.Rank),
		})
	}
	return converted, nil
}

func convertMatchFromDomain(match domain.Match) (model.Matches, []model.MatchResults) {
	matchModel := model.Matches{
		ID:        match.ID.String(),
		PlayedAt:  match.Date,
		CreatedAt: match.Date,
	}
	results := make([]model.MatchResults, 0, len(match.Results))
	for _, result := range match.Results {
		results = append(results, model.MatchResults{
			MatchID:  match.ID.String(),
			PlayerID: result.Player.ID.String(),
			Rank:     int32(result.Rank),
		})
	}
	return matchModel, results
}
