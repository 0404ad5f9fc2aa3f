package storage

import (
	"errors"

	"github.com/goserg/multielo/internal/domain"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type PlayerStorage interface {
	ListPlayers() ([]domain.Player, error)
	Get(id uuid.UUID) (domain.Player, error)
	Add(player domain.Player) (domain.Player, error)

	ImportPlayers(players []domain.Player) error
}

type MatchStorage interface {
	ListMatches() ([]domain.Match, error)
	Create(match domain.Match) (domain.Match, error)

	ImportMatches(matches []domain.Match) error
}
