package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goserg/multielo/internal/cache/mem"
	"github.com/goserg/multielo/internal/domain"
	"github.com/goserg/multielo/internal/elo"
	"github.com/goserg/multielo/internal/normalize"
	"github.com/goserg/multielo/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrPlayerNotFound = errors.New("игрок не найден")
	ErrPlayerExists   = errors.New("игрок с таким именем уже существует")
)

// PlayerService tracks ratings for a roster of players over time. Ratings
// are not stored: the match history is the source of truth and is replayed
// through the rating engine on demand.
type PlayerService struct {
	playerStorage storage.PlayerStorage
	matchStorage  storage.MatchStorage
	cache         *mem.Cache

	cfg           elo.Config
	initialRating float64
	log           *logrus.Entry
}

func New(
	playerStorage storage.PlayerStorage,
	matchStorage storage.MatchStorage,
	cfg elo.Config,
	initialRating float64,
	log *logrus.Logger,
) *PlayerService {
	return &PlayerService{
		playerStorage: playerStorage,
		matchStorage:  matchStorage,
		cache:         mem.New(),
		cfg:           cfg,
		initialRating: initialRating,
		log:           log.WithField("module", "service"),
	}
}

func (s *PlayerService) ListPlayers() ([]domain.Player, error) {
	return s.playerStorage.ListPlayers()
}

func (s *PlayerService) Get(id uuid.UUID) (domain.Player, error) {
	return s.playerStorage.Get(id)
}

// GetByName finds a player ignoring case and surrounding spaces.
func (s *PlayerService) GetByName(name string) (domain.Player, error) {
	if player, ok := s.cache.GetPlayerByName(name); ok {
		return player, nil
	}
	players, err := s.GetRatings()
	if err != nil {
		return domain.Player{}, err
	}
	for i := range players {
		if normalize.Name(players[i].Name) == normalize.Name(name) {
			return players[i], nil
		}
	}
	return domain.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
}

// AddPlayer registers a new player with the initial rating.
func (s *PlayerService) AddPlayer(name string) (domain.Player, error) {
	players, err := s.playerStorage.ListPlayers()
	if err != nil {
		return domain.Player{}, err
	}
	for i := range players {
		if normalize.Name(players[i].Name) == normalize.Name(name) {
			return domain.Player{}, fmt.Errorf("%w: %s", ErrPlayerExists, name)
		}
	}
	player, err := s.playerStorage.Add(domain.Player{
		ID:           uuid.New(),
		Name:         name,
		RegisteredAt: time.Now(),
		Rating:       s.initialRating,
	})
	if err != nil {
		return domain.Player{}, err
	}
	s.cache.Invalidate()
	return player, nil
}

// GetRatings returns the current leaderboard: every registered player with
// rating, games played and rating rank, best rating first.
func (s *PlayerService) GetRatings() ([]domain.Player, error) {
	if players, ok := s.cache.GetRatings(); ok {
		return players, nil
	}
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return nil, err
	}
	_, states, err := replayMatches(matches, s.cfg, s.initialRating)
	if err != nil {
		return nil, err
	}
	glicko := calculateGlicko2(matches)

	players, err := s.playerStorage.ListPlayers()
	if err != nil {
		return nil, err
	}
	for i := range players {
		players[i].Rating = s.initialRating
		if state, ok := states[players[i].ID]; ok {
			players[i].Rating = state.rating
			players[i].GamesPlayed = state.games
		}
		if g, ok := glicko[players[i].ID]; ok {
			players[i].Glicko2Rating = g
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})
	for i := range players {
		players[i].RatingRank = i + 1
	}
	s.cache.Update(players)
	return players, nil
}

// GetMatches returns the full match history, most recent first, with every
// result annotated with the participant's rating before and after.
func (s *PlayerService) GetMatches() ([]domain.Match, error) {
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return nil, err
	}
	matches, _, err = replayMatches(matches, s.cfg, s.initialRating)
	if err != nil {
		return nil, err
	}
	reverse(matches)
	return matches, nil
}

func (s *PlayerService) CreateMatch(match domain.Match) (domain.Match, error) {
	if err := match.Validate(); err != nil {
		return domain.Match{}, err
	}
	if match.Date.IsZero() {
		match.Date = time.Now()
	}
	created, err := s.matchStorage.Create(match)
	if err != nil {
		return domain.Match{}, err
	}
	s.cache.Invalidate()
	s.log.WithFields(logrus.Fields{
		"match":   created.ID.String(),
		"players": len(created.Results),
	}).Info("match recorded")
	return created, nil
}

// RatingHistory returns one point per match the player took part in,
// oldest first.
func (s *PlayerService) RatingHistory(id uuid.UUID) ([]domain.RatingPoint, error) {
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return nil, err
	}
	matches, _, err = replayMatches(matches, s.cfg, s.initialRating)
	if err != nil {
		return nil, err
	}
	var history []domain.RatingPoint
	for _, match := range matches {
		for _, result := range match.Results {
			if result.Player.ID == id {
				history = append(history, domain.RatingPoint{
					Date:   match.Date,
					Rating: result.RatingAfter,
				})
			}
		}
	}
	return history, nil
}

// RatingAt returns the player's rating as of the given date: the rating
// after the latest match played at or before it, or the initial rating if
// the player had not played yet.
func (s *PlayerService) RatingAt(id uuid.UUID, date time.Time) (float64, error) {
	history, err := s.RatingHistory(id)
	if err != nil {
		return 0, err
	}
	rating := s.initialRating
	for _, point := range history {
		if point.Date.After(date) {
			break
		}
		rating = point.Rating
	}
	return rating, nil
}

// Forecast estimates by simulation how likely each of the given players is
// to win a matchup between them, using their current ratings.
func (s *PlayerService) Forecast(ids []uuid.UUID, trials int) (map[uuid.UUID]float64, error) {
	players, err := s.GetRatings()
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Player, len(players))
	for i := range players {
		byID[players[i].ID] = players[i]
	}
	ratings := make([]float64, 0, len(ids))
	for _, id := range ids {
		player, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
		ratings = append(ratings, player.Rating)
	}
	probs, err := elo.WinProbabilities(ratings, trials, nil, s.cfg)
	if err != nil {
		return nil, err
	}
	forecast := make(map[uuid.UUID]float64, len(ids))
	for i, id := range ids {
		forecast[id] = probs[i][0]
	}
	return forecast, nil
}

// GetPlayerGames returns the player's head-to-head statistics against every
// opponent, counting each pairwise sub-matchup of the multiplayer matches.
func (s *PlayerService) GetPlayerGames(id uuid.UUID) (map[uuid.UUID]domain.PlayerStats, error) {
	matches, err := s.GetMatches()
	if err != nil {
		return nil, err
	}
	players, err := s.GetRatings()
	if err != nil {
		return nil, err
	}
	results := make(map[uuid.UUID]domain.PlayerStats)
	for _, player := range players {
		results[player.ID] = domain.PlayerStats{Player: player}
	}
	for _, match := range matches {
		var this *domain.Result
		for i := range match.Results {
			if match.Results[i].Player.ID == id {
				this = &match.Results[i]
				break
			}
		}
		if this == nil {
			continue
		}
		for i := range match.Results {
			other := match.Results[i]
			if other.Player.ID == id {
				continue
			}
			r := results[other.Player.ID]
			switch {
			case this.Rank < other.Rank:
				r.Wins++
			case this.Rank > other.Rank:
				r.Loses++
			default:
				r.Draws++
			}
			results[other.Player.ID] = r
		}
	}
	return results, nil
}

const exportVersion = 2

type export struct {
	Version int
	Players []domain.Player
	Matches []domain.Match
}

func (s *PlayerService) Export() ([]byte, error) {
	players, err := s.GetRatings()
	if err != nil {
		return nil, err
	}
	matches, err := s.GetMatches()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(export{
		Version: exportVersion,
		Players: players,
		Matches: matches,
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *PlayerService) Import(data []byte) error {
	var importData export
	err := json.Unmarshal(data, &importData)
	if err != nil {
		return err
	}
	if importData.Version != exportVersion {
		return errors.New("invalid export file version")
	}
	err = s.playerStorage.ImportPlayers(importData.Players)
	if err != nil {
		return err
	}
	err = s.matchStorage.ImportMatches(importData.Matches)
	if err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

func reverse(m []domain.Match) {
	for i, j := 0, len(m)-1; i < j; i, j = i+1, j-1 {
		m[i], m[j] = m[j], m[i]
	}
}
