package service

import (
	"testing"
	"time"

	"github.com/goserg/multielo/internal/domain"
	"github.com/goserg/multielo/internal/elo"
	"github.com/goserg/multielo/internal/logger"
	"github.com/goserg/multielo/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	players []domain.Player
	matches []domain.Match

	listMatchCalls int
}

var _ storage.PlayerStorage = (*memStorage)(nil)
var _ storage.MatchStorage = (*memStorage)(nil)

func (m *memStorage) ListPlayers() ([]domain.Player, error) {
	players := make([]domain.Player, len(m.players))
	copy(players, m.players)
	return players, nil
}

func (m *memStorage) Get(id uuid.UUID) (domain.Player, error) {
	for _, p := range m.players {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Player{}, storage.ErrNotFound
}

func (m *memStorage) Add(player domain.Player) (domain.Player, error) {
	m.players = append(m.players, player)
	return player, nil
}

func (m *memStorage) ImportPlayers(players []domain.Player) error {
	m.players = players
	return nil
}

func (m *memStorage) ListMatches() ([]domain.Match, error) {
	m.listMatchCalls++
	matches := make([]domain.Match, len(m.matches))
	for i := range m.matches {
		matches[i] = m.matches[i]
		matches[i].Results = make([]domain.Result, len(m.matches[i].Results))
		copy(matches[i].Results, m.matches[i].Results)
	}
	return matches, nil
}

func (m *memStorage) Create(match domain.Match) (domain.Match, error) {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	m.matches = append(m.matches, match)
	return match, nil
}

func (m *memStorage) ImportMatches(matches []domain.Match) error {
	m.matches = matches
	return nil
}

func testPlayers() (a, b, c domain.Player) {
	a = domain.Player{ID: uuid.New(), Name: "Аня"}
	b = domain.Player{ID: uuid.New(), Name: "Боря"}
	c = domain.Player{ID: uuid.New(), Name: "Вася"}
	return a, b, c
}

func day(n int) time.Time {
	return time.Date(2023, time.March, n, 12, 0, 0, 0, time.UTC)
}

func testService(st *memStorage) *PlayerService {
	return New(st, st, elo.DefaultConfig(), 1000, logger.New(false))
}

func Test_replayMatches(t *testing.T) {
	a, b, c := testPlayers()
	matches := []domain.Match{
		{
			ID:   uuid.New(),
			Date: day(1),
			Results: []domain.Result{
				{Player: a, Rank: 1},
				{Player: b, Rank: 2},
			},
		},
		{
			ID:   uuid.New(),
			Date: day(2),
			Results: []domain.Result{
				{Player: a, Rank: 2},
				{Player: b, Rank: 1},
			},
		},
		{
			ID:   uuid.New(),
			Date: day(3),
			Results: []domain.Result{
				{Player: a, Rank: 1},
				{Player: b, Rank: 3},
				{Player: c, Rank: 2},
			},
		},
	}
	replayed, states, err := replayMatches(matches, elo.DefaultConfig(), 1000)
	require.NoError(t, err)

	assert.InDelta(t, 1016, replayed[0].Results[0].RatingAfter, 1e-9)
	assert.InDelta(t, 984, replayed[0].Results[1].RatingAfter, 1e-9)

	assert.InDelta(t, 1016, replayed[1].Results[0].RatingBefore, 1e-9)
	assert.InDelta(t, 998.5304984710245, replayed[1].Results[0].RatingAfter, 1e-9)
	assert.InDelta(t, 1001.4695015289755, replayed[1].Results[1].RatingAfter, 1e-9)

	assert.InDelta(t, 1019.9991754757749, replayed[2].Results[0].RatingAfter, 1e-9)
	assert.InDelta(t, 980.0008245242251, replayed[2].Results[1].RatingAfter, 1e-9)
	assert.InDelta(t, 1000, replayed[2].Results[2].RatingAfter, 1e-9)

	assert.Equal(t, 3, states[a.ID].games)
	assert.Equal(t, 3, states[b.ID].games)
	assert.Equal(t, 1, states[c.ID].games)
	assert.InDelta(t, 1019.9991754757749, states[a.ID].rating, 1e-9)
}

func TestPlayerService_GetRatings(t *testing.T) {
	a, b, c := testPlayers()
	st := &memStorage{players: []domain.Player{a, b, c}}
	st.matches = []domain.Match{
		{
			ID:   uuid.New(),
			Date: day(1),
			Results: []domain.Result{
				{Player: a, Rank: 1},
				{Player: b, Rank: 2},
			},
		},
	}
	s := testService(st)

	ratings, err := s.GetRatings()
	require.NoError(t, err)
	require.Len(t, ratings, 3)

	assert.Equal(t, a.ID, ratings[0].ID)
	assert.Equal(t, 1, ratings[0].RatingRank)
	assert.InDelta(t, 1016, ratings[0].Rating, 1e-9)
	assert.Equal(t, 1, ratings[0].GamesPlayed)

	// c never played and keeps the initial rating
	assert.Equal(t, c.ID, ratings[1].ID)
	assert.InDelta(t, 1000, ratings[1].Rating, 1e-9)
	assert.Equal(t, 0, ratings[1].GamesPlayed)

	assert.Equal(t, b.ID, ratings[2].ID)
	assert.Equal(t, 3, ratings[2].RatingRank)

	// second read comes from the cache
	calls := st.listMatchCalls
	_, err = s.GetRatings()
	require.NoError(t, err)
	assert.Equal(t, calls, st.listMatchCalls)
}

func TestPlayerService_GetRatingsGlicko2(t *testing.T) {
	a, b, _ := testPlayers()
	st := &memStorage{players: []domain.Player{a, b}}
	st.matches = []domain.Match{
		{
			ID:   uuid.New(),
			Date: day(1),
			Results: []domain.Result{
				{Player: a, Rank: 1},
				{Player: b, Rank: 2},
			},
		},
	}
	s := testService(st)

	ratings, err := s.GetRatings()
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	winner, loser := ratings[0], ratings[1]
	assert.Greater(t, winner.Glicko2Rating.Rating, loser.Glicko2Rating.Rating)
	assert.Less(t, winner.Glicko2Rating.Interval.Min, winner.Glicko2Rating.Rating)
	assert.Greater(t, winner.Glicko2Rating.Interval.Max, winner.Glicko2Rating.Rating)
}

func TestPlayerService_CreateMatch(t *testing.T) {
	a, b, _ := testPlayers()
	tests := []struct {
		name    string
		match   domain.Match
		wantErr bool
	}{
		{
			name: "ok",
			match: domain.Match{
				Results: []domain.Result{
					{Player: a, Rank: 1},
					{Player: b, Rank: 2},
				},
			},
			wantErr: false,
		},
		{
			name: "single player",
			match: domain.Match{
				Results: []domain.Result{
					{Player: a, Rank: 1},
				},
			},
			wantErr: true,
		},
		{
			name: "duplicate player",
			match: domain.Match{
				Results: []domain.Result{
					{Player: a, Rank: 1},
					{Player: a, Rank: 2},
				},
			},
			wantErr: true,
		},
		{
			name: "bad rank",
			match: domain.Match{
				Results: []domain.Result{
					{Player: a, Rank: 0},
					{Player: b, Rank: 1},
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			st := &memStorage{players: []domain.Player{a, b}}
			s := testService(st)
			created, err := s.CreateMatch(tt.match)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateMatch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				assert.NotEqual(t, uuid.Nil, created.ID)
				assert.False(t, created.Date.IsZero())
			}
		})
	}
}

func TestPlayerService_GetByName(t *testing.T) {
	a, b, _ := testPlayers()
	st := &memStorage{players: []domain.Player{a, b}}
	s := testService(st)

	got, err := s.GetByName("  аня ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = s.GetByName("нет такого")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestPlayerService_AddPlayer(t *testing.T) {
	st := &memStorage{}
	s := testService(st)

	player, err := s.AddPlayer("Гриша")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, player.ID)
	assert.InDelta(t, 1000, player.Rating, 1e-9)

	_, err = s.AddPlayer("гриша")
	assert.ErrorIs(t, err, ErrPlayerExists)
}

func TestPlayerService_RatingAt(t *testing.T) {
	a, b, _ := testPlayers()
	st := &memStorage{players: []domain.Player{a, b}}
	st.matches = []domain.Match{
		{
			ID:   uuid.New(),
			Date: day(1),
			Results: []domain.Result{
				{Player: a, Rank: 1},
				{Player: b, Rank: 2},
			},
		},
		{
			ID:   uuid.New(),
			Date: day(5),
			Results: []domain.Result{
				{Player: a, Rank: 2},
				{Player: b, Rank: 1},
			},
		},
	}
	s := testService(st)

	before, err := s.RatingAt(a.ID, day(1).Add(-time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 1000, before, 1e-9)

	between, err := s.RatingAt(a.ID, day(3))
	require.NoError(t, err)
	assert.InDelta(t, 1016, between, 1e-9)

	after, err := s.RatingAt(a.ID, day(6))
	require.NoError(t, err)
	assert.InDelta(t, 998.5304984710245, after, 1e-9)
}

func TestPlayerService_Forecast(t *testing.T) {
	a, b, _ := testPlayers()
	st := &memStorage{players: []domain.Player{a, b}}
	s := testService(st)

	forecast, err := s.Forecast([]uuid.UUID{a.ID, b.ID}, 500)
	require.NoError(t, err)
	require.Len(t, forecast, 2)
	assert.InDelta(t, 1, forecast[a.ID]+forecast[b.ID], 1e-9)

	_, err = s.Forecast([]uuid.UUID{a.ID, uuid.New()}, 500)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestPlayerService_ExportImport(t *testing.T) {
	a, b, _ := testPlayers()
	st := &memStorage{players: []domain.Player{a, b}}
	st.matches = []domain.Match{
		{
			ID:   uuid.New(),
			Date: day(1),
			Results: []domain.Result{
				{Player: a, Rank: 1},
				{Player: b, Rank: 2},
			},
		},
	}
	s := testService(st)

	data, err := s.Export()
	require.NoError(t, err)

	fresh := &memStorage{}
	s2 := testService(fresh)
	require.NoError(t, s2.Import(data))

	ratings, err := s2.GetRatings()
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.InDelta(t, 1016, ratings[0].Rating, 1e-9)

	assert.Error(t, s2.Import([]byte(`{"Version": 1}`)))
}
