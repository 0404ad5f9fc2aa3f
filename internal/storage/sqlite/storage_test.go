package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/goserg/multielo/internal/domain"
	"github.com/goserg/multielo/internal/storage"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

func TestStorage(t *testing.T) {
	suite.Run(t, &StorageSuite{})
}

type StorageSuite struct {
	suite.Suite
	storage *Storage
}

// SetupTest поднимает чистую базу для каждого теста
func (s *StorageSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "server.sqlite")
	st, err := New(path, logrus.New())
	s.Require().NoError(err)
	s.storage = st
}

func (s *StorageSuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

func (s *StorageSuite) addPlayer(name string, registered time.Time) domain.Player {
	player, err := s.storage.Add(domain.Player{
		ID:           uuid.New(),
		Name:         name,
		RegisteredAt: registered,
	})
	s.Require().NoError(err)
	return player
}

func (s *StorageSuite) TestPlayers() {
	registered := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	first := s.addPlayer("вася", registered)
	second := s.addPlayer("петя", registered.Add(time.Hour))

	players, err := s.storage.ListPlayers()
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(first.Name, players[0].Name)
	s.Equal(second.Name, players[1].Name)

	got, err := s.storage.Get(first.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, got.ID)
	s.Equal(first.Name, got.Name)
	s.True(registered.Equal(got.RegisteredAt))

	_, err = s.storage.Get(uuid.New())
	s.Require().ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestMatchRoundTrip() {
	registered := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	first := s.addPlayer("вася", registered)
	second := s.addPlayer("петя", registered)
	third := s.addPlayer("коля", registered)

	played := registered.Add(24 * time.Hour)
	created, err := s.storage.Create(domain.Match{
		Date: played,
		Results: []domain.Result{
			{Player: second, Rank: 2},
			{Player: first, Rank: 1},
			{Player: third, Rank: 2},
		},
	})
	s.Require().NoError(err)
	s.Require().NotEqual(uuid.Nil, created.ID)

	matches, err := s.storage.ListMatches()
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	match := matches[0]
	s.Equal(created.ID, match.ID)
	s.True(played.Equal(match.Date))
	s.Require().Len(match.Results, 3)
	s.Equal(first.Name, match.Results[0].Player.Name)
	s.Equal(1, match.Results[0].Rank)
	s.Equal(2, match.Results[1].Rank)
	s.Equal(2, match.Results[2].Rank)
}

func (s *StorageSuite) TestListMatchesChronological() {
	registered := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	first := s.addPlayer("вася", registered)
	second := s.addPlayer("петя", registered)

	// записываем не по порядку, читать должны по played_at
	later := registered.Add(48 * time.Hour)
	earlier := registered.Add(24 * time.Hour)
	results := []domain.Result{
		{Player: first, Rank: 1},
		{Player: second, Rank: 2},
	}
	laterMatch, err := s.storage.Create(domain.Match{Date: later, Results: results})
	s.Require().NoError(err)
	earlierMatch, err := s.storage.Create(domain.Match{Date: earlier, Results: results})
	s.Require().NoError(err)

	matches, err := s.storage.ListMatches()
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(earlierMatch.ID, matches[0].ID)
	s.Equal(laterMatch.ID, matches[1].ID)
}

func (s *StorageSuite) TestImportReplaces() {
	registered := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	first := s.addPlayer("вася", registered)
	second := s.addPlayer("петя", registered)
	_, err := s.storage.Create(domain.Match{
		Date: registered.Add(time.Hour),
		Results: []domain.Result{
			{Player: first, Rank: 1},
			{Player: second, Rank: 2},
		},
	})
	s.Require().NoError(err)

	imported := []domain.Player{
		{ID: uuid.New(), Name: "маша", RegisteredAt: registered},
		{ID: uuid.New(), Name: "даша", RegisteredAt: registered.Add(time.Minute)},
	}
	s.Require().NoError(s.storage.ImportMatches(nil))
	s.Require().NoError(s.storage.ImportPlayers(imported))
	s.Require().NoError(s.storage.ImportMatches([]domain.Match{
		{
			Date: registered.Add(2 * time.Hour),
			Results: []domain.Result{
				{Player: imported[0], Rank: 1},
				{Player: imported[1], Rank: 1},
			},
		},
	}))

	players, err := s.storage.ListPlayers()
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("маша", players[0].Name)
	s.Equal("даша", players[1].Name)

	matches, err := s.storage.ListMatches()
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal([]int{1, 1}, matches[0].Ranks())
}

func (s *StorageSuite) TestImportRollsBackOnError() {
	registered := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	s.addPlayer("вася", registered)

	dup := uuid.New()
	err := s.storage.ImportPlayers([]domain.Player{
		{ID: dup, Name: "маша", RegisteredAt: registered},
		{ID: dup, Name: "даша", RegisteredAt: registered},
	})
	s.Require().Error(err)

	// неудачный импорт не должен трогать прежнее содержимое
	players, err := s.storage.ListPlayers()
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("вася", players[0].Name)
}
