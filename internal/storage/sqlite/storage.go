package sqlite

import (
	"database/sql"
	"errors"

	"github.com/goserg/multielo/gen/model"
	"github.com/goserg/multielo/gen/table"
	"github.com/goserg/multielo/internal/domain"
	sqlite3 "github.com/goserg/multielo/internal/migrate"
	"github.com/goserg/multielo/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.PlayerStorage = (*Storage)(nil)
var _ storage.MatchStorage = (*Storage)(nil)

func New(path string, log *logrus.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?cache=shared&_fk=1")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	err = sqlite3.UpServerDB(db)
	if err != nil {
		return nil, err
	}
	return &Storage{
		db:  db,
		log: log.WithField("module", "storage"),
	}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) ListPlayers() ([]domain.Player, error) {
	var players []model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		ORDER_BY(table.Players.CreatedAt.ASC()).
		Query(s.db, &players)
	if err != nil {
		return nil, err
	}
	return convertPlayersToDomain(players)
}

func (s *Storage) Get(id uuid.UUID) (domain.Player, error) {
	var player model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		WHERE(table.Players.ID.EQ(sqlite.String(id.String()))).
		Query(s.db, &player)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Player{}, storage.ErrNotFound
		}
		return domain.Player{}, err
	}
	return convertPlayerToDomain(player)
}

func (s *Storage) Add(player domain.Player) (domain.Player, error) {
	_, err := table.Players.
		INSERT(table.Players.AllColumns).
		MODEL(convertPlayerFromDomain(player)).
		Exec(s.db)
	if err != nil {
		return domain.Player{}, err
	}
	s.log.WithField("player", player.Name).Info("player created")
	return player, nil
}

func (s *Storage) ImportPlayers(players []domain.Player) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	_, err = table.Players.
		DELETE().
		WHERE(sqlite.Bool(true)).
		Exec(tx)
	if err != nil {
		return err
	}
	for _, player := range players {
		_, err = table.Players.
			INSERT(table.Players.AllColumns).
			MODEL(convertPlayerFromDomain(player)).
			Exec(tx)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) ListMatches() ([]domain.Match, error) {
	var matches []struct {
		model.Matches

		MatchResults []model.MatchResults
	}
	err := table.Matches.
		SELECT(table.Matches.AllColumns, table.MatchResults.AllColumns).
		FROM(table.Matches.
			INNER_JOIN(table.MatchResults, table.MatchResults.MatchID.EQ(table.Matches.ID))).
		ORDER_BY(table.Matches.PlayedAt.ASC(), table.MatchResults.Rank.ASC()).
		Query(s.db, &matches)
	if err != nil {
		return nil, err
	}
	players, err := s.ListPlayers()
	if err != nil {
		return nil, err
	}
	playerMap := convertPlayersToMap(players)
	converted := make([]domain.Match, 0, len(matches))
	for i := range matches {
		match, err := convertMatchToDomain(matches[i].Matches, matches[i].MatchResults, playerMap)
		if err != nil {
			return nil, err
		}
		converted = append(converted, match)
	}
	return converted, nil
}

func (s *Storage) Create(match domain.Match) (domain.Match, error) {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	matchModel, resultModels := convertMatchFromDomain(match)
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Match{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	_, err = table.Matches.
		INSERT(table.Matches.AllColumns).
		MODEL(matchModel).
		Exec(tx)
	if err != nil {
		return domain.Match{}, err
	}
	_, err = table.MatchResults.
		INSERT(table.MatchResults.AllColumns).
		MODELS(resultModels).
		Exec(tx)
	if err != nil {
		return domain.Match{}, err
	}
	err = tx.Commit()
	if err != nil {
		return domain.Match{}, err
	}
	s.log.WithField("match", match.ID.String()).Info("match created")
	return match, nil
}

func (s *Storage) ImportMatches(matches []domain.Match) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	_, err = table.MatchResults.
		DELETE().
		WHERE(sqlite.Bool(true)).
		Exec(tx)
	if err != nil {
		return err
	}
	_, err = table.Matches.
		DELETE().
		WHERE(sqlite.Bool(true)).
		Exec(tx)
	if err != nil {
		return err
	}
	for _, match := range matches {
		if match.ID == uuid.Nil {
			match.ID = uuid.New()
		}
		matchModel, resultModels := convertMatchFromDomain(match)
		_, err = table.Matches.
			INSERT(table.Matches.AllColumns).
			MODEL(matchModel).
			Exec(tx)
		if err != nil {
			return err
		}
		_, err = table.MatchResults.
			INSERT(table.MatchResults.AllColumns).
			MODELS(resultModels).
			Exec(tx)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
