package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/goserg/multielo/bot/botstorage"
	dbmodel "github.com/goserg/multielo/bot/gen/model"
	"github.com/goserg/multielo/bot/gen/table"
	"github.com/goserg/multielo/bot/model"
	"github.com/goserg/multielo/internal/config"
	"github.com/goserg/multielo/internal/domain"
	sqlite3 "github.com/goserg/multielo/internal/migrate"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ botstorage.BotStorage = (*Storage)(nil)

func New(l *logrus.Logger, cfg config.TgBot) (*Storage, error) {
	log := l.WithField("module", "bot-storage")
	db, err := sql.Open("sqlite3", "file:"+cfg.SqliteFile+"?cache=shared&_fk=1")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	err = sqlite3.UpBotDB(db)
	if err != nil {
		return nil, err
	}
	log.Info("bot storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) NewUser(user model.User) (model.User, error) {
	if user.Role == 0 {
		user.Role = model.RoleUser
	}
	_, err := table.Users.
		INSERT(table.Users.AllColumns).
		MODEL(convertUserFromDomain(user)).
		Exec(s.db)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

type getUserModel struct {
	dbmodel.Users

	Subscriptions []dbmodel.Subscriptions
}

func (s *Storage) GetUser(id int) (model.User, error) {
	var dest getUserModel
	err := table.Users.
		SELECT(table.Users.AllColumns, table.Subscriptions.AllColumns).
		FROM(table.Users.
			LEFT_JOIN(table.Subscriptions, table.Subscriptions.UserID.EQ(table.Users.ID))).
		WHERE(table.Users.ID.EQ(sqlite.Int(int64(id)))).
		Query(s.db, &dest)
	if err != nil {
		return model.User{}, err
	}
	return convertGetUserModelToDomain(dest), nil
}

func (s *Storage) ListUsers() ([]model.User, error) {
	var dest []getUserModel
	err := table.Users.
		SELECT(table.Users.AllColumns, table.Subscriptions.AllColumns).
		FROM(table.Users.
			LEFT_JOIN(table.Subscriptions, table.Subscriptions.UserID.EQ(table.Users.ID))).
		Query(s.db, &dest)
	if err != nil {
		return nil, err
	}
	converted := make([]model.User, 0, len(dest))
	for i := range dest {
		converted = append(converted, convertGetUserModelToDomain(dest[i]))
	}
	return converted, nil
}

func (s *Storage) UpdateUserRole(user model.User) error {
	_, err := table.Users.
		UPDATE(table.Users.Role, table.Users.UpdatedAt).
		SET(int32(user.Role), time.Now()).
		WHERE(table.Users.ID.EQ(sqlite.Int(int64(user.ID)))).
		Exec(s.db)
	return err
}

func (s *Storage) Log(user model.User, msg string) error {
	_, err := table.Events.
		INSERT(table.Events.UserID, table.Events.Message, table.Events.CreatedAt).
		MODEL(dbmodel.Events{
			UserID:    int32(user.ID),
			Message:   msg,
			CreatedAt: time.Now(),
		}).
		Exec(s.db)
	return err
}

func (s *Storage) Subscribe(user model.User) error {
	_, err := table.Subscriptions.
		INSERT(table.Subscriptions.AllColumns).
		MODEL(dbmodel.Subscriptions{
			UserID:    int32(user.ID),
			EventType: string(model.NewMatch),
		}).
		Exec(s.db)
	if err != nil {
		if strings.HasPrefix(err.Error(), "UNIQUE constraint failed") {
			return nil
		}
		return err
	}
	return nil
}

func (s *Storage) Unsubscribe(user model.User) error {
	_, err := table.Subscriptions.
		DELETE().
		WHERE(table.Subscriptions.UserID.EQ(sqlite.Int(int64(user.ID))).
			AND(table.Subscriptions.EventType.EQ(sqlite.String(string(model.NewMatch))))).
		Exec(s.db)
	return err
}

func (s *Storage) GetMyPlayer(user model.User) (uuid.UUID, error) {
	var up dbmodel.UserPlayers
	err := table.UserPlayers.
		SELECT(table.UserPlayers.AllColumns).
		FROM(table.UserPlayers).
		WHERE(table.UserPlayers.UserID.EQ(sqlite.Int(int64(user.ID)))).
		Query(s.db, &up)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(up.PlayerID)
}

func (s *Storage) LinkPlayer(user model.User, player domain.Player) error {
	_, err := table.UserPlayers.
		INSERT(table.UserPlayers.AllColumns).
		MODEL(dbmodel.UserPlayers{
			UserID:   int32(user.ID),
			PlayerID: player.ID.String(),
		}).
		ON_CONFLICT(table.UserPlayers.UserID).
		DO_UPDATE(sqlite.SET(table.UserPlayers.PlayerID.SET(sqlite.String(player.ID.String())))).
		Exec(s.db)
	return err
}

func convertUserFromDomain(user model.User) dbmodel.Users {
	return dbmodel.Users{
		ID:        int32(user.ID),
		FirstName: user.FirstName,
		Username:  user.Username,
		Role:      int32(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func convertGetUserModelToDomain(user getUserModel) model.User {
	converted := model.User{
		ID:        int(user.ID),
		FirstName: user.FirstName,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Role:      model.UserRole(user.Role),
	}
	for i := range user.Subscriptions {
		converted.Subscriptions = append(converted.Subscriptions, model.EventType(user.Subscriptions[i].EventType))
	}
	return converted
}
