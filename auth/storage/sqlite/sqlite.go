package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"

	"github.com/goserg/multielo/auth/gen/model"
	"github.com/goserg/multielo/auth/gen/table"
	"github.com/goserg/multielo/auth/storage"
	"github.com/goserg/multielo/auth/users"
	sqlite3 "github.com/goserg/multielo/internal/migrate"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.AuthStorage = (*Storage)(nil)

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
	err = sqlite3.UpAuthDB(db)
	if err != nil {
		return nil, err
	}
	return &Storage{
		db:  db,
		log: log.WithField("module", "auth-storage"),
	}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) CreateUser(ctx context.Context, user users.User, secret users.Secret) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	_, err = table.Users.
		INSERT(
			table.Users.ID,
			table.Users.Name,
			table.Users.PasswordHash,
			table.Users.PasswordSalt,
			table.Users.CreatedAt,
		).
		MODEL(model.Users{
			ID:           user.ID.String(),
			Name:         user.Name,
			PasswordHash: secret.PasswordHash,
			PasswordSalt: secret.Salt,
			CreatedAt:    user.RegisteredAt,
		}).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	for _, role := range user.Roles {
		_, err = table.UserRoles.
			INSERT(table.UserRoles.AllColumns).
			MODEL(model.UserRoles{
				UserID: user.ID.String(),
				Role:   role,
			}).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
	}
	err = tx.Commit()
	if err != nil {
		return err
	}
	s.log.WithField("user", user.Name).Info("user created")
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (users.User, error) {
	var dest struct {
		model.Users

		UserRoles []model.UserRoles
	}
	err := table.Users.
		SELECT(
			table.Users.AllColumns.Except(
				table.Users.PasswordHash,
				table.Users.PasswordSalt,
			),
			table.UserRoles.AllColumns,
		).
		FROM(table.Users.
			LEFT_JOIN(table.UserRoles, table.UserRoles.UserID.EQ(table.Users.ID))).
		WHERE(table.Users.ID.EQ(sqlite.String(id.String())).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	return convertUserToDomain(dest.Users, dest.UserRoles)
}

func (s *Storage) GetUserSecret(ctx context.Context, name string) (users.Secret, error) {
	var dest model.Users
	err := table.Users.
		SELECT(table.Users.PasswordHash, table.Users.PasswordSalt).
		FROM(table.Users).
		WHERE(table.Users.Name.EQ(sqlite.String(name)).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.Secret{}, sql.ErrNoRows
		}
		return users.Secret{}, err
	}
	return users.Secret{
		PasswordHash: dest.PasswordHash,
		Salt:         dest.PasswordSalt,
	}, nil
}

func (s *Storage) SignIn(ctx context.Context, name string, passwordHash []byte) (users.User, error) {
	var dest struct {
		model.Users

		UserRoles []model.UserRoles
	}
	err := table.Users.
		SELECT(table.Users.AllColumns, table.UserRoles.AllColumns).
		FROM(table.Users.
			LEFT_JOIN(table.UserRoles, table.UserRoles.UserID.EQ(table.Users.ID))).
		WHERE(table.Users.Name.EQ(sqlite.String(name)).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	if !bytes.Equal(dest.PasswordHash, passwordHash) {
		return users.User{}, errors.New("wrong password")
	}
	return convertUserToDomain(dest.Users, dest.UserRoles)
}

func convertUserToDomain(user model.Users, roles []model.UserRoles) (users.User, error) {
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return users.User{}, err
	}
	converted := users.User{
		ID:           id,
		Name:         user.Name,
		RegisteredAt: user.CreatedAt,
	}
	for _, role := range roles {
		converted.Roles = append(converted.Roles, role.Role)
	}
	return converted, nil
}
