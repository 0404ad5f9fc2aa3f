package users

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Roles        []string
	RegisteredAt time.Time
}

type Secret struct {
	PasswordHash []byte
	Salt         []byte
}
