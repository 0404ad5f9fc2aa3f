package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/goserg/multielo/auth/storage"
	"github.com/goserg/multielo/auth/users"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var (
	ErrForbidden     = errors.New("access denied")
	ErrNotAuthorized = errors.New("unauthorized")
)

type rule struct {
	path   *regexp.Regexp
	method []string
	allow  []string
}

type Service struct {
	storage storage.AuthStorage
	cfg     Config
	rules   []rule
}

func New(ctx context.Context, cfg Config, authStorage storage.AuthStorage) (*Service, error) {
	s := Service{
		cfg:     cfg,
		storage: authStorage,
	}
	for _, r := range cfg.Rules {
		path, err := regexp.Compile(r.Path)
		if err != nil {
			return nil, err
		}
		s.rules = append(s.rules, rule{
			path:   path,
			method: r.Method,
			allow:  r.Allow,
		})
	}
	_, err := s.storage.GetUserSecret(ctx, "root")
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		err = s.createUser(ctx, "root", cfg.RootPassword, []string{users.RoleAdmin})
		if err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (s *Service) Login(ctx context.Context, name string, password string) (users.User, error) {
	secret, err := s.storage.GetUserSecret(ctx, name)
	if err != nil {
		return users.User{}, err
	}
	attempt := generateSecret(password, s.cfg.PasswordPepper, secret.Salt)
	return s.storage.SignIn(ctx, name, attempt.PasswordHash)
}

func (s *Service) SignUp(ctx context.Context, name string, password string) error {
	return s.createUser(ctx, name, password, nil)
}

func (s *Service) GenerateJWTCookie(userID uuid.UUID, host string) (*fiber.Cookie, error) {
	expiresIn, err := time.ParseDuration(s.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	expirationTime := time.Now().Add(expiresIn)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: expirationTime.Unix(),
		IssuedAt:  time.Now().Unix(),
		Subject:   userID.String(),
	})
	tokenString, err := token.SignedString([]byte(s.cfg.Token))
	if err != nil {
		return nil, err
	}
	return &fiber.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		Domain:   host,
		Expires:  expirationTime,
		HTTPOnly: true,
	}, nil
}

// Auth resolves the user behind the token cookie and checks the configured
// access rules for the requested method and url. Anonymous access works the
// same way: an empty cookie resolves to the zero user, and rules that allow
// "*" let it through.
func (s *Service) Auth(ctx context.Context, cookie string, method string, url string) (users.User, error) {
	user, err := s.getUserFromToken(ctx, cookie)
	if err != nil {
		return users.User{}, ErrNotAuthorized
	}
	for _, r := range s.rules {
		if !r.path.MatchString(url) {
			continue
		}
		for _, ruleMethod := range r.method {
			if ruleMethod != "*" && ruleMethod != method {
				continue
			}
			for _, role := range r.allow {
				if role == "*" {
					return user, nil
				}
				for _, userRole := range user.Roles {
					if role == userRole {
						return user, nil
					}
				}
			}
			return users.User{}, ErrForbidden
		}
	}
	return users.User{}, ErrForbidden
}

func (s *Service) getUserFromToken(ctx context.Context, cookie string) (users.User, error) {
	if cookie == "" {
		return users.User{}, nil
	}
	token, err := jwt.ParseWithClaims(cookie, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Token), nil
	})
	if err != nil {
		return users.User{}, err
	}
	if !token.Valid {
		return users.User{}, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok {
		return users.User{}, errors.New("bad request")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return users.User{}, err
	}
	return s.storage.GetUser(ctx, id)
}

func (s *Service) createUser(ctx context.Context, name string, password string, roles []string) error {
	salt, err := randomSalt()
	if err != nil {
		return err
	}
	secret := generateSecret(password, s.cfg.PasswordPepper, salt)
	return s.storage.CreateUser(ctx, users.User{
		ID:           uuid.New(),
		Name:         name,
		Roles:        roles,
		RegisteredAt: time.Now(),
	}, secret)
}

func randomSalt() ([]byte, error) {
	salt := make([]byte, 8)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, err
	}
	return salt, nil
}

func generateSecret(password string, pepper string, salt []byte) users.Secret {
	sha := sha256.New()
	sha.Write([]byte(pepper + password))
	sha.Write(salt)
	return users.Secret{
		PasswordHash: sha.Sum(nil),
		Salt:         salt,
	}
}
