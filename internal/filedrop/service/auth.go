package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/oatfile/filedrop/internal/filedrop/domain"
	"github.com/oatfile/filedrop/internal/filedrop/store"
	"github.com/oatfile/filedrop/pkg/cryptox"
	"github.com/oatfile/filedrop/pkg/jwtx"
	"github.com/oatfile/filedrop/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserNotFound       = errors.New("user_not_found")
)

type AuthService struct {
	Users     store.Users
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Login verifies the username/password pair and mints a bearer access token
// for the user. Unknown users, wrong passwords and disabled accounts all
// fail with the same ErrInvalidCredentials so responses do not reveal which
// check rejected the attempt.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed: unknown user", slog.String("username", username))
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed: bad password", slog.String("username", username))
		return "", ErrInvalidCredentials
	}

	if user.Disabled {
		l.Info("login failed: disabled account", slog.String("username", username))
		return "", ErrInvalidCredentials
	}

	claims := jwtx.NewAccessClaims(user.Username, s.Issuer, s.accessTTL(), now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", err
	}

	l.Info("login succeeded", slog.String("username", username))
	return token, nil
}

// CurrentUser resolves the authenticated subject back to its user record.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}
