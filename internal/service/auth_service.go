package service

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/Juanchoszs/StarWash/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService gates administrative capability behind the single shared
// shop password. A successful login yields a signed session token; the
// rest of the system only ever sees "holds a valid session", never the
// credential itself.
type AuthService struct {
	Config config.Config
	Logger *slog.Logger
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
}

// Login checks the shared password in constant time and issues a session
// token.
func (s AuthService) Login(password string) (*AuthResult, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.Config.AdminPassword)) != 1 {
		s.Logger.Warn("admin login rejected")
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	exp := now.Add(s.Config.SessionTTL)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "session",
		"role":       "admin",
		"exp":        exp.Unix(),
		"iat":        now.Unix(),
	}).SignedString([]byte(s.Config.SessionSecret))
	if err != nil {
		return nil, err
	}

	s.Logger.Info("admin session issued", "expires", exp)
	return &AuthResult{Token: token, ExpiresAt: exp}, nil
}
