package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/sla-compliance-service/internal/auth"
	"github.com/spec-kit/sla-compliance-service/internal/config"
	apperrors "github.com/spec-kit/sla-compliance-service/pkg/util"
)

// AuthService exchanges the shared admin PIN for a short-lived access token.
// The PIN is hashed once at startup; login compares against the hash.
type AuthService struct {
	pinHash  []byte
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPIN), cost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		pinHash:  hash,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
	}, nil
}

// Login verifies the PIN and issues an access token.
func (s *AuthService) Login(pin string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid pin")
	}
	return s.tokenMgr.GenerateToken("admin", "admin")
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
