// internal/auth/service.go
// Session layer: registration, login, token rotation and revocation.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/imadgeboyega/spotlink-backend/internal/common/utils"
	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidToken       = errors.New("invalid token")
)

// Service interface
type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, accessToken string) error
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
}

// Config holds service configuration
type Config struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

type service struct {
	store  store.Store
	redis  *redis.Client // optional; nil disables session tracking and blacklisting
	config *Config
}

// NewService creates a new auth service
func NewService(st store.Store, redisClient *redis.Client, config *Config) Service {
	return &service{
		store:  st,
		redis:  redisClient,
		config: config,
	}
}

// Register creates a new account and signs the user in.
func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if _, err := s.store.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &store.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		Location:     req.Location,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a token pair.
func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates the pair. The old refresh session is revoked first so
// a stolen refresh token works at most once.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateJWT(refreshToken, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	if s.redis != nil {
		exists, err := s.redis.Exists(ctx, sessionKey(claims.TokenID)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check session: %w", err)
		}
		if exists == 0 {
			return nil, ErrInvalidToken
		}
		if err := s.redis.Del(ctx, sessionKey(claims.TokenID)).Err(); err != nil {
			return nil, fmt.Errorf("failed to revoke session: %w", err)
		}
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout blacklists the current access token for its remaining lifetime.
func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := utils.ValidateJWT(accessToken, s.config.JWTSecret)
	if err != nil {
		return ErrInvalidToken
	}
	if claims.Type != "access" {
		return ErrInvalidToken
	}

	if s.redis == nil {
		return nil
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, blacklistKey(claims.TokenID), claims.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// ValidateToken checks signature, expiry and the revocation list.
func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if s.redis != nil && claims.TokenID != "" {
		blacklisted, err := s.redis.Exists(ctx, blacklistKey(claims.TokenID)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check blacklist: %w", err)
		}
		if blacklisted > 0 {
			return nil, ErrInvalidToken
		}
	}

	return claims, nil
}

func (s *service) issueTokens(ctx context.Context, user *store.User) (*AuthResponse, error) {
	now := time.Now()
	sessionID := uuid.NewString()

	accessToken, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Username:  user.Username,
		Type:      "access",
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(s.config.AccessTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "spotlink",
	}, s.config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Username:  user.Username,
		Type:      "refresh",
		TokenID:   sessionID,
		ExpiresAt: now.Add(s.config.RefreshTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "spotlink",
	}, s.config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, sessionKey(sessionID), user.ID, s.config.RefreshTokenExpiry).Err(); err != nil {
			return nil, fmt.Errorf("failed to store session: %w", err)
		}
	}

	return &AuthResponse{
		User:         user.Info(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func blacklistKey(tokenID string) string {
	return "blacklist:" + tokenID
}
