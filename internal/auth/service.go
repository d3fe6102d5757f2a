// Package auth implements player registration and JWT access/refresh
// token issuance (spec.md 4.1/6: POST /auth/register, /auth/login,
// /auth/refresh), grounded on the defense-allies-server reference's
// pairing of a Go game server with github.com/golang-jwt/jwt/v5 —
// the teacher's own security.go is a single static API key and has no
// per-player credential flow to generalize.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/repository"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claim
	// validation, or names a token type the caller did not expect.
	ErrInvalidToken = errors.New("invalid token")
)

const (
	// AccessTokenTTL bounds how long an issued access token is valid.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL bounds how long an issued refresh token is valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	claimTokenType  = "typ"
	tokenTypeAccess = "access"
	tokenTypeRefresh = "refresh"
)

// Claims is the JWT payload issued for both access and refresh tokens,
// distinguished by Type.
type Claims struct {
	PlayerID string `json:"player_id"`
	Type     string `json:"typ"`
	jwt.RegisteredClaims
}

// Service defines the registration and token-issuance operations.
type Service interface {
	Register(ctx context.Context, username, password, displayName string) (*domain.Player, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	ValidateAccessToken(token string) (playerID string, err error)
}

type service struct {
	players   repository.Player
	secretKey []byte
}

// NewService wires the player repository and the HMAC secret tokens are
// signed and verified with.
func NewService(players repository.Player, secretKey []byte) Service {
	return &service{players: players, secretKey: secretKey}
}

// Register creates a new player account with a bcrypt-hashed password,
// failing with ErrDuplicatePlayer if username is already taken.
func (s *service) Register(ctx context.Context, username, password, displayName string) (*domain.Player, error) {
	if _, err := s.players.GetPlayerByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicatePlayer
	} else if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, fmt.Errorf("check existing player: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	p := &domain.Player{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Resources:    domain.Resources{MaxStamina: domain.DefaultMaxStamina, Stamina: domain.DefaultMaxStamina},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.players.CreatePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("save player: %w", err)
	}
	return p, nil
}

// Login verifies username/password and issues a fresh access/refresh
// token pair, failing with ErrInvalidCredentials on any mismatch.
func (s *service) Login(ctx context.Context, username, password string) (string, string, error) {
	p, err := s.players.GetPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return "", "", domain.ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("load player: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	access, err := s.issue(p.ID, tokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.issue(p.ID, tokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Refresh validates refreshToken and issues a new access token for the
// same player, without rotating the refresh token itself.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.Type != tokenTypeRefresh {
		return "", ErrInvalidToken
	}
	return s.issue(claims.PlayerID, tokenTypeAccess, AccessTokenTTL)
}

// ValidateAccessToken parses and verifies token, returning the player id
// it was issued for.
func (s *service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Type != tokenTypeAccess {
		return "", ErrInvalidToken
	}
	return claims.PlayerID, nil
}

func (s *service) issue(playerID, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		PlayerID: playerID,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *service) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
