package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/repository"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrRevokedToken   = errors.New("token has been revoked")
	ErrWrongTokenType = errors.New("wrong token type")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair carries both tokens plus the access-token expiry computed at
// issuance. Callers never re-derive the expiry by decoding the token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresAt        time.Time
	RefreshExpiresAt time.Time
}

// Claims is the decoded view of a validated token.
type Claims struct {
	UserID    uint64
	TokenType string
	JTI       string
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserID    uint64 `json:"uid"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed token pairs and keeps the
// refresh-token blacklist.
type TokenService struct {
	signingKey      []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	tokenRepo       repository.TokenRepository
	timeFunc        func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, tokenRepo repository.TokenRepository) *TokenService {
	return &TokenService{
		signingKey:      []byte(cfg.JWTSecret),
		accessLifetime:  time.Duration(cfg.AccessTokenLifetimeMin) * time.Minute,
		refreshLifetime: time.Duration(cfg.RefreshTokenLifetimeMin) * time.Minute,
		tokenRepo:       tokenRepo,
		timeFunc:        time.Now,
	}
}

// IssuePair mints a fresh access+refresh pair for a user.
func (s *TokenService) IssuePair(userID uint64) (*TokenPair, error) {
	now := s.timeFunc()
	accessExpiry := now.Add(s.accessLifetime)
	refreshExpiry := now.Add(s.refreshLifetime)

	access, err := s.sign(userID, tokenTypeAccess, now, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.sign(userID, tokenTypeRefresh, now, refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresAt:        accessExpiry,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// ValidateAccess validates an access token and returns its claims.
func (s *TokenService) ValidateAccess(tokenString string) (*Claims, error) {
	return s.validate(tokenString, tokenTypeAccess)
}

// ValidateRefresh validates a refresh token, including a blacklist check.
func (s *TokenService) ValidateRefresh(tokenString string) (*Claims, error) {
	claims, err := s.validate(tokenString, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := s.tokenRepo.IsRevoked(claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if revoked {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// Rotate exchanges a valid refresh token for a new pair and blacklists
// the old token. Two callers racing with the same refresh token may both
// succeed; nothing serializes rotation.
func (s *TokenService) Rotate(refreshToken string) (*TokenPair, uint64, error) {
	claims, err := s.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, 0, err
	}

	pair, err := s.IssuePair(claims.UserID)
	if err != nil {
		return nil, 0, err
	}

	if err := s.tokenRepo.Revoke(claims.JTI, claims.UserID, claims.ExpiresAt); err != nil {
		return nil, 0, fmt.Errorf("failed to revoke rotated token: %w", err)
	}

	return pair, claims.UserID, nil
}

// Revoke blacklists a refresh token. Invalid input is reported but never
// blocks the caller's logout.
func (s *TokenService) Revoke(refreshToken string) error {
	claims, err := s.validate(refreshToken, tokenTypeRefresh)
	if err != nil {
		return err
	}
	return s.tokenRepo.Revoke(claims.JTI, claims.UserID, claims.ExpiresAt)
}

func (s *TokenService) sign(userID uint64, tokenType string, now, expiry time.Time) (string, error) {
	claims := tokenClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

func (s *TokenService) validate(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}

	return &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
