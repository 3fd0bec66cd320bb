package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

type Claims struct {
	UserID string    `json:"user_id"`
	Kind   TokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService signs and verifies HS256 access and refresh tokens.
type TokenService struct {
	secret           []byte
	issuer           string
	accessTTL        time.Duration
	rotatedAccessTTL time.Duration
	refreshTTL       time.Duration
	now              func() time.Time
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:           []byte(cfg.Secret),
		issuer:           cfg.Issuer,
		accessTTL:        cfg.AccessTTL,
		rotatedAccessTTL: cfg.RefreshAccessTTL,
		refreshTTL:       cfg.RefreshTTL,
		now:              time.Now,
	}
}

// Issue signs a token of the given kind with its default lifetime.
func (s *TokenService) Issue(userID string, kind TokenKind) (string, error) {
	ttl := s.accessTTL
	if kind == RefreshToken {
		ttl = s.refreshTTL
	}
	return s.IssueWithTTL(userID, kind, ttl)
}

func (s *TokenService) IssueWithTTL(userID string, kind TokenKind, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// IssuePair mints an access and refresh token. Rotated pairs, minted by
// the refresh endpoint, get the shorter access lifetime.
func (s *TokenService) IssuePair(userID string, rotated bool) (*TokenPair, error) {
	accessTTL := s.accessTTL
	if rotated {
		accessTTL = s.rotatedAccessTTL
	}

	access, err := s.IssueWithTTL(userID, AccessToken, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Issue(userID, RefreshToken)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify parses token and checks that it is of the expected kind.
// Expiry yields domain.ErrTokenExpired; every other failure yields
// domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if claims.Kind != kind || claims.UserID == "" || claims.ID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
