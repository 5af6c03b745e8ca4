// Package jwt issues and validates the bearer tokens merchants present to
// start payments.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenTypeMerchant marks tokens allowed to start payments
const TokenTypeMerchant = "merchant"

// Claims represents merchant JWT claims
type Claims struct {
	MerchantID string `json:"merchant_id"`
	Type       string `json:"type"`
	jwt.RegisteredClaims
}

// Service handles JWT operations
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates JWT service. Tokens never expire when ttl is zero.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateMerchantToken signs a token for merchantID
func (s *Service) GenerateMerchantToken(merchantID string) (string, error) {
	if merchantID == "" {
		return "", errors.New("merchant id is required")
	}
	now := s.now()
	claims := Claims{
		MerchantID: merchantID,
		Type:       TokenTypeMerchant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  merchantID,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.New().String(),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateMerchantToken validates and parses a merchant token
func (s *Service) ValidateMerchantToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != TokenTypeMerchant || claims.MerchantID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) GetTTL() time.Duration { return s.ttl }
