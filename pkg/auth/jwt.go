package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("expired token")
	ErrInvalidClaims   = errors.New("invalid claims")
	ErrMissingPassword = errors.New("app password not configured")
)

// ChannelClaims are the claims of a channel token. Channel connectors
// present these on inbound calls and the bot presents them on outbound
// deliveries.
type ChannelClaims struct {
	AppID     string `json:"app_id"`
	ChannelID string `json:"channel_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and validates channel tokens with the shared app password
type JWTService struct {
	appID      string
	secretKey  []byte
	expiration time.Duration
}

// NewJWTService creates a JWTService for the given app credentials
func NewJWTService(appID, appPassword string) (*JWTService, error) {
	if appPassword == "" {
		return nil, ErrMissingPassword
	}

	return &JWTService{
		appID:      appID,
		secretKey:  []byte(appPassword),
		expiration: time.Hour,
	}, nil
}

// GenerateToken signs a short-lived token for an outbound channel call
func (s *JWTService) GenerateToken(channelID string) (string, error) {
	now := time.Now()

	claims := ChannelClaims{
		AppID:     s.appID,
		ChannelID: channelID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.appID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken verifies a bearer token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*ChannelClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ChannelClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ChannelClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
