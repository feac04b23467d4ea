package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims represents JWT claims
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// JWTService signs and verifies the three token families the backend
// uses: access, refresh and short-lived correlation tokens. Each family
// has its own secret so a leaked token of one kind is worthless to the
// others; in particular a correlation token emailed around an OTP
// round-trip never validates as a bearer access token.
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	correlationSecret []byte
	accessExpiry      time.Duration
	refreshExpiry     time.Duration
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, correlationSecret string, accessExpiry, refreshExpiry time.Duration) *JWTService {
	return &JWTService{
		accessSecret:      []byte(accessSecret),
		refreshSecret:     []byte(refreshSecret),
		correlationSecret: []byte(correlationSecret),
		accessExpiry:      accessExpiry,
		refreshExpiry:     refreshExpiry,
	}
}

// GenerateTokenPair generates access and refresh tokens carrying {userId, role}
func (s *JWTService) GenerateTokenPair(userID uuid.UUID, role string) (*TokenPair, error) {
	accessToken, err := s.generate(&Claims{UserID: userID, Role: role}, s.accessSecret, s.accessExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generate(&Claims{UserID: userID, Role: role}, s.refreshSecret, s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GenerateAccessToken generates a standalone access token
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	return s.generate(&Claims{UserID: userID, Role: role}, s.accessSecret, s.accessExpiry)
}

// GenerateCorrelationToken generates a short-lived token binding an OTP
// round-trip to a user without exposing the user id in the transport layer.
func (s *JWTService) GenerateCorrelationToken(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	return s.generate(&Claims{UserID: userID, Email: email}, s.correlationSecret, ttl)
}

// GenerateSessionToken generates a long-lived session token issued after
// a successful OTP verification.
func (s *JWTService) GenerateSessionToken(userID uuid.UUID, email, role string, ttl time.Duration) (string, error) {
	return s.generate(&Claims{UserID: userID, Email: email, Role: role}, s.accessSecret, ttl)
}

// ValidateAccessToken validates a token against the access secret
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return validate(tokenString, s.accessSecret)
}

// ValidateRefreshToken validates a token against the refresh secret
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return validate(tokenString, s.refreshSecret)
}

// ValidateCorrelationToken validates a token against the correlation secret
func (s *JWTService) ValidateCorrelationToken(tokenString string) (*Claims, error) {
	return validate(tokenString, s.correlationSecret)
}

func validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *JWTService) generate(claims *Claims, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signJWTToken(token, secret)
}
