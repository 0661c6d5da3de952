// Package authsvc implements the single-operator bearer credential used
// by the optional crossgen serve HTTP mode: no user accounts, one
// bcrypt-hashed API key exchanged for an HS256 JWT.
package authsvc

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the JWT payload issued on a successful login; there is no
// user identity to carry, only the issuing service and expiry.
type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// Service holds the operator credential and JWT signing secret.
type Service struct {
	jwtSecret     []byte
	apiKeyHash    string
	tokenDuration time.Duration
}

// NewService wraps a pre-hashed operator API key (bcrypt) and the secret
// used to sign issued JWTs.
func NewService(jwtSecret, apiKeyHash string) *Service {
	return &Service{
		jwtSecret:     []byte(jwtSecret),
		apiKeyHash:    apiKeyHash,
		tokenDuration: 24 * time.Hour,
	}
}

// HashAPIKey hashes a raw operator API key for storage/config, mirroring
// the bcrypt cost the teacher's password hashing used.
func HashAPIKey(rawKey string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	return string(bytes), err
}

// Login exchanges the raw operator API key for a signed JWT.
func (s *Service) Login(rawKey string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.apiKeyHash), []byte(rawKey)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := &Claims{
		Operator: "crossgen-operator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "crossgen",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
