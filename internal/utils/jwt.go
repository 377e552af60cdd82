package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT validation errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenExpiry is how long issued tokens stay valid. There is no refresh or
// revocation; tokens are trusted until this embedded expiry.
const TokenExpiry = 24 * time.Hour

// UserClaims defines JWT claims for admin panel accounts.
type UserClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Img      string `json:"img"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TraderClaims defines JWT claims for trader-scoped redemption links.
type TraderClaims struct {
	TraderID string `json:"traderId"`
	jwt.RegisteredClaims
}

// GenerateUserToken signs an admin JWT carrying identity claims.
func GenerateUserToken(secret, userID, username, email, img, role string) (string, error) {
	now := time.Now().UTC()
	claims := UserClaims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Img:      img,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateTraderToken signs a trader-scoped JWT.
func GenerateTraderToken(secret, traderID string) (string, error) {
	now := time.Now().UTC()
	claims := TraderClaims{
		TraderID: traderID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseUserToken validates an admin JWT and returns its claims.
func ParseUserToken(secret, tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, keyFunc(secret))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseTraderToken validates a trader-scoped JWT and returns its claims.
func ParseTraderToken(secret, tokenString string) (*TraderClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TraderClaims{}, keyFunc(secret))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*TraderClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}
}
