package auth

import (
	"errors"
	"time"

	"arena-stats/internal/core/config"

	"github.com/golang-jwt/jwt/v5"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(cfg config.Config) *Authenticator {
	return &Authenticator{
		signingKey: []byte(cfg.AuthSecret),
	}
}

type UserClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// IssueToken signs an internal JWT for the given user id.
func (a *Authenticator) IssueToken(userID string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.signingKey)
}

// ValidateToken verifies an internal JWT and returns its claims.
func (a *Authenticator) ValidateToken(tokenString string) (*UserClaims, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.signingKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsedToken.Claims.(*UserClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
