package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired marks a well-formed token whose lifetime has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid covers malformed, tampered or wrongly signed tokens.
	ErrTokenInvalid = errors.New("invalid token")
)

type Claims struct {
	Role    string `json:"role"`
	LoginID string `json:"login_id"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 token for the given subject with role and
// login claims, valid for ttl from now.
func GenerateToken(secret []byte, subject, role, loginID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:    role,
		LoginID: loginID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken checks signature and expiry. Expired tokens are reported
// distinctly from tokens that fail signature or structure checks.
func ValidateToken(secret []byte, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
