// Package auth issues and verifies session tokens and password hashes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is the session token lifetime.
const TokenTTL = time.Hour

var errInvalidToken = errors.New("invalid token")

// GenerateToken signs an HS256 token carrying the user id and an expiry.
func GenerateToken(userID int, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the embedded user id.
// Expired, forged, and malformed tokens all fail with the same error so
// callers cannot tell them apart.
func ParseToken(tokenString string, secret []byte) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errInvalidToken
	}
	return int(userID), nil
}
