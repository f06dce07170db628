package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrInvalidSessionToken is returned for a cookie that fails signature,
// expiry or claim validation.
var ErrInvalidSessionToken = errors.New("invalid session token")

// GenerateSessionToken creates a signed JWT whose subject is the session id.
// The token expires after the specified duration.
func GenerateSessionToken(secret []byte, sessionID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   sessionID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateSessionToken parses and validates a token string and returns the token if valid.
func ValidateSessionToken(secret []byte, tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// ExtractSessionID extracts the session id (subject) from a valid token string.
func ExtractSessionID(secret []byte, tokenString string) (string, error) {
	token, err := ValidateSessionToken(secret, tokenString)
	if err != nil {
		return "", ErrInvalidSessionToken
	}

	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidSessionToken
	}
	return claims.Subject, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
