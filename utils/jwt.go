package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"fitgrid/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "fitgrid-dev"
	}
	return []byte(secret)
}

// AuthClaims is the identity the authorization layer passes down to the core.
// The core itself never branches on Role; staff-only routes are gated in
// middleware before any core code runs.
type AuthClaims struct {
	UserID string
	GymID  string
	Role   string
}

// GenerateToken creates a signed JWT for the given member or staff identity.
// The token expires after the specified duration.
func GenerateToken(userID, gymID, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"gym":  gymID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaimsFromToken extracts the caller identity from a valid JWT token
// string, or returns an error if validation fails.
func ExtractClaimsFromToken(tokenString string) (*AuthClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	gym, _ := claims["gym"].(string)
	role, _ := claims["role"].(string)

	return &AuthClaims{UserID: sub, GymID: gym, Role: role}, nil
}
