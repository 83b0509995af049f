package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"handshake/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken signs an access token for the given user claims.
// The JWT secret is expected to be set in the environment variable JWT_SECRET.
func GenerateToken(claims *models.UserClaims) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	accessClaims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "handshake-api",
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID: claims.UserID,
		Email:  claims.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	return token.SignedString([]byte(jwtSecret))
}
