// pkg/token/token.go
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is stamped on every token this service signs.
const Issuer = "crease"

// Claims defines the structure of the JWT claims the scorer presents.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ValidateJWT parses, validates, and returns claims from a JWT string.
func ValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, errors.New("token is not yet valid")
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, errors.New("token signature is invalid")
		}
		return nil, fmt.Errorf("could not parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	if claims.UserID == "" {
		return nil, errors.New("user_id claim is missing")
	}

	return claims, nil
}

// GenerateJWT signs an HS256 token for userID that expires after expiryMinutes.
func GenerateJWT(userID string, userRole string, secretKey string, expiryMinutes int) (string, error) {
	if userID == "" {
		return "", errors.New("user id is empty")
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   userRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}
