package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Token verification errors.
var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrMissingSubject   = errors.New("invalid subject in token")
)

// ParseIdentityToken verifies an HS256 token issued by the identity provider
// and returns its subject as the user id. Tokens that carry a "type" claim
// must be access tokens.
func ParseIdentityToken(secret, tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if rawType, present := claims["type"]; present {
		if tokenType, ok := rawType.(string); !ok || tokenType != "access" {
			return "", ErrInvalidTokenType
		}
	}

	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return "", ErrMissingSubject
	}
	return sub, nil
}

// VerifyTokenMiddleware verifies the JWT token provided in the Authorization header.
func VerifyTokenMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)

		userID, err := ParseIdentityToken(cfg.EnvVars.IdentityJWTSecret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
