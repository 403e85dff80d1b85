package util

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// GetUserIDFromContext gets the identity-provider user ID from the context.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	val, ok := c.Get("user_id")
	if !ok {
		return "", errors.New("no user ID information")
	}

	userID, ok := val.(string)
	if !ok || userID == "" {
		return "", errors.New("user ID information is of the wrong type")
	}

	return userID, nil
}
