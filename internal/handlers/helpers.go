package handlers

import (
	"errors"
	"net/http"

	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/Midoriya12/calsnap/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and answered with msg so internals do not leak.
func respondError(c *gin.Context, err error, msg string) {
	var ve service.ValidationError
	var nf repository.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.Is(err, service.ErrNutritionUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.FromContext(c).Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// requireUserID reads the authenticated user id, answering 401 when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}
