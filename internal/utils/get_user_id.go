package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

var ErrNoUserInContext = errors.New("user_id not found in context")

func GetUserID(c *gin.Context) (uint, error) {
	userIDToken, exists := c.Get(ContextUserID)
	if !exists {
		return 0, ErrNoUserInContext
	}
	userID, ok := userIDToken.(uint)
	if !ok || userID == 0 {
		return 0, errors.New("user_id in context is not a valid id")
	}
	return userID, nil
}
