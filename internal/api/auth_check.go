package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coloring-studio-backend-go/internal/middleware"
)

// ensureRequestUserMatchesToken cross-checks the userId from a request body
// against the UID verified by the auth middleware, when that middleware is
// enabled. Returns false after writing a 403 if the two disagree.
func ensureRequestUserMatchesToken(c *gin.Context, requestUserID string) bool {
	rawUID, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		// Auth gate disabled; the body userId is taken at face value.
		return true
	}
	uid, ok := rawUID.(string)
	if !ok || uid != requestUserID {
		c.JSON(http.StatusForbidden, StatusResponse{Success: false, Message: "Authenticated user does not match requested userId."})
		return false
	}
	return true
}
