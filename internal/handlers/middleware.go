package handlers

import (
	"net/http"
	"strings"

	"studenthub/internal/models"

	"github.com/gin-gonic/gin"
)

const userCtxKey = "user"

const (
	errMissingAuthHeader = "missing Authorization header"
	errBadAuthHeader     = "invalid Authorization header format"
	errInvalidToken      = "invalid or expired token"
	errAuthRequired      = "authentication required"
	errForbiddenRole     = "insufficient permissions"
)

// authenticate resolves the bearer token to a live user and attaches it to
// the request context. A token whose subject no longer exists gets the
// same rejection as a bad token.
func (h *Handler) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingAuthHeader})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadAuthHeader})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	user, err := h.services.UserByID(userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "server error", "auth_user_lookup_failed", err)
		c.Abort()
		return
	}
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// requireRole gates a route on the authenticated user's role. Without a
// prior authenticate in the chain it fails closed with 401, never
// treating a missing user as anonymous-allowed.
func (h *Handler) requireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbiddenRole})
			return
		}
		c.Next()
	}
}

// currentUser returns the user attached by authenticate, or nil.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
