package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/pkg/authz"
)

const adminTokenHeader = "X-Admin-Token"

// AdminRequired guards destructive endpoints behind the admin gate.
func AdminRequired(gate authz.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := extractCredential(c)
		if credential == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !gate.Admin(credential) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractCredential(c *gin.Context) string {
	if token := c.GetHeader(adminTokenHeader); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
