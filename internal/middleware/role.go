package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainAdmin "wastemanage/internal/domain/admin"
	domainUser "wastemanage/internal/domain/user"
	"wastemanage/pkg/utils"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func UserOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleUser)
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(domainAdmin.Roles...)
}
