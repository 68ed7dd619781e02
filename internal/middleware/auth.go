package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wastemanage/internal/config"
	domainAdmin "wastemanage/internal/domain/admin"
	domainUser "wastemanage/internal/domain/user"
	appErrors "wastemanage/pkg/errors"
	"wastemanage/pkg/utils"
)

// Context keys for the resolved identity.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware verifies the bearer token and resolves its subject against
// the matching store: admin roles against the admin store, everything else
// against the user store. The resolved identity is attached to the context
// once; role checks downstream only look at the role value.
func AuthMiddleware(cfg *config.Config, userRepo domainUser.Repository, adminRepo domainAdmin.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			// Expired and malformed tokens get distinct messages but the
			// same status.
			if errors.Is(err, appErrors.ErrTokenExpired) {
				utils.ErrorResponse(c, http.StatusUnauthorized, "Token expired")
			} else {
				utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			}
			c.Abort()
			return
		}

		if domainAdmin.IsAdminRole(claims.Role) {
			a, err := adminRepo.GetByID(c.Request.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domainAdmin.ErrAdminNotFound) {
					utils.ErrorResponse(c, http.StatusNotFound, "Admin not found")
				} else {
					utils.ErrorResponse(c, http.StatusServiceUnavailable, appErrors.ErrStoreUnavailable.Error())
				}
				c.Abort()
				return
			}
			if !a.IsActive {
				utils.ErrorResponse(c, http.StatusForbidden, appErrors.ErrAdminDeactivated.Error())
				c.Abort()
				return
			}

			c.Set(ContextUserID, a.ID)
			c.Set(ContextEmail, a.Email)
			c.Set(ContextRole, a.Role)
			c.Next()
			return
		}

		u, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domainUser.ErrUserNotFound) {
				utils.ErrorResponse(c, http.StatusNotFound, "User not found")
			} else {
				utils.ErrorResponse(c, http.StatusServiceUnavailable, appErrors.ErrStoreUnavailable.Error())
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, u.ID)
		c.Set(ContextEmail, u.Email)
		c.Set(ContextRole, u.Role)
		c.Next()
	}
}
