package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAdmin "wastemanage/internal/domain/admin"
	domainPickup "wastemanage/internal/domain/pickup"
	domainUser "wastemanage/internal/domain/user"
	"wastemanage/internal/logger"
	"wastemanage/internal/middleware"
	appErrors "wastemanage/pkg/errors"
	"wastemanage/pkg/utils"
)

// respondWithError maps a use case error onto the uniform envelope. Anything
// unrecognized is logged and reported as a 500 without leaking internals.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, domainUser.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusBadRequest, appErrors.ErrUserAlreadyExists.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrInvalidCredentials.Error())
	case errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrAdminDeactivated),
		errors.Is(err, domainAdmin.ErrAdminDeactivated):
		utils.ErrorResponse(c, http.StatusForbidden, appErrors.ErrAdminDeactivated.Error())
	case errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, appErrors.ErrInsufficientPermissions.Error())
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, domainUser.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, appErrors.ErrUserNotFound.Error())
	case errors.Is(err, appErrors.ErrAdminNotFound),
		errors.Is(err, domainAdmin.ErrAdminNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, appErrors.ErrAdminNotFound.Error())
	case errors.Is(err, domainPickup.ErrRequestNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, domainPickup.ErrRequestNotFound.Error())
	case errors.Is(err, appErrors.ErrInvalidResetToken),
		errors.Is(err, domainUser.ErrResetTokenInvalid):
		utils.ErrorResponse(c, http.StatusBadRequest, appErrors.ErrInvalidResetToken.Error())
	case errors.Is(err, appErrors.ErrStoreUnavailable):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, appErrors.ErrStoreUnavailable.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Unhandled error in request",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID pulls the authenticated subject's ID out of the context. The
// auth middleware guarantees it is present on protected routes.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.ContextUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrUnauthorized.Error())
		return uuid.Nil, false
	}

	id, valid := raw.(uuid.UUID)
	if !valid {
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrUnauthorized.Error())
		return uuid.Nil, false
	}

	return id, true
}
