package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wastemanage/internal/config"
	domainAdmin "wastemanage/internal/domain/admin"
	"wastemanage/internal/logger"
	appErrors "wastemanage/pkg/errors"
	"wastemanage/pkg/utils"
)

// Service implements admin use cases. Account creation and deactivation are
// operational concerns handled by the createadmin tool, not this service.
type Service struct {
	adminRepo domainAdmin.Repository
	config    *config.Config
}

func NewService(adminRepo domainAdmin.Repository, cfg *config.Config) *Service {
	return &Service{
		adminRepo: adminRepo,
		config:    cfg,
	}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainAdmin.ErrAdminNotFound) {
			logger.Warn("Admin login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "admin_login_failed_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsActive {
		logger.Warn("Login attempt for deactivated admin",
			zap.String("admin_id", admin.ID.String()),
			zap.String("event", "admin_login_failed_deactivated"),
		)
		return nil, appErrors.ErrAdminDeactivated
	}

	if !utils.CheckPassword(admin.PasswordHashed, req.Password) {
		logger.Warn("Admin login attempt with invalid password",
			zap.String("admin_id", admin.ID.String()),
			zap.String("event", "admin_login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(
		admin.ID,
		admin.Email,
		admin.Role,
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("Admin logged in successfully",
		zap.String("admin_id", admin.ID.String()),
		zap.String("role", admin.Role),
		zap.String("event", "admin_login_success"),
	)

	return &AuthResponse{
		Admin: ToAdminResponse(admin),
		Token: token,
	}, nil
}

// ResetPassword changes an authenticated admin's password after verifying the
// current one. Admins have no email reset flow.
func (s *Service) ResetPassword(ctx context.Context, adminID uuid.UUID, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(admin.PasswordHashed, req.CurrentPassword) {
		logger.Warn("Admin password reset attempt with invalid current password",
			zap.String("admin_id", admin.ID.String()),
			zap.String("event", "admin_password_reset_failed"),
		)
		return appErrors.NewAppError("INVALID_PASSWORD", "Current password is incorrect", nil)
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.adminRepo.UpdatePassword(ctx, adminID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Admin password updated successfully",
		zap.String("admin_id", admin.ID.String()),
		zap.String("event", "admin_password_reset_success"),
	)

	return nil
}
