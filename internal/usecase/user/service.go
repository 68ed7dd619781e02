package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wastemanage/internal/config"
	domainUser "wastemanage/internal/domain/user"
	"wastemanage/internal/logger"
	"wastemanage/internal/mailer"
	appErrors "wastemanage/pkg/errors"
	"wastemanage/pkg/utils"
)

const resetTokenTTL = 1 * time.Hour

// Service implements user use cases.
type Service struct {
	userRepo domainUser.Repository
	mail     mailer.Sender
	config   *config.Config
}

func NewService(userRepo domainUser.Repository, mail mailer.Sender, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		mail:     mail,
		config:   cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordHashed: hashedPassword,
		PhoneNumber:    req.PhoneNumber,
		Role:           domainUser.RoleUser,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if req.Address != nil {
		user.Address = domainUser.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "user_registered"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(
		user.ID,
		user.Email,
		user.Role,
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		User:  ToUserResponse(user),
		Token: token,
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = domainUser.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.CurrentPassword) {
		logger.Warn("Password change attempt with invalid current password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_change_failed"),
		)
		return appErrors.NewAppError("INVALID_PASSWORD", "Current password is incorrect", nil)
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password changed successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_change_success"),
	)

	return nil
}

func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	rawToken, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	expires := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, utils.HashResetToken(rawToken), expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.Frontend.BaseURL, rawToken)

	if err := s.mail.SendPasswordResetEmail(user.Email, user.FirstName, resetURL); err != nil {
		// A token the user can never receive is useless; drop it.
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			logger.Error("Failed to clear reset token after mail failure",
				zap.String("user_id", user.ID.String()),
				zap.Error(clearErr),
			)
		}
		return appErrors.NewAppError("EMAIL_ERROR", "Error sending reset email. Please try again later.", err)
	}

	logger.Info("Password reset email sent",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expires),
		zap.String("event", "password_reset_token_generated"),
	)

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	// Not-found and expired are deliberately indistinguishable to the caller.
	user, err := s.userRepo.GetByResetTokenHash(ctx, utils.HashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, domainUser.ErrResetTokenInvalid) {
			return appErrors.ErrInvalidResetToken
		}
		return err
	}

	if !user.HasValidResetToken(utils.HashResetToken(req.Token), time.Now()) {
		logger.Warn("Password reset attempt with expired token",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_reset_failed_expired_token"),
		)
		return appErrors.ErrInvalidResetToken
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	// Confirmation mail must never delay or fail the reset itself.
	go func(email, firstName string, userID uuid.UUID) {
		if err := s.mail.SendPasswordResetConfirmation(email, firstName); err != nil {
			logger.Error("Failed to send password reset confirmation email",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}(user.Email, user.FirstName, user.ID)

	logger.Info("Password reset successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
