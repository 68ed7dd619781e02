package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wastemanage/internal/domain/admin"
	"wastemanage/internal/infrastructure/database/postgres/models"
)

type AdminRepository struct {
	db *DB
}

func NewAdminRepository(db *DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	if a.Role == "" {
		a.Role = admin.RoleAdmin
	}

	dbModel := &models.AdminModel{
		ID:             a.ID,
		Name:           a.Name,
		Email:          strings.ToLower(a.Email),
		PasswordHashed: a.PasswordHashed,
		Role:           a.Role,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return admin.ErrAdminAlreadyExists
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*admin.Admin, error) {
	var dbModel models.AdminModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, admin.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return toAdminEntity(&dbModel), nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	var dbModel models.AdminModel
	err := r.db.DB.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, admin.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return toAdminEntity(&dbModel), nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHashed string) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.AdminModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hashed": passwordHashed,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update admin password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return admin.ErrAdminNotFound
	}

	return nil
}

func (r *AdminRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.AdminModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update admin active flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return admin.ErrAdminNotFound
	}

	return nil
}

func toAdminEntity(m *models.AdminModel) *admin.Admin {
	return &admin.Admin{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHashed: m.PasswordHashed,
		Role:           m.Role,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
