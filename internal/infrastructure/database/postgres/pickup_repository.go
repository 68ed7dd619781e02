package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"wastemanage/internal/domain/pickup"
	"wastemanage/internal/infrastructure/database/postgres/models"
)

type PickupRepository struct {
	db *DB
}

func NewPickupRepository(db *DB) *PickupRepository {
	return &PickupRepository{db: db}
}

func (r *PickupRepository) Create(ctx context.Context, p *pickup.PickupRequest) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if p.Status == "" {
		p.Status = pickup.StatusPending
	}
	if p.Priority == 0 {
		p.Priority = 1
	}

	dbModel := toPickupModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create pickup request: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *PickupRepository) GetByID(ctx context.Context, id uuid.UUID) (*pickup.PickupRequest, error) {
	var dbModel models.PickupRequestModel
	err := r.db.DB.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pickup.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup request: %w", err)
	}

	return toPickupEntity(&dbModel), nil
}

func (r *PickupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*pickup.PickupRequest, error) {
	var dbModels []models.PickupRequestModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pickup requests: %w", err)
	}

	requests := make([]*pickup.PickupRequest, 0, len(dbModels))
	for i := range dbModels {
		requests = append(requests, toPickupEntity(&dbModels[i]))
	}

	return requests, nil
}

func (r *PickupRepository) List(ctx context.Context, filter *pickup.Filter) ([]*pickup.PickupRequest, error) {
	db := r.db.DB.WithContext(ctx).Model(&models.PickupRequestModel{}).Preload("User")

	if filter != nil {
		if filter.UserID != nil {
			db = db.Where("user_id = ?", *filter.UserID)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", string(*filter.Status))
		}
		if filter.WasteType != nil {
			db = db.Where("? = ANY(waste_types)", string(*filter.WasteType))
		}
		if filter.StartDate != nil {
			db = db.Where("preferred_date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			db = db.Where("preferred_date <= ?", *filter.EndDate)
		}
	}

	var dbModels []models.PickupRequestModel
	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pickup requests: %w", err)
	}

	requests := make([]*pickup.PickupRequest, 0, len(dbModels))
	for i := range dbModels {
		requests = append(requests, toPickupEntity(&dbModels[i]))
	}

	return requests, nil
}

func (r *PickupRepository) Update(ctx context.Context, p *pickup.PickupRequest) error {
	p.UpdatedAt = time.Now()

	wasteTypes := make(pq.StringArray, 0, len(p.WasteTypes))
	for _, wt := range p.WasteTypes {
		wasteTypes = append(wasteTypes, string(wt))
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.PickupRequestModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"address":             p.Address,
			"latitude":            p.Latitude,
			"longitude":           p.Longitude,
			"waste_types":         wasteTypes,
			"estimated_weight":    p.EstimatedWeight,
			"description":         p.Description,
			"preferred_date":      p.PreferredDate,
			"preferred_time_slot": string(p.PreferredTimeSlot),
			"status":              string(p.Status),
			"route_id":            p.RouteID,
			"priority":            p.Priority,
			"completed_at":        p.CompletedAt,
			"updated_at":          p.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update pickup request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pickup.ErrRequestNotFound
	}

	return nil
}

func (r *PickupRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status pickup.Status, completedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if completedAt != nil {
		updates["completed_at"] = completedAt
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.PickupRequestModel{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update pickup request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pickup.ErrRequestNotFound
	}

	return nil
}

func (r *PickupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PickupRequestModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete pickup request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pickup.ErrRequestNotFound
	}

	return nil
}

func (r *PickupRepository) GetStatistics(ctx context.Context) (*pickup.Statistics, error) {
	stats := &pickup.Statistics{
		ByStatus:    make(map[string]int),
		ByWasteType: make(map[string]int),
	}

	var statusCounts []struct {
		Status string
		Count  int
	}
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) as count
		FROM pickup_requests
		GROUP BY status
	`).Scan(&statusCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	for _, sc := range statusCounts {
		stats.TotalRequests += sc.Count
		stats.ByStatus[sc.Status] = sc.Count
	}

	// One tally per occurrence of a waste type across all requests.
	var wasteCounts []struct {
		WasteType string
		Count     int
	}
	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT unnest(waste_types) as waste_type, COUNT(*) as count
		FROM pickup_requests
		GROUP BY waste_type
	`).Scan(&wasteCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get waste type counts: %w", err)
	}

	for _, wc := range wasteCounts {
		stats.ByWasteType[wc.WasteType] = wc.Count
	}

	return stats, nil
}

func toPickupModel(p *pickup.PickupRequest) *models.PickupRequestModel {
	wasteTypes := make(pq.StringArray, 0, len(p.WasteTypes))
	for _, wt := range p.WasteTypes {
		wasteTypes = append(wasteTypes, string(wt))
	}

	return &models.PickupRequestModel{
		ID:                p.ID,
		UserID:            p.UserID,
		Address:           p.Address,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		WasteTypes:        wasteTypes,
		EstimatedWeight:   p.EstimatedWeight,
		Description:       p.Description,
		PreferredDate:     p.PreferredDate,
		PreferredTimeSlot: string(p.PreferredTimeSlot),
		Status:            string(p.Status),
		RouteID:           p.RouteID,
		Priority:          p.Priority,
		CompletedAt:       p.CompletedAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toPickupEntity(m *models.PickupRequestModel) *pickup.PickupRequest {
	wasteTypes := make([]pickup.WasteType, 0, len(m.WasteTypes))
	for _, wt := range m.WasteTypes {
		wasteTypes = append(wasteTypes, pickup.WasteType(wt))
	}

	p := &pickup.PickupRequest{
		ID:                m.ID,
		UserID:            m.UserID,
		Address:           m.Address,
		Latitude:          m.Latitude,
		Longitude:         m.Longitude,
		WasteTypes:        wasteTypes,
		EstimatedWeight:   m.EstimatedWeight,
		Description:       m.Description,
		PreferredDate:     m.PreferredDate,
		PreferredTimeSlot: pickup.TimeSlot(m.PreferredTimeSlot),
		Status:            pickup.Status(m.Status),
		RouteID:           m.RouteID,
		Priority:          m.Priority,
		CompletedAt:       m.CompletedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	if m.User != nil {
		p.Owner = &pickup.Owner{
			ID:          m.User.ID,
			FirstName:   m.User.FirstName,
			LastName:    m.User.LastName,
			Email:       m.User.Email,
			PhoneNumber: m.User.PhoneNumber,
		}
	}

	return p
}
