package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PickupRequestModel represents the database model for PickupRequest
type PickupRequestModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index"`
	Address           string         `gorm:"type:text;not null"`
	Latitude          *float64       `gorm:"type:decimal(9,6)"`
	Longitude         *float64       `gorm:"type:decimal(9,6)"`
	WasteTypes        pq.StringArray `gorm:"type:text[];not null"`
	EstimatedWeight   float64        `gorm:"type:decimal(8,2);not null;check:estimated_weight >= 1"`
	Description       string         `gorm:"type:varchar(500)"`
	PreferredDate     time.Time      `gorm:"type:date;not null;index"`
	PreferredTimeSlot string         `gorm:"type:varchar(20);not null"`
	Status            string         `gorm:"type:varchar(20);not null;default:'pending';index:idx_pickup_status_created,priority:1"`
	RouteID           *string        `gorm:"type:varchar(100)"`
	Priority          int            `gorm:"type:integer;default:1;check:priority >= 1 AND priority <= 5"`
	CompletedAt       *time.Time     `gorm:"type:timestamptz"`
	CreatedAt         time.Time      `gorm:"not null;index:idx_pickup_status_created,priority:2,sort:desc"`
	UpdatedAt         time.Time      `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (PickupRequestModel) TableName() string {
	return "pickup_requests"
}
