package pickup

import (
	"time"

	"github.com/google/uuid"

	domainPickup "wastemanage/internal/domain/pickup"
)

// Request DTOs
type CreateRequest struct {
	Address         string              `json:"address" validate:"required,min=5"`
	Coordinates     *CoordinatesRequest `json:"coordinates" validate:"omitempty"`
	WasteTypes      []string            `json:"waste_type" validate:"required,min=1,dive,waste_type"`
	EstimatedWeight float64             `json:"estimated_weight" validate:"required,min=1"`
	Description     string              `json:"description" validate:"omitempty,max=500"`
	PreferredDate   *time.Time          `json:"preferred_date" validate:"required"`
	PreferredSlot   string              `json:"preferred_time_slot" validate:"required,time_slot"`
}

type CoordinatesRequest struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

type UpdateRequest struct {
	Address         *string             `json:"address" validate:"omitempty,min=5"`
	Coordinates     *CoordinatesRequest `json:"coordinates" validate:"omitempty"`
	WasteTypes      []string            `json:"waste_type" validate:"omitempty,min=1,dive,waste_type"`
	EstimatedWeight *float64            `json:"estimated_weight" validate:"omitempty,min=1"`
	Description     *string             `json:"description" validate:"omitempty,max=500"`
	PreferredDate   *time.Time          `json:"preferred_date" validate:"omitempty"`
	PreferredSlot   *string             `json:"preferred_time_slot" validate:"omitempty,time_slot"`
	Status          *string             `json:"status" validate:"omitempty,pickup_status"`
	RouteID         *string             `json:"route_id" validate:"omitempty,max=100"`
	Priority        *int                `json:"priority" validate:"omitempty,min=1,max=5"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FilterRequest narrows the admin listing. Dates bound the preferred pickup
// date, inclusive on both ends.
type FilterRequest struct {
	Status    string     `form:"status"`
	WasteType string     `form:"wasteType"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// Response DTOs
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PickupResponse struct {
	ID                uuid.UUID           `json:"id"`
	UserID            uuid.UUID           `json:"user_id"`
	Address           string              `json:"address"`
	Coordinates       *Coordinates        `json:"coordinates,omitempty"`
	WasteTypes        []string            `json:"waste_type"`
	EstimatedWeight   float64             `json:"estimated_weight"`
	Description       string              `json:"description,omitempty"`
	PreferredDate     time.Time           `json:"preferred_date"`
	PreferredTimeSlot string              `json:"preferred_time_slot"`
	Status            string              `json:"status"`
	RouteID           *string             `json:"route_id,omitempty"`
	Priority          int                 `json:"priority"`
	CompletedAt       *time.Time          `json:"completed_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	User              *domainPickup.Owner `json:"user,omitempty"`
}

type ListResponse struct {
	Count    int               `json:"count"`
	Requests []*PickupResponse `json:"requests"`
}

// DailyRoute is one calendar day's grouped pickup route. Distance and time are
// fixed per-stop multipliers, not real geography.
type DailyRoute struct {
	Date                string            `json:"date"`
	Stops               []*PickupResponse `json:"stops"`
	TotalStops          int               `json:"total_stops"`
	TotalWeight         float64           `json:"total_weight"`
	EstimatedDistanceKm int               `json:"estimated_distance_km"`
	EstimatedTimeMin    int               `json:"estimated_time_min"`
}

func ToPickupResponse(p *domainPickup.PickupRequest) *PickupResponse {
	wasteTypes := make([]string, 0, len(p.WasteTypes))
	for _, wt := range p.WasteTypes {
		wasteTypes = append(wasteTypes, string(wt))
	}

	resp := &PickupResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		Address:           p.Address,
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
		User:              p.Owner,
	}

	if p.Latitude != nil && p.Longitude != nil {
		resp.Coordinates = &Coordinates{
			Latitude:  *p.Latitude,
			Longitude: *p.Longitude,
		}
	}

	return resp
}

func toPickupResponses(requests []*domainPickup.PickupRequest) []*PickupResponse {
	responses := make([]*PickupResponse, 0, len(requests))
	for _, p := range requests {
		responses = append(responses, ToPickupResponse(p))
	}
	return responses
}
