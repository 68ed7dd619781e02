package pickup

import (
	"time"

	"github.com/google/uuid"
)

// WasteType categorizes the material composition of a pickup request.
type WasteType string

const (
	WastePaper    WasteType = "paper"
	WastePlastics WasteType = "plastics"
	WasteCartons  WasteType = "cartons"
	WasteMetal    WasteType = "metal"
	WasteTins     WasteType = "tins"
	WasteMixed    WasteType = "mixed"
)

// WasteTypes is the canonical enumeration accepted on requests.
var WasteTypes = []WasteType{
	WastePaper,
	WastePlastics,
	WasteCartons,
	WasteMetal,
	WasteTins,
	WasteMixed,
}

func IsValidWasteType(v string) bool {
	for _, wt := range WasteTypes {
		if WasteType(v) == wt {
			return true
		}
	}
	return false
}

// TimeSlot is a coarse pickup window within a day.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

func IsValidTimeSlot(v string) bool {
	switch TimeSlot(v) {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

// SlotOrder gives the within-day ordering of a time slot, morning first.
func SlotOrder(slot TimeSlot) int {
	switch slot {
	case SlotMorning:
		return 1
	case SlotAfternoon:
		return 2
	case SlotEvening:
		return 3
	}
	return 4
}

// Status is the pickup request's position in its processing lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func IsValidStatus(v string) bool {
	switch Status(v) {
	case StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Owner carries the contact details of the requesting user, denormalized onto
// admin-facing listings.
type Owner struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
}

// PickupRequest is the central work item: one user's request to have waste
// collected at an address within a preferred window.
type PickupRequest struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Address   string
	Latitude  *float64
	Longitude *float64

	WasteTypes      []WasteType
	EstimatedWeight float64
	Description     string

	PreferredDate     time.Time
	PreferredTimeSlot TimeSlot

	Status      Status
	RouteID     *string
	Priority    int
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated on admin reads only.
	Owner *Owner
}

// Statistics aggregates counts for the admin dashboard.
type Statistics struct {
	TotalRequests int            `json:"total_requests"`
	ByStatus      map[string]int `json:"by_status"`
	ByWasteType   map[string]int `json:"by_waste_type"`
}

// Filter narrows admin listings.
type Filter struct {
	UserID    *uuid.UUID
	Status    *Status
	WasteType *WasteType
	StartDate *time.Time
	EndDate   *time.Time
}
