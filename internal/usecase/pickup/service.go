package pickup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainPickup "wastemanage/internal/domain/pickup"
	"wastemanage/internal/logger"
	appErrors "wastemanage/pkg/errors"
	"wastemanage/pkg/utils"
)

// Service implements pickup request use cases.
type Service struct {
	pickupRepo domainPickup.Repository
}

func NewService(pickupRepo domainPickup.Repository) *Service {
	return &Service{pickupRepo: pickupRepo}
}

// Create registers a new pickup request for the calling user. The initial
// status is always pending; anything supplied by the client is ignored.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest) (*PickupResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	wasteTypes := make([]domainPickup.WasteType, 0, len(req.WasteTypes))
	for _, wt := range req.WasteTypes {
		wasteTypes = append(wasteTypes, domainPickup.WasteType(wt))
	}

	request := &domainPickup.PickupRequest{
		UserID:            userID,
		Address:           req.Address,
		WasteTypes:        wasteTypes,
		EstimatedWeight:   req.EstimatedWeight,
		Description:       req.Description,
		PreferredDate:     *req.PreferredDate,
		PreferredTimeSlot: domainPickup.TimeSlot(req.PreferredSlot),
		Status:            domainPickup.StatusPending,
		Priority:          1,
	}
	if req.Coordinates != nil {
		request.Latitude = &req.Coordinates.Latitude
		request.Longitude = &req.Coordinates.Longitude
	}

	if err := s.pickupRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Pickup request created",
		zap.String("request_id", request.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("estimated_weight", request.EstimatedWeight),
		zap.String("event", "pickup_request_created"),
	)

	return ToPickupResponse(request), nil
}

// ListMine returns the caller's own requests, newest first.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) (*ListResponse, error) {
	requests, err := s.pickupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := toPickupResponses(requests)
	return &ListResponse{Count: len(responses), Requests: responses}, nil
}

// ListAll returns all requests matching the filter, newest first, with owner
// contact details populated.
func (s *Service) ListAll(ctx context.Context, req *FilterRequest) (*ListResponse, error) {
	filter := &domainPickup.Filter{}

	if req.Status != "" {
		if !domainPickup.IsValidStatus(req.Status) {
			return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid status filter", domainPickup.ErrInvalidStatus)
		}
		status := domainPickup.Status(req.Status)
		filter.Status = &status
	}
	if req.WasteType != "" {
		if !domainPickup.IsValidWasteType(req.WasteType) {
			return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid waste type filter", domainPickup.ErrInvalidWasteType)
		}
		wasteType := domainPickup.WasteType(req.WasteType)
		filter.WasteType = &wasteType
	}
	filter.StartDate = req.StartDate
	filter.EndDate = req.EndDate

	requests, err := s.pickupRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := toPickupResponses(requests)
	return &ListResponse{Count: len(responses), Requests: responses}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PickupResponse, error) {
	request, err := s.pickupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToPickupResponse(request), nil
}

// Update replaces any subset of fields the caller provides, revalidating them
// and enforcing the status transition table when the status changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*PickupResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	request, err := s.pickupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		request.Address = *req.Address
	}
	if req.Coordinates != nil {
		request.Latitude = &req.Coordinates.Latitude
		request.Longitude = &req.Coordinates.Longitude
	}
	if req.WasteTypes != nil {
		wasteTypes := make([]domainPickup.WasteType, 0, len(req.WasteTypes))
		for _, wt := range req.WasteTypes {
			wasteTypes = append(wasteTypes, domainPickup.WasteType(wt))
		}
		request.WasteTypes = wasteTypes
	}
	if req.EstimatedWeight != nil {
		request.EstimatedWeight = *req.EstimatedWeight
	}
	if req.Description != nil {
		request.Description = *req.Description
	}
	if req.PreferredDate != nil {
		request.PreferredDate = *req.PreferredDate
	}
	if req.PreferredSlot != nil {
		request.PreferredTimeSlot = domainPickup.TimeSlot(*req.PreferredSlot)
	}
	if req.RouteID != nil {
		request.RouteID = req.RouteID
	}
	if req.Priority != nil {
		request.Priority = *req.Priority
	}

	if req.Status != nil {
		newStatus := domainPickup.Status(*req.Status)
		if err := domainPickup.ValidateTransition(request.Status, newStatus); err != nil {
			return nil, err
		}
		if newStatus == domainPickup.StatusCompleted && request.Status != domainPickup.StatusCompleted {
			now := time.Now()
			request.CompletedAt = &now
		}
		request.Status = newStatus
	}

	if err := s.pickupRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Pickup request updated",
		zap.String("request_id", request.ID.String()),
		zap.String("status", string(request.Status)),
		zap.String("event", "pickup_request_updated"),
	)

	return ToPickupResponse(request), nil
}

// UpdateStatus moves a request along its lifecycle. The transition table is
// enforced and completedAt is stamped when the request enters completed.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateStatusRequest) (*PickupResponse, error) {
	if !domainPickup.IsValidStatus(req.Status) {
		return nil, appErrors.NewAppError("INVALID_STATUS",
			fmt.Sprintf("Invalid status: %s", req.Status), domainPickup.ErrInvalidStatus)
	}

	request, err := s.pickupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := domainPickup.Status(req.Status)
	if err := domainPickup.ValidateTransition(request.Status, newStatus); err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if newStatus == domainPickup.StatusCompleted && request.Status != domainPickup.StatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	if err := s.pickupRepo.UpdateStatus(ctx, id, newStatus, completedAt); err != nil {
		return nil, err
	}

	logger.Info("Pickup request status updated",
		zap.String("request_id", id.String()),
		zap.String("from", string(request.Status)),
		zap.String("to", string(newStatus)),
		zap.String("event", "pickup_status_updated"),
	)

	request.Status = newStatus
	if completedAt != nil {
		request.CompletedAt = completedAt
	}

	return ToPickupResponse(request), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.pickupRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Pickup request deleted",
		zap.String("request_id", id.String()),
		zap.String("event", "pickup_request_deleted"),
	)

	return nil
}

func (s *Service) GetStatistics(ctx context.Context) (*domainPickup.Statistics, error) {
	return s.pickupRepo.GetStatistics(ctx)
}
