package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	usecasePickup "wastemanage/internal/usecase/pickup"
	"wastemanage/pkg/utils"
)

type PickupHandler struct {
	pickupService *usecasePickup.Service
}

func NewPickupHandler(pickupService *usecasePickup.Service) *PickupHandler {
	return &PickupHandler{pickupService: pickupService}
}

func (h *PickupHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req usecasePickup.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Address = utils.SanitizeText(req.Address)
	req.Description = utils.SanitizeText(req.Description)

	request, err := h.pickupService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Pickup request created successfully", request)
}

func (h *PickupHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.pickupService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", list)
}

func (h *PickupHandler) ListAll(c *gin.Context) {
	var req usecasePickup.FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	list, err := h.pickupService.ListAll(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", list)
}

func (h *PickupHandler) Get(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	request, err := h.pickupService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", request)
}

func (h *PickupHandler) Update(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	var req usecasePickup.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Address != nil {
		*req.Address = utils.SanitizeText(*req.Address)
	}
	if req.Description != nil {
		*req.Description = utils.SanitizeText(*req.Description)
	}

	request, err := h.pickupService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pickup request updated successfully", request)
}

func (h *PickupHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	var req usecasePickup.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.pickupService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated successfully", request)
}

func (h *PickupHandler) Delete(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	if err := h.pickupService.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pickup request deleted successfully", nil)
}

func (h *PickupHandler) Statistics(c *gin.Context) {
	stats, err := h.pickupService.GetStatistics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

func (h *PickupHandler) Routes(c *gin.Context) {
	routes, err := h.pickupService.RoutePlan(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"count": len(routes), "routes": routes})
}

func parseRequestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return uuid.Nil, false
	}
	return id, true
}
