package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usecaseAdmin "wastemanage/internal/usecase/admin"
	"wastemanage/pkg/utils"
)

type AdminHandler struct {
	adminService *usecaseAdmin.Service
}

func NewAdminHandler(adminService *usecaseAdmin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req usecaseAdmin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	auth, err := h.adminService.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", auth)
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req usecaseAdmin.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.adminService.ResetPassword(c.Request.Context(), adminID, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}
