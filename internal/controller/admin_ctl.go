package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/service"
)

// ==================== AdminController 管理员控制器 ====================

// AdminController 认证审核
type AdminController struct {
	vendorService *service.VendorService
}

// NewAdminController 创建管理员控制器
func NewAdminController(vendorService *service.VendorService) *AdminController {
	return &AdminController{vendorService: vendorService}
}

// ListPending 待审核队列
// @Summary 待审核认证申请列表
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PendingListResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/admin/vendors/pending [get]
func (ctrl *AdminController) ListPending(c *gin.Context) {
	pending, err := ctrl.vendorService.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, &dto.PendingListResponse{Pending: pending})
}

// Decide 终审
// @Summary 审批/驳回认证申请
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DecideRequest true "审核结论"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/vendors/decide [post]
func (ctrl *AdminController) Decide(c *gin.Context) {
	var req dto.DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	err := ctrl.vendorService.Decide(c.Request.Context(), req.VendorID, req.Decision, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrVendorNotFound), errors.Is(err, service.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
