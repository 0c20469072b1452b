package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/middleware"
	"lacelink_dev_v1_202608/internal/service"
)

// ==================== VendorController 卖家控制器 ====================

// VendorController 卖家入驻与认证申请
type VendorController struct {
	vendorService *service.VendorService
	limiter       *middleware.CooldownLimiter
}

// NewVendorController 创建卖家控制器
func NewVendorController(vendorService *service.VendorService) *VendorController {
	return &VendorController{
		vendorService: vendorService,
		limiter:       middleware.NewCooldownLimiter(),
	}
}

// Onboard 卖家入驻
// @Summary 开店（创建/更新卖家档案）
// @Tags Vendor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OnboardRequest true "店铺信息"
// @Success 200 {object} dto.OnboardResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/vendor/onboard [post]
func (ctrl *VendorController) Onboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req dto.OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storeName required"})
		return
	}

	profile, err := ctrl.vendorService.Onboard(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, &dto.OnboardResponse{
		OK:     true,
		Vendor: ctrl.vendorService.ToProfileInfo(profile),
	})
}

// Apply 提交认证申请
// @Summary 提交卖家认证申请
// @Tags Vendor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyRequest true "申请材料"
// @Success 200 {object} dto.ApplyResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /api/vendor/verification/apply [post]
func (ctrl *VendorController) Apply(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	// 提交有冷却，挡住连点和脚本刷申请
	if result := ctrl.limiter.Check(middleware.ApplyKey(userID), middleware.ApplyCooldown); !result.Allowed {
		c.Header("Retry-After", result.RetryAfter.String())
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many submissions, try again later"})
		return
	}

	requestID, err := ctrl.vendorService.Apply(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotVendor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, &dto.ApplyResponse{OK: true, RequestID: requestID})
}
