package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/middleware"
	"lacelink_dev_v1_202608/internal/service"
)

// 处理器回调的签名头
const webhookSignatureHeader = "X-Payment-Signature"

// ==================== CheckoutController 结算控制器 ====================

// CheckoutController 结算 handoff 与支付回调
type CheckoutController struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutController 创建结算控制器
func NewCheckoutController(checkoutService *service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

// Create 创建结算会话
// @Summary 创建结算会话（跳转处理器托管支付页）
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "结算请求"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/checkout [post]
func (ctrl *CheckoutController) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	// 登录用户可不填邮箱，取身份里的
	buyerUserID := middleware.GetUserID(c)
	if req.Email == "" {
		req.Email = middleware.GetEmail(c)
	}

	resp, err := ctrl.checkoutService.CreateCheckout(c.Request.Context(), buyerUserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotConfigured):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Webhook 支付回调
// 签名校验要原始报文，不能走 JSON 绑定
// @Summary 支付处理器回调
// @Tags Checkout
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /api/checkout/webhook [post]
func (ctrl *CheckoutController) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取回调报文失败"})
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if err := ctrl.checkoutService.HandleWebhook(c.Request.Context(), signature, body); err != nil {
		switch {
		case errors.Is(err, service.ErrBadSignature), errors.Is(err, service.ErrBadWebhookPayload):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
