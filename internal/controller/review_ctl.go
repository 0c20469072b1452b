package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/middleware"
	"lacelink_dev_v1_202608/internal/service"
)

// ==================== ReviewController 评价控制器 ====================

// ReviewController 商品评价
type ReviewController struct {
	reviewService *service.ReviewService
}

// NewReviewController 创建评价控制器
func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// Create 创建评价
// @Summary 发表商品评价
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "评价内容"
// @Success 200 {object} dto.CreateReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/reviews/create [post]
func (ctrl *ReviewController) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review"})
		return
	}

	reviewID, err := ctrl.reviewService.CreateReview(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReview):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, &dto.CreateReviewResponse{OK: true, ReviewID: reviewID})
}
