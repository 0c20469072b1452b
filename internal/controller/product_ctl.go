package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/middleware"
	"lacelink_dev_v1_202608/internal/service"
)

// ==================== ProductController 商品控制器 ====================

// ProductController 商品
type ProductController struct {
	productService *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// List 商品列表
// @Summary 商品列表（筛选/排序/分页）
// @Tags Product
// @Produce json
// @Param category query string false "分类"
// @Param laceType query string false "蕾丝类型"
// @Param curlPattern query string false "卷型"
// @Param fastShipping query string false "快发 true/false"
// @Param keyword query string false "关键字"
// @Param sort query string false "newest | price_asc | price_desc"
// @Param page query int false "页码"
// @Param pageSize query int false "每页条数"
// @Success 200 {object} dto.ProductListResponse
// @Router /api/products [get]
func (ctrl *ProductController) List(c *gin.Context) {
	var req dto.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.productService.ListProducts(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Detail 商品详情
// @Summary 商品详情
// @Tags Product
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} dto.ProductDetail
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [get]
func (ctrl *ProductController) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "商品不存在"})
		return
	}

	detail, err := ctrl.productService.GetProductDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Create 卖家创建商品
// @Summary 创建商品
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "商品信息"
// @Success 200 {object} dto.CreateProductResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/vendor/products/create [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	productID, err := ctrl.productService.CreateProduct(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotVendor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, &dto.CreateProductResponse{OK: true, ProductID: productID})
}
