package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
	"lacelink_dev_v1_202608/pkg/utils"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
	userRepo    repository.UserRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, vendorRepo repository.VendorRepository, userRepo repository.UserRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		userRepo:    userRepo,
	}
}

// ==================== 创建 ====================

// CreateProduct 卖家创建商品
// 和认证申请同样的门槛：角色 VENDOR/ADMIN 且有自己的卖家档案
func (s *ProductService) CreateProduct(ctx context.Context, userID int64, req *dto.CreateProductRequest) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil || !user.Role.CanSell() {
		return 0, ErrNotVendor
	}

	profile, err := s.vendorRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, ErrNotVendor
	}

	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	if name == "" || category == "" || req.PriceCents <= 0 {
		return 0, ErrInvalidProduct
	}

	slug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return 0, err
	}

	product := &model.Product{
		VendorID:     profile.ID,
		Name:         name,
		Slug:         slug,
		Description:  strings.TrimSpace(req.Description),
		Category:     category,
		LaceType:     strings.TrimSpace(req.LaceType),
		CurlPattern:  strings.TrimSpace(req.CurlPattern),
		HairType:     strings.TrimSpace(req.HairType),
		Color:        strings.TrimSpace(req.Color),
		PriceCents:   req.PriceCents,
		Currency:     "USD",
		FastShipping: req.FastShipping,
		IsActive:     true,
	}

	for i, url := range req.ImageUrls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		product.Images = append(product.Images, model.ProductImage{
			URL:       url,
			SortOrder: i,
		})
	}
	for _, link := range req.AffiliateLinks {
		if link.URL == "" || link.Label == "" {
			continue
		}
		product.AffiliateLinks = append(product.AffiliateLinks, model.AffiliateLink{
			Label:    link.Label,
			URL:      link.URL,
			Provider: link.Provider,
		})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return 0, err
	}
	return product.ID, nil
}

// uniqueSlug 生成不重复的 slug，被占用时追加序号
func (s *ProductService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "wig"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.productRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// ==================== 查询 ====================

// ListProducts 商品列表
func (s *ProductService) ListProducts(ctx context.Context, req *dto.ProductListRequest) (*dto.ProductListResponse, error) {
	filter := repository.ProductFilter{
		Category:    strings.TrimSpace(req.Category),
		LaceType:    strings.TrimSpace(req.LaceType),
		CurlPattern: strings.TrimSpace(req.CurlPattern),
		Keyword:     strings.TrimSpace(req.Keyword),
		Sort:        req.Sort,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}
	switch req.FastShipping {
	case "true":
		v := true
		filter.FastShipping = &v
	case "false":
		v := false
		filter.FastShipping = &v
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductItem, 0, len(products))
	for i := range products {
		items = append(items, s.toProductItem(&products[i]))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &dto.ProductListResponse{
		Products: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetProductDetail 商品详情
func (s *ProductService) GetProductDetail(ctx context.Context, id int64) (*dto.ProductDetail, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	detail := &dto.ProductDetail{
		ProductItem: s.toProductItem(product),
		Description: product.Description,
		HairType:    product.HairType,
		Color:       product.Color,
		ImageUrls:   make([]string, 0, len(product.Images)),
		Reviews:     make([]dto.ReviewItem, 0, len(product.Reviews)),
	}

	for _, img := range product.Images {
		detail.ImageUrls = append(detail.ImageUrls, img.URL)
	}
	detail.AffiliateLinks = make([]dto.AffiliateLinkItem, 0, len(product.AffiliateLinks))
	for _, link := range product.AffiliateLinks {
		detail.AffiliateLinks = append(detail.AffiliateLinks, dto.AffiliateLinkItem{
			Label:    link.Label,
			URL:      link.URL,
			Provider: link.Provider,
		})
	}
	if product.Vendor != nil {
		detail.Vendor = &dto.VendorProfileInfo{
			ID:                 product.Vendor.ID,
			StoreName:          product.Vendor.StoreName,
			Website:            product.Vendor.Website,
			VerificationStatus: string(product.Vendor.VerificationStatus),
		}
	}
	for i := range product.Reviews {
		detail.Reviews = append(detail.Reviews, toReviewItem(&product.Reviews[i]))
	}

	return detail, nil
}

// ==================== 辅助方法 ====================

// toProductItem 转换为列表 DTO
func (s *ProductService) toProductItem(p *model.Product) dto.ProductItem {
	item := dto.ProductItem{
		ID:           p.ID,
		Slug:         p.Slug,
		Name:         p.Name,
		Category:     p.Category,
		LaceType:     p.LaceType,
		CurlPattern:  p.CurlPattern,
		PriceCents:   p.PriceCents,
		PriceDisplay: utils.FormatCents(p.PriceCents),
		FastShipping: p.FastShipping,
		Rating:       p.Rating,
		ReviewCount:  p.ReviewCount,
		CreatedAt:    p.CreatedAt,
	}
	if len(p.Images) > 0 {
		item.ImageURL = p.Images[0].URL
	}
	return item
}

// ==================== 错误定义 ====================

var (
	ErrInvalidProduct  = errors.New("Invalid product fields")
	ErrProductNotFound = errors.New("商品不存在")
)
