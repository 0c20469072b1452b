package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lacelink_dev_v1_202608/internal/model"
)

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓库接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	RecalcRating(ctx context.Context, productID int64) error
}

// ProductFilter 商品筛选条件
type ProductFilter struct {
	Category     string
	LaceType     string
	CurlPattern  string
	FastShipping *bool // nil 表示不筛选
	Keyword      string
	Sort         string // newest | price_asc | price_desc
	Page         int
	PageSize     int
}

// ==================== 实现 ====================

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create 创建商品（连带图片和外链子表）
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID 商品详情，带图片/外链/评论
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("AffiliateLinks").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Photos").
		Preload("Reviews.User").
		Preload("Vendor").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetBySlug 根据 slug 获取商品
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// ExistsBySlug slug 是否已被占用
func (r *productRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// List 商品列表（筛选 + 搜索 + 排序 + 分页）
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.LaceType != "" {
		query = query.Where("lace_type = ?", filter.LaceType)
	}
	if filter.CurlPattern != "" {
		query = query.Where("curl_pattern = ?", filter.CurlPattern)
	}
	if filter.FastShipping != nil {
		query = query.Where("fast_shipping = ?", *filter.FastShipping)
	}
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序白名单，不接受任意列名
	switch filter.Sort {
	case "price_asc":
		query = query.Order("price_cents ASC")
	case "price_desc":
		query = query.Order("price_cents DESC")
	default: // newest
		query = query.Order("created_at DESC, id DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var products []model.Product
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	return products, total, err
}

// RecalcRating 重算商品的评分聚合
func (r *productRepository) RecalcRating(ctx context.Context, productID int64) error {
	var stats struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       stats.Avg,
			"review_count": stats.Count,
		}).Error
}
