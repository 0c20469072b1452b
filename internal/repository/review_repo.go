package repository

import (
	"context"

	"gorm.io/gorm"

	"lacelink_dev_v1_202608/internal/model"
)

// ==================== ReviewRepository 评价仓库 ====================

// ReviewRepository 评价仓库接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
}

// ==================== 实现 ====================

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create 创建评价（连带照片子表）
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListByProductID 商品的评价列表，新的在前
func (r *reviewRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Preload("Photos").
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}
