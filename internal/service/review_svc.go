package service

import (
	"context"
	"errors"
	"strings"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
)

// ==================== ReviewService 评价服务 ====================

// ReviewService 商品评价
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// CreateReview 创建评价
// 评分只收整数 1-5；照片空串过滤；落库后重算商品的评分聚合
func (s *ReviewService) CreateReview(ctx context.Context, userID int64, req *dto.CreateReviewRequest) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	if req.ProductID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return 0, ErrInvalidReview
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, ErrProductNotFound
	}

	review := &model.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	for _, url := range req.PhotoUrls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		review.Photos = append(review.Photos, model.ReviewPhoto{URL: url})
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return 0, err
	}

	// 聚合字段只是展示缓存，重算失败不影响评价本身
	_ = s.productRepo.RecalcRating(ctx, req.ProductID)

	return review.ID, nil
}

// toReviewItem 转换为 DTO
func toReviewItem(r *model.Review) dto.ReviewItem {
	item := dto.ReviewItem{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		PhotoUrls: make([]string, 0, len(r.Photos)),
		CreatedAt: r.CreatedAt,
	}
	for _, p := range r.Photos {
		item.PhotoUrls = append(item.PhotoUrls, p.URL)
	}
	if r.User != nil {
		item.UserName = r.User.Name
	}
	return item
}

// ==================== 错误定义 ====================

var (
	ErrInvalidReview = errors.New("Invalid review")
)
