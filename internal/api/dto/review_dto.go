package dto

import "time"

// CreateReviewRequest 评价创建请求
type CreateReviewRequest struct {
	ProductID int64    `json:"productId"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	PhotoUrls []string `json:"photoUrls"`
}

// CreateReviewResponse 评价创建响应
type CreateReviewResponse struct {
	OK       bool  `json:"ok"`
	ReviewID int64 `json:"reviewId"`
}

// ReviewItem 评价条目
type ReviewItem struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	PhotoUrls []string  `json:"photoUrls"`
	UserName  string    `json:"userName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
