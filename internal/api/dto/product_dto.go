package dto

import "time"

// CreateProductRequest 商品创建请求
type CreateProductRequest struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	LaceType       string              `json:"laceType"`
	CurlPattern    string              `json:"curlPattern"`
	HairType       string              `json:"hairType"`
	Color          string              `json:"color"`
	PriceCents     int64               `json:"priceCents"`
	FastShipping   bool                `json:"fastShipping"`
	ImageUrls      []string            `json:"imageUrls"`
	AffiliateLinks []AffiliateLinkItem `json:"affiliateLinks"`
}

// AffiliateLinkItem 站外链接
type AffiliateLinkItem struct {
	Label    string `json:"label"`
	URL      string `json:"url"`
	Provider string `json:"provider,omitempty"`
}

// CreateProductResponse 商品创建响应
type CreateProductResponse struct {
	OK        bool  `json:"ok"`
	ProductID int64 `json:"productId"`
}

// ProductListRequest 商品列表查询参数
type ProductListRequest struct {
	Category     string `form:"category"`
	LaceType     string `form:"laceType"`
	CurlPattern  string `form:"curlPattern"`
	FastShipping string `form:"fastShipping"` // "true" / "false" / 空
	Keyword      string `form:"keyword"`
	Sort         string `form:"sort"` // newest | price_asc | price_desc
	Page         int    `form:"page,default=1"`
	PageSize     int    `form:"pageSize,default=20"`
}

// ProductItem 商品列表条目
type ProductItem struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	LaceType     string    `json:"laceType,omitempty"`
	CurlPattern  string    `json:"curlPattern,omitempty"`
	PriceCents   int64     `json:"priceCents"`
	PriceDisplay string    `json:"priceDisplay"` // "$299.00"
	FastShipping bool      `json:"fastShipping"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"reviewCount"`
	ImageURL     string    `json:"imageUrl,omitempty"` // 首图
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductListResponse 商品列表响应
type ProductListResponse struct {
	Products []ProductItem `json:"products"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// ProductDetail 商品详情
type ProductDetail struct {
	ProductItem
	Description    string              `json:"description,omitempty"`
	HairType       string              `json:"hairType,omitempty"`
	Color          string              `json:"color,omitempty"`
	ImageUrls      []string            `json:"imageUrls"`
	AffiliateLinks []AffiliateLinkItem `json:"affiliateLinks"`
	Vendor         *VendorProfileInfo  `json:"vendor,omitempty"`
	Reviews        []ReviewItem        `json:"reviews"`
}
