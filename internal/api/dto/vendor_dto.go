package dto

import "time"

// OnboardRequest 卖家入驻请求
type OnboardRequest struct {
	StoreName string `json:"storeName"`
	Website   string `json:"website"`
	Bio       string `json:"bio"`
}

// OnboardResponse 卖家入驻响应
type OnboardResponse struct {
	OK     bool               `json:"ok"`
	Vendor *VendorProfileInfo `json:"vendor"`
}

// VendorProfileInfo 卖家档案信息
type VendorProfileInfo struct {
	ID                 int64  `json:"id"`
	StoreName          string `json:"storeName"`
	Website            string `json:"website,omitempty"`
	Bio                string `json:"bio,omitempty"`
	VerificationStatus string `json:"verificationStatus"`
}

// ApplyRequest 认证申请请求
type ApplyRequest struct {
	Notes        string   `json:"notes"`
	DocImageUrls []string `json:"docImageUrls"`
}

// ApplyResponse 认证申请响应
type ApplyResponse struct {
	OK        bool  `json:"ok"`
	RequestID int64 `json:"requestId"`
}

// DecideRequest 管理员终审请求
type DecideRequest struct {
	VendorID   int64  `json:"vendorId"`
	Decision   string `json:"decision"` // APPROVED | DENIED
	AdminNotes string `json:"adminNotes"`
}

// PendingVerification 待审核队列条目
type PendingVerification struct {
	ID           int64            `json:"id"`
	Status       string           `json:"status"`
	Notes        string           `json:"notes,omitempty"`
	AdminNotes   string           `json:"adminNotes,omitempty"`
	DocImageUrls []string         `json:"docImageUrls"`
	CreatedAt    time.Time        `json:"createdAt"`
	Vendor       *PendingVendor   `json:"vendor"`
}

// PendingVendor 待审核条目里的卖家摘要
type PendingVendor struct {
	ID        int64              `json:"id"`
	StoreName string             `json:"storeName"`
	Website   string             `json:"website,omitempty"`
	User      *PendingVendorUser `json:"user"`
}

// PendingVendorUser 待审核条目里的用户身份摘要
type PendingVendorUser struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// PendingListResponse 待审核队列响应
type PendingListResponse struct {
	Pending []PendingVerification `json:"pending"`
}
