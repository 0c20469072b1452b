package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ==================== 审核状态常量 ====================

// VerificationStatus 卖家认证状态
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "UNVERIFIED" // 初始状态，未提交过申请
	VerificationPending    VerificationStatus = "PENDING"    // 已提交，等待审核
	VerificationApproved   VerificationStatus = "APPROVED"   // 审核通过
	VerificationDenied     VerificationStatus = "DENIED"     // 审核拒绝（可重新申请）
)

// IsDecision 是否是管理员可以下达的终审值
// PENDING 不是合法的审核决定，只能由卖家重新提交触发
func (s VerificationStatus) IsDecision() bool {
	switch s {
	case VerificationApproved, VerificationDenied:
		return true
	default:
		return false
	}
}

// ==================== JSON 类型 ====================

// StringSlice 字符串切片（JSON 存储，postgres/sqlite 通用）
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("StringSlice: unsupported scan type")
	}
}

// ==================== VendorProfile 卖家档案 ====================

// VendorProfile 卖家对外的店铺身份，和 User 1:1
type VendorProfile struct {
	BaseModel
	UserID int64 `gorm:"uniqueIndex;not null"`
	User   *User `gorm:"foreignKey:UserID"`

	StoreName string `gorm:"size:255;not null"`
	Website   string `gorm:"size:512"`
	Bio       string `gorm:"type:text"`

	// 信任标记，前台展示 "Verified" 徽章
	// 不变量：必须等于最近一次 VerificationRequest 的状态，没有申请时为 UNVERIFIED
	VerificationStatus VerificationStatus `gorm:"size:20;index;not null;default:'UNVERIFIED'"`

	// 关联关系
	Request  *VerificationRequest `gorm:"foreignKey:VendorID"`
	Products []Product            `gorm:"foreignKey:VendorID"`
}

func (VendorProfile) TableName() string {
	return "vendor_profiles"
}

// ==================== VerificationRequest 认证申请 ====================

// VerificationRequest 卖家认证申请
// vendor_id 唯一索引保证每个卖家只有一行：重新提交走 upsert 覆盖，
// 行永远不删除，拒绝后卖家可以再次申请回到 PENDING
type VerificationRequest struct {
	BaseModel
	VendorID int64          `gorm:"uniqueIndex;not null"`
	Vendor   *VendorProfile `gorm:"foreignKey:VendorID"`

	Status VerificationStatus `gorm:"size:20;index;not null;default:'PENDING'"`

	// 卖家自述 + 管理员备注，审核后都保留（作为审核依据的留痕）
	Notes      string `gorm:"type:text"`
	AdminNotes string `gorm:"type:text"`

	// 认证材料（已上传文件的 URL 列表）
	DocImageUrls StringSlice `gorm:"type:json"`
}

func (VerificationRequest) TableName() string {
	return "verification_requests"
}
