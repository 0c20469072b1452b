package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

const (
	OrderStatusPending  = "pending"  // 已创建，等待支付
	OrderStatusPaid     = "paid"     // 支付回调确认
	OrderStatusCanceled = "canceled" // 用户取消
	OrderStatusExpired  = "expired"  // 超时未支付，定时任务清理
)

// ==================== Order 订单 ====================

// Order 结算订单
// 支付本身交给外部处理器托管页面完成，这里只记录一次 handoff 的前后状态
type Order struct {
	BaseModel
	// 对外引用号（uuid），回调里用它定位订单
	OrderRef string `gorm:"size:64;uniqueIndex;not null"`

	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"foreignKey:ProductID"`

	// 买家（允许未登录结算，此时为 0/空）
	BuyerUserID int64  `gorm:"index"`
	BuyerEmail  string `gorm:"size:255"`

	// 金额（分为单位）
	AmountCents int64  `gorm:"not null"`
	Currency    string `gorm:"size:5;default:'USD'"`

	Status string `gorm:"size:32;index;default:'pending'"`
	IsPaid bool   `gorm:"default:false"`
	PaidAt *time.Time

	// 处理器侧会话
	ProviderSessionID string `gorm:"size:255"`

	// 回调原始报文（排查对账问题用）
	RawWebhook datatypes.JSON `gorm:"type:json"`
}

func (Order) TableName() string {
	return "orders"
}
