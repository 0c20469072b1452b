package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lacelink_dev_v1_202608/internal/model"
)

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByRef(ctx context.Context, orderRef string) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	MarkPaid(ctx context.Context, orderRef string, rawWebhook []byte) error
	ExpireStalePending(ctx context.Context, olderThan time.Time) (int64, error)
}

// ==================== 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create 创建订单
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByRef 根据引用号获取订单
func (r *orderRepository) GetByRef(ctx context.Context, orderRef string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Where("order_ref = ?", orderRef).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// Update 更新订单
func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// MarkPaid 支付回调确认
// 只允许 pending -> paid，重复回调落在 RowsAffected == 0 上直接忽略
func (r *orderRepository) MarkPaid(ctx context.Context, orderRef string, rawWebhook []byte) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("order_ref = ? AND status = ?", orderRef, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":      model.OrderStatusPaid,
			"is_paid":     true,
			"paid_at":     &now,
			"raw_webhook": rawWebhook,
		})
	return res.Error
}

// ExpireStalePending 超时未支付的订单置为 expired（定时任务调用）
func (r *orderRepository) ExpireStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("status = ? AND created_at < ?", model.OrderStatusPending, olderThan).
		Update("status", model.OrderStatusExpired)
	return res.RowsAffected, res.Error
}
