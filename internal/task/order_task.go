package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lacelink_dev_v1_202608/internal/repository"
)

// ==================== OrderExpireTask 订单过期任务 ====================

// 超过这个时长还没付款的订单视为放弃
const pendingOrderTTL = 24 * time.Hour

// OrderExpireTask 过期未支付订单清理
// 处理器那边的会话早就失效了，把本地 pending 订单标成 expired，
// 免得统计和回调匹配时被僵尸订单干扰
type OrderExpireTask struct {
	OrderRepo repository.OrderRepository
	Cron      *cron.Cron
}

// NewOrderExpireTask 创建订单过期任务
func NewOrderExpireTask(orderRepo repository.OrderRepository) *OrderExpireTask {
	return &OrderExpireTask{
		OrderRepo: orderRepo,
		Cron:      cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *OrderExpireTask) Start() {
	// 每小时清理一次
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		t.expireJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动订单过期任务: %v", err)
	}

	t.Cron.Start()
	log.Println("订单过期清理任务已启动 (每小时执行一次)")
}

// Stop 停止定时任务
func (t *OrderExpireTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

// expireJob 过期清理逻辑
func (t *OrderExpireTask) expireJob(ctx context.Context) {
	cutoff := time.Now().Add(-pendingOrderTTL)

	n, err := t.OrderRepo.ExpireStalePending(ctx, cutoff)
	if err != nil {
		log.Printf("[Cron] 订单过期清理失败: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[Cron] 本轮订单过期清理完成，共标记 %d 条", n)
	}
}
