package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
)

// ==================== VerificationRepairTask 认证状态修复任务 ====================

// VerificationRepairTask 认证状态一致性修复
// 档案上的 verification_status 是申请行 status 的镜像，
// 正常写路径会同步两边；这里兜底扫一遍，把漂移的档案拉回来
type VerificationRepairTask struct {
	VendorRepo repository.VendorRepository
	Cron       *cron.Cron
}

// NewVerificationRepairTask 创建修复任务
func NewVerificationRepairTask(vendorRepo repository.VendorRepository) *VerificationRepairTask {
	return &VerificationRepairTask{
		VendorRepo: vendorRepo,
		Cron:       cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *VerificationRepairTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次认证状态一致性检查...")
		t.RepairOnce(ctx)
	}()

	// 定时策略
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.RepairOnce(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动认证状态修复任务: %v", err)
	}

	t.Cron.Start()
	log.Println("认证状态修复任务已启动 (每10分钟检查一次)")
}

// Stop 停止定时任务
func (t *VerificationRepairTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

// RepairOnce 扫描全部档案，修复状态漂移
// 期望值：有申请时等于申请行的 status，没有申请时为 UNVERIFIED
func (t *VerificationRepairTask) RepairOnce(ctx context.Context) {
	profiles, err := t.VendorRepo.ListProfilesWithRequest(ctx)
	if err != nil {
		log.Printf("[Cron] 卖家档案扫描失败: %v", err)
		return
	}

	repaired := 0
	for i := range profiles {
		select {
		case <-ctx.Done():
			log.Println("[Cron] 修复任务超时停止")
			return
		default:
		}

		profile := &profiles[i]

		expected := model.VerificationUnverified
		if profile.Request != nil {
			expected = profile.Request.Status
		}
		if profile.VerificationStatus == expected {
			continue
		}

		if err := t.VendorRepo.UpdateProfileVerificationStatus(ctx, profile.ID, expected); err != nil {
			log.Printf("[Cron] 档案 [%d] 状态修复失败: %v", profile.ID, err)
			continue
		}
		log.Printf("[Cron] 档案 [%d] 状态漂移已修复: %s -> %s", profile.ID, profile.VerificationStatus, expected)
		repaired++
	}

	if repaired > 0 {
		log.Printf("[Cron] 本轮认证状态修复完成，共修复 %d 条", repaired)
	}
}
