package task

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{}, &model.VendorProfile{}, &model.VerificationRequest{},
		&model.Order{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, email string, status model.VerificationStatus) *model.VendorProfile {
	user := &model.User{Email: email, PasswordHash: "x", Role: model.UserRoleVendor, IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	profile := &model.VendorProfile{UserID: user.ID, StoreName: "S", VerificationStatus: status}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("创建档案失败: %v", err)
	}
	return profile
}

// ==================== 认证状态修复测试 ====================

func TestVerificationRepairTask_RepairOnce(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewVendorRepository(db)
	ctx := context.Background()

	// 漂移场景 1：申请是 PENDING，档案却被写成了 APPROVED
	drifted := seedProfile(t, db, "drift@example.com", model.VerificationApproved)
	db.Create(&model.VerificationRequest{VendorID: drifted.ID, Status: model.VerificationPending})

	// 漂移场景 2：没有申请，档案却不是 UNVERIFIED
	orphan := seedProfile(t, db, "orphan@example.com", model.VerificationDenied)

	// 一致场景：不该被动
	clean := seedProfile(t, db, "clean@example.com", model.VerificationApproved)
	db.Create(&model.VerificationRequest{VendorID: clean.ID, Status: model.VerificationApproved})

	task := NewVerificationRepairTask(repo)
	task.RepairOnce(ctx)

	var p model.VendorProfile
	db.First(&p, drifted.ID)
	if p.VerificationStatus != model.VerificationPending {
		t.Errorf("漂移档案修复后 = %s, want PENDING", p.VerificationStatus)
	}

	p = model.VendorProfile{}
	db.First(&p, orphan.ID)
	if p.VerificationStatus != model.VerificationUnverified {
		t.Errorf("无申请档案修复后 = %s, want UNVERIFIED", p.VerificationStatus)
	}

	p = model.VendorProfile{}
	db.First(&p, clean.ID)
	if p.VerificationStatus != model.VerificationApproved {
		t.Errorf("一致档案被误改 = %s", p.VerificationStatus)
	}

	// 幂等：再跑一轮不应有任何变化
	task.RepairOnce(ctx)
	p = model.VendorProfile{}
	db.First(&p, drifted.ID)
	if p.VerificationStatus != model.VerificationPending {
		t.Errorf("第二轮修复后 = %s", p.VerificationStatus)
	}
}

// ==================== 订单过期测试 ====================

func TestOrderExpireTask_ExpireJob(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	stale := &model.Order{OrderRef: "ref-stale", ProductID: 1, AmountCents: 100, Currency: "USD", Status: model.OrderStatusPending}
	fresh := &model.Order{OrderRef: "ref-fresh", ProductID: 1, AmountCents: 100, Currency: "USD", Status: model.OrderStatusPending}
	paid := &model.Order{OrderRef: "ref-paid", ProductID: 1, AmountCents: 100, Currency: "USD", Status: model.OrderStatusPaid}
	for _, o := range []*model.Order{stale, fresh, paid} {
		if err := db.Create(o).Error; err != nil {
			t.Fatalf("创建订单失败: %v", err)
		}
	}
	// 把 stale 和 paid 的下单时间拨回两天前
	old := time.Now().Add(-48 * time.Hour)
	db.Model(&model.Order{}).Where("order_ref IN ?", []string{"ref-stale", "ref-paid"}).Update("created_at", old)

	task := NewOrderExpireTask(repo)
	task.expireJob(ctx)

	var o model.Order
	db.Where("order_ref = ?", "ref-stale").First(&o)
	if o.Status != model.OrderStatusExpired {
		t.Errorf("超时订单 = %s, want expired", o.Status)
	}

	o = model.Order{}
	db.Where("order_ref = ?", "ref-fresh").First(&o)
	if o.Status != model.OrderStatusPending {
		t.Errorf("新订单 = %s, 不应被过期", o.Status)
	}

	o = model.Order{}
	db.Where("order_ref = ?", "ref-paid").First(&o)
	if o.Status != model.OrderStatusPaid {
		t.Errorf("已支付订单 = %s, 不应被过期", o.Status)
	}
}
