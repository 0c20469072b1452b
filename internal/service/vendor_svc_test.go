package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupVendorTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(&model.User{}, &model.VendorProfile{}, &model.VerificationRequest{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newVendorService(db *gorm.DB) *VendorService {
	return NewVendorService(
		repository.NewUserRepository(db),
		repository.NewVendorRepository(db),
	)
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// onboardVendor 入驻并返回档案
func onboardVendor(t *testing.T, svc *VendorService, userID int64, storeName string) *model.VendorProfile {
	profile, err := svc.Onboard(context.Background(), userID, &dto.OnboardRequest{StoreName: storeName})
	if err != nil {
		t.Fatalf("Onboard() error = %v", err)
	}
	return profile
}

// assertStatusPair 断言档案状态和申请状态的镜像关系
func assertStatusPair(t *testing.T, db *gorm.DB, vendorID int64, want model.VerificationStatus) {
	t.Helper()

	var profile model.VendorProfile
	if err := db.First(&profile, vendorID).Error; err != nil {
		t.Fatalf("读取档案失败: %v", err)
	}
	if profile.VerificationStatus != want {
		t.Errorf("profile.VerificationStatus = %s, want %s", profile.VerificationStatus, want)
	}

	var req model.VerificationRequest
	err := db.Where("vendor_id = ?", vendorID).First(&req).Error
	if want == model.VerificationUnverified {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("UNVERIFIED 状态下不应存在申请行")
		}
		return
	}
	if err != nil {
		t.Fatalf("读取申请失败: %v", err)
	}
	if req.Status != want {
		t.Errorf("request.Status = %s, want %s", req.Status, want)
	}
}

// ==================== 入驻测试 ====================

func TestVendorService_Onboard(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)

	profile, err := svc.Onboard(ctx, user.ID, &dto.OnboardRequest{
		StoreName: "Luxe Lace Studio",
		Website:   "https://luxelace.example.com",
		Bio:       "10 years of HD lace craft",
	})
	if err != nil {
		t.Fatalf("Onboard() error = %v", err)
	}

	if profile.StoreName != "Luxe Lace Studio" {
		t.Errorf("StoreName = %s", profile.StoreName)
	}
	if profile.VerificationStatus != model.VerificationUnverified {
		t.Errorf("初始状态 = %s, want UNVERIFIED", profile.VerificationStatus)
	}

	// CUSTOMER 入驻后升为 VENDOR
	var reloaded model.User
	db.First(&reloaded, user.ID)
	if reloaded.Role != model.UserRoleVendor {
		t.Errorf("Role = %s, want VENDOR", reloaded.Role)
	}
}

func TestVendorService_Onboard_StoreNameRequired(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)

	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)

	_, err := svc.Onboard(context.Background(), user.ID, &dto.OnboardRequest{StoreName: "   "})
	if !errors.Is(err, ErrStoreNameRequired) {
		t.Errorf("err = %v, want ErrStoreNameRequired", err)
	}
}

func TestVendorService_Onboard_Idempotent(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)

	first := onboardVendor(t, svc, user.ID, "Old Name")

	// 先审批通过，再重复入驻，认证状态不能被抹掉
	if _, err := svc.Apply(ctx, user.ID, &dto.ApplyRequest{}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if err := svc.Decide(ctx, first.ID, "APPROVED", ""); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}

	second, err := svc.Onboard(ctx, user.ID, &dto.OnboardRequest{StoreName: "New Name"})
	if err != nil {
		t.Fatalf("重复 Onboard() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("重复入驻应复用同一档案, got %d want %d", second.ID, first.ID)
	}
	if second.StoreName != "New Name" {
		t.Errorf("StoreName = %s, want New Name", second.StoreName)
	}
	if second.VerificationStatus != model.VerificationApproved {
		t.Errorf("重复入驻不应重置认证状态, got %s", second.VerificationStatus)
	}

	var count int64
	db.Model(&model.VendorProfile{}).Count(&count)
	if count != 1 {
		t.Errorf("档案行数 = %d, want 1", count)
	}
}

func TestVendorService_Onboard_AdminKeepsRole(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)

	admin := createTestUser(t, db, "admin@example.com", model.UserRoleAdmin)
	onboardVendor(t, svc, admin.ID, "Admin Store")

	var reloaded model.User
	db.First(&reloaded, admin.ID)
	if reloaded.Role != model.UserRoleAdmin {
		t.Errorf("ADMIN 入驻后 Role = %s, 不应降级", reloaded.Role)
	}
}

// ==================== 申请测试 ====================

func TestVendorService_Apply(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)
	profile := onboardVendor(t, svc, user.ID, "Luxe Lace Studio")

	requestID, err := svc.Apply(ctx, user.ID, &dto.ApplyRequest{
		Notes:        "  Established vendor since 2015  ",
		DocImageUrls: []string{"/uploads/doc1.jpg", "", "/uploads/doc2.jpg", "  "},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if requestID == 0 {
		t.Fatal("requestID 应该被分配")
	}

	assertStatusPair(t, db, profile.ID, model.VerificationPending)

	var req model.VerificationRequest
	db.First(&req, requestID)
	if req.Notes != "Established vendor since 2015" {
		t.Errorf("Notes = %q, 应去掉首尾空白", req.Notes)
	}
	if len(req.DocImageUrls) != 2 {
		t.Errorf("DocImageUrls = %v, 空串应被过滤", req.DocImageUrls)
	}
}

func TestVendorService_Apply_NotVendor(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	// 普通买家，没有档案也不是卖家角色
	customer := createTestUser(t, db, "buyer@example.com", model.UserRoleCustomer)
	if _, err := svc.Apply(ctx, customer.ID, &dto.ApplyRequest{}); !errors.Is(err, ErrNotVendor) {
		t.Errorf("买家申请 err = %v, want ErrNotVendor", err)
	}

	// 角色是 VENDOR 但没有档案（入驻流程没走完）
	vendor := createTestUser(t, db, "noprofile@example.com", model.UserRoleVendor)
	if _, err := svc.Apply(ctx, vendor.ID, &dto.ApplyRequest{}); !errors.Is(err, ErrNotVendor) {
		t.Errorf("无档案申请 err = %v, want ErrNotVendor", err)
	}
}

func TestVendorService_Apply_SingleRow(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)
	profile := onboardVendor(t, svc, user.ID, "Luxe Lace Studio")

	id1, err := svc.Apply(ctx, user.ID, &dto.ApplyRequest{Notes: "first"})
	if err != nil {
		t.Fatalf("第一次 Apply() error = %v", err)
	}
	id2, err := svc.Apply(ctx, user.ID, &dto.ApplyRequest{Notes: "second"})
	if err != nil {
		t.Fatalf("第二次 Apply() error = %v", err)
	}

	if id1 != id2 {
		t.Errorf("重复申请应复用同一行, got %d / %d", id1, id2)
	}

	var count int64
	db.Model(&model.VerificationRequest{}).Where("vendor_id = ?", profile.ID).Count(&count)
	if count != 1 {
		t.Errorf("申请行数 = %d, want 1", count)
	}

	var req model.VerificationRequest
	db.First(&req, id1)
	if req.Notes != "second" {
		t.Errorf("Notes = %s, 重复申请应覆盖自述", req.Notes)
	}
}

// ==================== 终审测试 ====================

func TestVendorService_Decide(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)
	profile := onboardVendor(t, svc, user.ID, "Luxe Lace Studio")
	if _, err := svc.Apply(ctx, user.ID, &dto.ApplyRequest{Notes: "please review"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if err := svc.Decide(ctx, profile.ID, "APPROVED", "docs look good"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}

	assertStatusPair(t, db, profile.ID, model.VerificationApproved)

	// 留痕字段都在
	var req model.VerificationRequest
	db.Where("vendor_id = ?", profile.ID).First(&req)
	if req.AdminNotes != "docs look good" {
		t.Errorf("AdminNotes = %s", req.AdminNotes)
	}
	if req.Notes != "please review" {
		t.Errorf("终审不应清空卖家自述, Notes = %s", req.Notes)
	}
}

func TestVendorService_Decide_InvalidDecision(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)
	profile := onboardVendor(t, svc, user.ID, "Luxe Lace Studio")
	svc.Apply(ctx, user.ID, &dto.ApplyRequest{})

	for _, decision := range []string{"PENDING", "UNVERIFIED", "approved", ""} {
		if err := svc.Decide(ctx, profile.ID, decision, ""); !errors.Is(err, ErrInvalidDecision) {
			t.Errorf("Decide(%q) err = %v, want ErrInvalidDecision", decision, err)
		}
	}

	// 非法终审值不应动任何状态
	assertStatusPair(t, db, profile.ID, model.VerificationPending)
}

func TestVendorService_Decide_RequestNotFound(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	// 档案存在但从未申请
	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)
	profile := onboardVendor(t, svc, user.ID, "Luxe Lace Studio")

	if err := svc.Decide(ctx, profile.ID, "APPROVED", ""); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("未申请终审 err = %v, want ErrRequestNotFound", err)
	}

	// 档案压根不存在
	if err := svc.Decide(ctx, 99999, "DENIED", ""); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("不存在的卖家终审 err = %v, want ErrRequestNotFound", err)
	}
}

// ==================== 重新提交测试 ====================

func TestVendorService_Resubmit(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com", model.UserRoleCustomer)
	profile := onboardVendor(t, svc, user.ID, "Luxe Lace Studio")

	// 提交 -> 拒绝
	svc.Apply(ctx, user.ID, &dto.ApplyRequest{Notes: "v1"})
	if err := svc.Decide(ctx, profile.ID, "DENIED", "blurry documents"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	assertStatusPair(t, db, profile.ID, model.VerificationDenied)

	var before model.VerificationRequest
	db.Where("vendor_id = ?", profile.ID).First(&before)

	// 重新提交，回到 PENDING
	if _, err := svc.Apply(ctx, user.ID, &dto.ApplyRequest{Notes: "v2, resubmitted"}); err != nil {
		t.Fatalf("重新提交 error = %v", err)
	}
	assertStatusPair(t, db, profile.ID, model.VerificationPending)

	var after model.VerificationRequest
	db.Where("vendor_id = ?", profile.ID).First(&after)

	if after.ID != before.ID {
		t.Errorf("重新提交应复用同一行")
	}
	if after.Notes != "v2, resubmitted" {
		t.Errorf("Notes = %s, 应被覆盖", after.Notes)
	}
	// 排队位置按首次提交算
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("created_at 不应被重新提交刷新: %v -> %v", before.CreatedAt, after.CreatedAt)
	}

	// 再审批通过也同样成立
	if err := svc.Decide(ctx, profile.ID, "APPROVED", "better now"); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	assertStatusPair(t, db, profile.ID, model.VerificationApproved)
}

// ==================== 待审核队列测试 ====================

func TestVendorService_ListPending(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)
	ctx := context.Background()

	// 三个卖家依次提交，人为拉开提交时间
	base := time.Now().Add(-time.Hour)
	var profiles []*model.VendorProfile
	for i := 0; i < 3; i++ {
		user := createTestUser(t, db, fmt.Sprintf("seller%d@example.com", i), model.UserRoleCustomer)
		profile := onboardVendor(t, svc, user.ID, fmt.Sprintf("Store %d", i))
		if _, err := svc.Apply(ctx, user.ID, &dto.ApplyRequest{}); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		db.Model(&model.VerificationRequest{}).
			Where("vendor_id = ?", profile.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute))
		profiles = append(profiles, profile)
	}

	// 第 0 个审批通过，不应再出现在队列里
	if err := svc.Decide(ctx, profiles[0].ID, "APPROVED", ""); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}

	pending, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}

	if len(pending) != 2 {
		t.Fatalf("队列长度 = %d, want 2", len(pending))
	}

	// 先提交的排前面
	if pending[0].Vendor == nil || pending[0].Vendor.StoreName != "Store 1" {
		t.Errorf("队首 = %+v, want Store 1", pending[0].Vendor)
	}
	if pending[1].Vendor.StoreName != "Store 2" {
		t.Errorf("队尾 = %+v, want Store 2", pending[1].Vendor)
	}

	// 审核页要渲染联系方式
	if pending[0].Vendor.User == nil || pending[0].Vendor.User.Email != "seller1@example.com" {
		t.Errorf("队列条目缺少卖家联系邮箱: %+v", pending[0].Vendor.User)
	}
	if pending[0].Status != string(model.VerificationPending) {
		t.Errorf("Status = %s, want PENDING", pending[0].Status)
	}
	if pending[0].DocImageUrls == nil {
		t.Errorf("DocImageUrls 应序列化为空数组而不是 null")
	}
}

func TestVendorService_ListPending_Empty(t *testing.T) {
	db := setupVendorTestDB(t)
	svc := newVendorService(db)

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("空库队列长度 = %d", len(pending))
	}
}
