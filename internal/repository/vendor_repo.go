package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lacelink_dev_v1_202608/internal/model"
)

// ==================== VendorRepository 卖家仓库 ====================

// VendorRepository 卖家档案 + 认证申请仓库接口
// 认证工作流引擎只通过这层接口访问存储
type VendorRepository interface {
	// 档案
	GetProfileByID(ctx context.Context, id int64) (*model.VendorProfile, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*model.VendorProfile, error)
	UpsertProfile(ctx context.Context, userID int64, storeName, website, bio string) (*model.VendorProfile, error)
	UpdateProfileVerificationStatus(ctx context.Context, vendorID int64, status model.VerificationStatus) error
	ListProfilesWithRequest(ctx context.Context) ([]model.VendorProfile, error)

	// 认证申请
	GetRequestByVendorID(ctx context.Context, vendorID int64) (*model.VerificationRequest, error)
	UpsertVerificationRequest(ctx context.Context, vendorID int64, notes string, docImageUrls []string) (*model.VerificationRequest, error)
	UpdateVerificationDecision(ctx context.Context, vendorID int64, status model.VerificationStatus, adminNotes string) error
	ListPendingRequests(ctx context.Context) ([]model.VerificationRequest, error)
}

// ==================== 实现 ====================

type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository 创建卖家仓库
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// GetProfileByID 根据档案 ID 获取卖家档案
func (r *vendorRepository) GetProfileByID(ctx context.Context, id int64) (*model.VendorProfile, error) {
	var profile model.VendorProfile
	err := r.db.WithContext(ctx).First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

// GetProfileByUserID 根据用户 ID 获取卖家档案
func (r *vendorRepository) GetProfileByUserID(ctx context.Context, userID int64) (*model.VendorProfile, error) {
	var profile model.VendorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

// UpsertProfile 创建或更新卖家档案（user_id 唯一键）
// 首次创建时认证状态为 UNVERIFIED，更新时不触碰认证状态
func (r *vendorRepository) UpsertProfile(ctx context.Context, userID int64, storeName, website, bio string) (*model.VendorProfile, error) {
	profile := &model.VendorProfile{
		UserID:             userID,
		StoreName:          storeName,
		Website:            website,
		Bio:                bio,
		VerificationStatus: model.VerificationUnverified,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"store_name", "website", "bio", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return nil, err
	}

	// 冲突更新时 Create 不回填已有行，重新读一遍拿到真实 ID 和状态
	return r.GetProfileByUserID(ctx, userID)
}

// UpdateProfileVerificationStatus 同步档案上的信任标记
func (r *vendorRepository) UpdateProfileVerificationStatus(ctx context.Context, vendorID int64, status model.VerificationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.VendorProfile{}).
		Where("id = ?", vendorID).
		Update("verification_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListProfilesWithRequest 全量档案 + 对应申请（状态修复任务用）
func (r *vendorRepository) ListProfilesWithRequest(ctx context.Context) ([]model.VendorProfile, error) {
	var profiles []model.VendorProfile
	err := r.db.WithContext(ctx).
		Preload("Request").
		Find(&profiles).Error
	return profiles, err
}

// GetRequestByVendorID 获取卖家当前的认证申请
func (r *vendorRepository) GetRequestByVendorID(ctx context.Context, vendorID int64) (*model.VerificationRequest, error) {
	var req model.VerificationRequest
	err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &req, err
}

// UpsertVerificationRequest 提交/重新提交认证申请
// vendor_id 唯一键保证每个卖家只有一行；重新提交重置状态为 PENDING
// 并覆盖自述和材料，但保留 created_at（排队位置按首次提交算）
func (r *vendorRepository) UpsertVerificationRequest(ctx context.Context, vendorID int64, notes string, docImageUrls []string) (*model.VerificationRequest, error) {
	if docImageUrls == nil {
		docImageUrls = []string{}
	}
	req := &model.VerificationRequest{
		VendorID:     vendorID,
		Status:       model.VerificationPending,
		Notes:        notes,
		DocImageUrls: docImageUrls,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "vendor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "notes", "doc_image_urls", "updated_at",
		}),
	}).Create(req).Error
	if err != nil {
		return nil, err
	}

	return r.GetRequestByVendorID(ctx, vendorID)
}

// UpdateVerificationDecision 写入管理员终审
// 申请不存在时返回 gorm.ErrRecordNotFound，由上层翻译
func (r *vendorRepository) UpdateVerificationDecision(ctx context.Context, vendorID int64, status model.VerificationStatus, adminNotes string) error {
	res := r.db.WithContext(ctx).
		Model(&model.VerificationRequest{}).
		Where("vendor_id = ?", vendorID).
		Updates(map[string]interface{}{
			"status":      status,
			"admin_notes": adminNotes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPendingRequests 待审核队列
// 先进先出：按提交时间升序，同一时刻按 ID 保证顺序稳定
func (r *vendorRepository) ListPendingRequests(ctx context.Context) ([]model.VerificationRequest, error) {
	var reqs []model.VerificationRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", model.VerificationPending).
		Preload("Vendor").
		Preload("Vendor.User").
		Order("created_at ASC, id ASC").
		Find(&reqs).Error
	return reqs, err
}
