package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
)

// ==================== VendorService 卖家服务 ====================

// VendorService 卖家入驻 + 认证工作流引擎
//
// 认证状态机（每个卖家档案一份）：
//
//	UNVERIFIED -> PENDING -> APPROVED / DENIED
//
// 终审后卖家可以重新提交，从 APPROVED/DENIED 回到 PENDING。
// 每次状态迁移都要保证：档案上的 verification_status 等于
// 申请行的 status（没有申请时为 UNVERIFIED）
type VendorService struct {
	userRepo   repository.UserRepository
	vendorRepo repository.VendorRepository
}

// NewVendorService 创建卖家服务
func NewVendorService(userRepo repository.UserRepository, vendorRepo repository.VendorRepository) *VendorService {
	return &VendorService{
		userRepo:   userRepo,
		vendorRepo: vendorRepo,
	}
}

// ==================== 入驻 ====================

// Onboard 卖家入驻
// 幂等：重复调用只更新档案字段；CUSTOMER 升为 VENDOR，ADMIN 永不降级
func (s *VendorService) Onboard(ctx context.Context, userID int64, req *dto.OnboardRequest) (*model.VendorProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	storeName := strings.TrimSpace(req.StoreName)
	if storeName == "" {
		return nil, ErrStoreNameRequired
	}

	if user.Role == model.UserRoleCustomer {
		if err := s.userRepo.UpdateRole(ctx, userID, model.UserRoleVendor); err != nil {
			return nil, err
		}
	}

	return s.vendorRepo.UpsertProfile(ctx, userID,
		storeName,
		strings.TrimSpace(req.Website),
		strings.TrimSpace(req.Bio),
	)
}

// ==================== 认证状态机 ====================

// Apply 提交/重新提交认证申请（任意状态下都允许）
// 前置条件：角色是 VENDOR 或 ADMIN，且调用者自己有卖家档案——
// 只能为自己的档案提交，vendorID 一律取自调用者身份，不从请求体读
func (s *VendorService) Apply(ctx context.Context, userID int64, req *dto.ApplyRequest) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil || !user.Role.CanSell() {
		return 0, ErrNotVendor
	}

	profile, err := s.vendorRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, ErrNotVendor
	}

	// 空串材料过滤掉，自述去掉首尾空白
	urls := make([]string, 0, len(req.DocImageUrls))
	for _, u := range req.DocImageUrls {
		if strings.TrimSpace(u) != "" {
			urls = append(urls, u)
		}
	}

	request, err := s.vendorRepo.UpsertVerificationRequest(ctx, profile.ID, strings.TrimSpace(req.Notes), urls)
	if err != nil {
		return 0, err
	}

	// 镜像写档案状态。写不进去必须整体报错，
	// 不能留下 "申请 PENDING、档案还是旧状态" 的脏组合
	if err := s.vendorRepo.UpdateProfileVerificationStatus(ctx, profile.ID, model.VerificationPending); err != nil {
		return 0, fmt.Errorf("同步卖家认证状态失败: %w", err)
	}

	return request.ID, nil
}

// Decide 管理员终审
// decision 只接受 APPROVED / DENIED，PENDING 不是合法终审值；
// 卖家自述和认证材料保留不清空，作为审核留痕
func (s *VendorService) Decide(ctx context.Context, vendorID int64, decision string, adminNotes string) error {
	status := model.VerificationStatus(decision)
	if !status.IsDecision() {
		return ErrInvalidDecision
	}
	if vendorID <= 0 {
		return ErrVendorNotFound
	}

	err := s.vendorRepo.UpdateVerificationDecision(ctx, vendorID, status, strings.TrimSpace(adminNotes))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}

	if err := s.vendorRepo.UpdateProfileVerificationStatus(ctx, vendorID, status); err != nil {
		return fmt.Errorf("同步卖家认证状态失败: %w", err)
	}

	return nil
}

// ListPending 待审核队列，先提交的排前面
func (s *VendorService) ListPending(ctx context.Context) ([]dto.PendingVerification, error) {
	reqs, err := s.vendorRepo.ListPendingRequests(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]dto.PendingVerification, 0, len(reqs))
	for i := range reqs {
		list = append(list, s.toPendingItem(&reqs[i]))
	}
	return list, nil
}

// ==================== 辅助方法 ====================

// toPendingItem 转换为 DTO
func (s *VendorService) toPendingItem(req *model.VerificationRequest) dto.PendingVerification {
	item := dto.PendingVerification{
		ID:           req.ID,
		Status:       string(req.Status),
		Notes:        req.Notes,
		AdminNotes:   req.AdminNotes,
		DocImageUrls: req.DocImageUrls,
		CreatedAt:    req.CreatedAt,
	}
	if item.DocImageUrls == nil {
		item.DocImageUrls = []string{}
	}

	if req.Vendor != nil {
		vendor := &dto.PendingVendor{
			ID:        req.Vendor.ID,
			StoreName: req.Vendor.StoreName,
			Website:   req.Vendor.Website,
		}
		if req.Vendor.User != nil {
			vendor.User = &dto.PendingVendorUser{
				Email: req.Vendor.User.Email,
				Name:  req.Vendor.User.Name,
			}
		}
		item.Vendor = vendor
	}
	return item
}

// ToProfileInfo 档案转 DTO
func (s *VendorService) ToProfileInfo(profile *model.VendorProfile) *dto.VendorProfileInfo {
	if profile == nil {
		return nil
	}
	return &dto.VendorProfileInfo{
		ID:                 profile.ID,
		StoreName:          profile.StoreName,
		Website:            profile.Website,
		Bio:                profile.Bio,
		VerificationStatus: string(profile.VerificationStatus),
	}
}

// ==================== 错误定义 ====================

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrStoreNameRequired = errors.New("storeName required")
	ErrNotVendor         = errors.New("Not a vendor")
	ErrInvalidDecision   = errors.New("decision 只能是 APPROVED 或 DENIED")
	ErrVendorNotFound    = errors.New("卖家不存在")
	ErrRequestNotFound   = errors.New("认证申请不存在")
)
