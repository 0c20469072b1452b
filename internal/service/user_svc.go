package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/middleware"
	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
)

// bcrypt 成本，对齐老系统注册逻辑
const passwordHashCost = 12

// ==================== UserService 用户服务 ====================

// UserService 注册/登录/身份
type UserService struct {
	userRepo repository.UserRepository

	// 命中该邮箱的注册直接授予 ADMIN（环境配置，见 pkg/config）
	adminEmail string
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, adminEmail string) *UserService {
	return &UserService{
		userRepo:   userRepo,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
	}
}

// ==================== 注册 / 登录 ====================

// Signup 注册
// 邮箱统一小写去空白存储；密码至少 8 位
func (s *UserService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 8 {
		return nil, ErrWeakCredentials
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return nil, err
	}

	role := model.UserRoleCustomer
	if s.adminEmail != "" && s.adminEmail == email {
		role = model.UserRoleAdmin
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(req.Name),
		Username:     strings.TrimSpace(req.Username),
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.SignupResponse{OK: true, UserID: user.ID}, nil
}

// Login 登录
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmailWithProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		OK:           true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         s.toUserInfo(user),
	}, nil
}

// RefreshToken 刷新 Token
func (s *UserService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 确认用户仍然有效，角色以库里的为准（可能刚被提升为 VENDOR）
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserDisabled
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		OK:           true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// Me 当前用户信息
func (s *UserService) Me(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 带上卖家档案（徽章渲染用）
	full, err := s.userRepo.GetByEmailWithProfile(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	return s.toUserInfo(full), nil
}

// ==================== 辅助方法 ====================

// toUserInfo 转换为 DTO
func (s *UserService) toUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Username: user.Username,
		Role:     string(user.Role),
	}
	if user.VendorProfile != nil {
		info.VendorProfile = &dto.VendorProfileInfo{
			ID:                 user.VendorProfile.ID,
			StoreName:          user.VendorProfile.StoreName,
			Website:            user.VendorProfile.Website,
			VerificationStatus: string(user.VendorProfile.VerificationStatus),
		}
	}
	return info
}

// ==================== 错误定义 ====================

var (
	ErrWeakCredentials    = errors.New("Email and password (8+ chars) required.")
	ErrEmailExists        = errors.New("Email already in use.")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserDisabled       = errors.New("用户已禁用")
	ErrInvalidToken       = errors.New("Token 无效")
)
