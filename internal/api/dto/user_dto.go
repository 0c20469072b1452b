package dto

import "time"

// SignupRequest 注册请求
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// SignupResponse 注册响应
type SignupResponse struct {
	OK     bool  `json:"ok"`
	UserID int64 `json:"userId"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	OK           bool      `json:"ok"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         *UserInfo `json:"user"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenResponse 刷新 Token 响应
type RefreshTokenResponse struct {
	OK           bool      `json:"ok"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	// 有卖家档案时附带认证状态，前端据此渲染徽章
	VendorProfile *VendorProfileInfo `json:"vendorProfile,omitempty"`
}
