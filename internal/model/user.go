package model

// ==================== 角色常量 ====================

// UserRole 系统角色
// 注意：这是站点级角色，不要和店铺内的身份混淆
// 角色只能由注册（ADMIN_EMAIL 匹配）或 onboard 流程修改，用户自己无法改
type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER" // 普通买家
	UserRoleVendor   UserRole = "VENDOR"   // 卖家
	UserRoleAdmin    UserRole = "ADMIN"    // 管理员
)

// Valid 角色枚举校验
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCustomer, UserRoleVendor, UserRoleAdmin:
		return true
	}
	return false
}

// CanSell 是否具有卖家权限（ADMIN 隐含卖家权限）
func (r UserRole) CanSell() bool {
	switch r {
	case UserRoleVendor, UserRoleAdmin:
		return true
	default:
		return false
	}
}

// ==================== User 用户 ====================

// User 站点用户
type User struct {
	BaseModel
	// 基础信息
	Email        string `gorm:"size:255;uniqueIndex;not null"` // 统一小写存储
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:100"`
	Username     string `gorm:"size:100;index"`

	Role     UserRole `gorm:"size:20;not null;default:'CUSTOMER'"`
	IsActive bool     `gorm:"default:true"`

	// 关联关系
	// 卖家档案 1:1，onboard 时创建
	VendorProfile *VendorProfile `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
