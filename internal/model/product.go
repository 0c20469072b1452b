package model

// ==================== Product 商品 ====================

// Product 假发商品，归属于一个卖家档案
type Product struct {
	BaseModel
	VendorID int64          `gorm:"index;not null"`
	Vendor   *VendorProfile `gorm:"foreignKey:VendorID"`

	// 基本信息
	Name        string `gorm:"size:255;not null"`
	Slug        string `gorm:"size:255;uniqueIndex"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:100;index;not null"`

	// 假发属性（筛选维度）
	LaceType    string `gorm:"size:50;index"` // 13x6 frontal / 4x4 closure ...
	CurlPattern string `gorm:"size:50;index"` // body wave / curly / straight ...
	HairType    string `gorm:"size:50"`       // 100% human / human blend ...
	Color       string `gorm:"size:50"`

	// 价格（分为单位存储，展示层再转美元）
	PriceCents int64  `gorm:"not null"`
	Currency   string `gorm:"size:5;default:'USD'"`

	FastShipping bool `gorm:"default:false"`

	// 评价聚合（评论创建后重算）
	Rating      float64 `gorm:"default:0"`
	ReviewCount int     `gorm:"default:0"`

	IsActive bool `gorm:"default:true;index"`

	// 关联关系
	Images         []ProductImage  `gorm:"foreignKey:ProductID"`
	AffiliateLinks []AffiliateLink `gorm:"foreignKey:ProductID"`
	Reviews        []Review        `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// ProductImage 商品图
type ProductImage struct {
	BaseModel
	ProductID int64  `gorm:"index;not null"`
	URL       string `gorm:"size:1024;not null"`
	SortOrder int    `gorm:"default:0"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

// AffiliateLink 站外购买链接
type AffiliateLink struct {
	BaseModel
	ProductID int64  `gorm:"index;not null"`
	Label     string `gorm:"size:100;not null"`
	URL       string `gorm:"size:1024;not null"`
	Provider  string `gorm:"size:50"`
}

func (AffiliateLink) TableName() string {
	return "affiliate_links"
}
