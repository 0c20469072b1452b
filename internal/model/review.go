package model

// Review 商品评价，评分 1-5
type Review struct {
	BaseModel
	ProductID int64 `gorm:"index;not null"`
	UserID    int64 `gorm:"index;not null"`
	User      *User `gorm:"foreignKey:UserID"`

	Rating  int    `gorm:"not null"`
	Comment string `gorm:"type:text"`

	Photos []ReviewPhoto `gorm:"foreignKey:ReviewID"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewPhoto 买家秀图片
type ReviewPhoto struct {
	BaseModel
	ReviewID int64  `gorm:"index;not null"`
	URL      string `gorm:"size:1024;not null"`
}

func (ReviewPhoto) TableName() string {
	return "review_photos"
}
