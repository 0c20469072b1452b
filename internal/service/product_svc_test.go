package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{}, &model.VendorProfile{}, &model.VerificationRequest{},
		&model.Product{}, &model.ProductImage{}, &model.AffiliateLink{},
		&model.Review{}, &model.ReviewPhoto{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewVendorRepository(db),
		repository.NewUserRepository(db),
	)
}

// setupSeller 造一个已入驻的卖家，返回 userID 和档案
func setupSeller(t *testing.T, db *gorm.DB, email string) (int64, *model.VendorProfile) {
	user := createTestUser(t, db, email, model.UserRoleVendor)
	profile := &model.VendorProfile{
		UserID:             user.ID,
		StoreName:          "Test Store",
		VerificationStatus: model.VerificationApproved,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("创建卖家档案失败: %v", err)
	}
	return user.ID, profile
}

// ==================== 创建测试 ====================

func TestProductService_CreateProduct(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	userID, profile := setupSeller(t, db, "seller@example.com")

	id, err := svc.CreateProduct(ctx, userID, &dto.CreateProductRequest{
		Name:         "HD Lace Front Bob",
		Category:     "lace-front",
		LaceType:     "HD",
		CurlPattern:  "straight",
		PriceCents:   29900,
		FastShipping: true,
		ImageUrls:    []string{"/uploads/a.jpg", "", "/uploads/b.jpg"},
		AffiliateLinks: []dto.AffiliateLinkItem{
			{Label: "Amazon", URL: "https://amazon.example/x"},
			{Label: "", URL: "https://skip.me"}, // 缺 label，跳过
		},
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}

	var product model.Product
	db.Preload("Images").Preload("AffiliateLinks").First(&product, id)

	if product.VendorID != profile.ID {
		t.Errorf("VendorID = %d, want %d", product.VendorID, profile.ID)
	}
	if product.Slug != "hd-lace-front-bob" {
		t.Errorf("Slug = %s", product.Slug)
	}
	if product.Currency != "USD" {
		t.Errorf("Currency = %s", product.Currency)
	}
	if len(product.Images) != 2 {
		t.Errorf("图片数 = %d, 空串应被过滤", len(product.Images))
	}
	if len(product.AffiliateLinks) != 1 {
		t.Errorf("站外链接数 = %d, 不完整条目应被跳过", len(product.AffiliateLinks))
	}
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	userID, _ := setupSeller(t, db, "seller@example.com")

	cases := []dto.CreateProductRequest{
		{Name: "", Category: "lace-front", PriceCents: 100},
		{Name: "Wig", Category: "", PriceCents: 100},
		{Name: "Wig", Category: "lace-front", PriceCents: 0},
		{Name: "Wig", Category: "lace-front", PriceCents: -5},
	}
	for i, req := range cases {
		if _, err := svc.CreateProduct(ctx, userID, &req); !errors.Is(err, ErrInvalidProduct) {
			t.Errorf("case %d err = %v, want ErrInvalidProduct", i, err)
		}
	}

	// 买家建商品直接拒绝
	buyer := createTestUser(t, db, "buyer@example.com", model.UserRoleCustomer)
	req := dto.CreateProductRequest{Name: "Wig", Category: "lace-front", PriceCents: 100}
	if _, err := svc.CreateProduct(ctx, buyer.ID, &req); !errors.Is(err, ErrNotVendor) {
		t.Errorf("买家建商品 err = %v, want ErrNotVendor", err)
	}
}

func TestProductService_SlugUniqueness(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	userID, _ := setupSeller(t, db, "seller@example.com")

	req := func() *dto.CreateProductRequest {
		return &dto.CreateProductRequest{Name: "Silk Top Closure", Category: "closure", PriceCents: 9900}
	}

	id1, _ := svc.CreateProduct(ctx, userID, req())
	id2, _ := svc.CreateProduct(ctx, userID, req())
	id3, _ := svc.CreateProduct(ctx, userID, req())

	var p1, p2, p3 model.Product
	db.First(&p1, id1)
	db.First(&p2, id2)
	db.First(&p3, id3)

	if p1.Slug != "silk-top-closure" {
		t.Errorf("slug1 = %s", p1.Slug)
	}
	if p2.Slug != "silk-top-closure-2" {
		t.Errorf("slug2 = %s", p2.Slug)
	}
	if p3.Slug != "silk-top-closure-3" {
		t.Errorf("slug3 = %s", p3.Slug)
	}
}

// ==================== 查询测试 ====================

func seedCatalog(t *testing.T, db *gorm.DB, svc *ProductService, userID int64) {
	t.Helper()
	items := []dto.CreateProductRequest{
		{Name: "HD Lace Front Straight", Category: "lace-front", LaceType: "HD", CurlPattern: "straight", PriceCents: 29900, FastShipping: true},
		{Name: "Transparent Lace Curly", Category: "lace-front", LaceType: "transparent", CurlPattern: "curly", PriceCents: 19900},
		{Name: "Silk Closure Wave", Category: "closure", LaceType: "HD", CurlPattern: "body-wave", PriceCents: 9900, FastShipping: true},
	}
	for i := range items {
		if _, err := svc.CreateProduct(context.Background(), userID, &items[i]); err != nil {
			t.Fatalf("seed 失败: %v", err)
		}
	}
}

func TestProductService_ListProducts_Filter(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	userID, _ := setupSeller(t, db, "seller@example.com")
	seedCatalog(t, db, svc, userID)

	// 按分类
	resp, err := svc.ListProducts(ctx, &dto.ProductListRequest{Category: "lace-front", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("lace-front Total = %d, want 2", resp.Total)
	}

	// 按快发
	resp, _ = svc.ListProducts(ctx, &dto.ProductListRequest{FastShipping: "true", Page: 1, PageSize: 20})
	if resp.Total != 2 {
		t.Errorf("fastShipping Total = %d, want 2", resp.Total)
	}
	resp, _ = svc.ListProducts(ctx, &dto.ProductListRequest{FastShipping: "false", Page: 1, PageSize: 20})
	if resp.Total != 1 {
		t.Errorf("非快发 Total = %d, want 1", resp.Total)
	}

	// 组合筛选 + 关键字
	resp, _ = svc.ListProducts(ctx, &dto.ProductListRequest{Category: "lace-front", LaceType: "HD", Page: 1, PageSize: 20})
	if resp.Total != 1 {
		t.Errorf("组合筛选 Total = %d, want 1", resp.Total)
	}
	resp, _ = svc.ListProducts(ctx, &dto.ProductListRequest{Keyword: "closure", Page: 1, PageSize: 20})
	if resp.Total != 1 {
		t.Errorf("关键字 Total = %d, want 1", resp.Total)
	}
}

func TestProductService_ListProducts_SortAndPaging(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	userID, _ := setupSeller(t, db, "seller@example.com")
	seedCatalog(t, db, svc, userID)

	// 价格升序
	resp, err := svc.ListProducts(ctx, &dto.ProductListRequest{Sort: "price_asc", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(resp.Products) != 3 {
		t.Fatalf("条数 = %d", len(resp.Products))
	}
	if resp.Products[0].PriceCents != 9900 || resp.Products[2].PriceCents != 29900 {
		t.Errorf("price_asc 排序错误: %d ... %d", resp.Products[0].PriceCents, resp.Products[2].PriceCents)
	}
	if resp.Products[0].PriceDisplay != "$99.00" {
		t.Errorf("PriceDisplay = %s, want $99.00", resp.Products[0].PriceDisplay)
	}

	// 价格降序
	resp, _ = svc.ListProducts(ctx, &dto.ProductListRequest{Sort: "price_desc", Page: 1, PageSize: 20})
	if resp.Products[0].PriceCents != 29900 {
		t.Errorf("price_desc 排序错误: %d", resp.Products[0].PriceCents)
	}

	// 分页
	resp, _ = svc.ListProducts(ctx, &dto.ProductListRequest{Sort: "price_asc", Page: 2, PageSize: 2})
	if resp.Total != 3 {
		t.Errorf("Total = %d, want 3", resp.Total)
	}
	if len(resp.Products) != 1 {
		t.Errorf("第 2 页条数 = %d, want 1", len(resp.Products))
	}
	if resp.Page != 2 || resp.PageSize != 2 {
		t.Errorf("分页回显 = %d/%d", resp.Page, resp.PageSize)
	}
}

func TestProductService_GetProductDetail(t *testing.T) {
	db := setupProductTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	userID, _ := setupSeller(t, db, "seller@example.com")
	id, _ := svc.CreateProduct(ctx, userID, &dto.CreateProductRequest{
		Name:       "HD Lace Front Bob",
		Category:   "lace-front",
		PriceCents: 29900,
		ImageUrls:  []string{"/uploads/a.jpg", "/uploads/b.jpg"},
	})

	detail, err := svc.GetProductDetail(ctx, id)
	if err != nil {
		t.Fatalf("GetProductDetail() error = %v", err)
	}
	if detail.Name != "HD Lace Front Bob" {
		t.Errorf("Name = %s", detail.Name)
	}
	if len(detail.ImageUrls) != 2 {
		t.Errorf("ImageUrls = %v", detail.ImageUrls)
	}
	if detail.Vendor == nil || detail.Vendor.StoreName != "Test Store" {
		t.Errorf("Vendor = %+v", detail.Vendor)
	}

	if _, err := svc.GetProductDetail(ctx, 99999); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("不存在的商品 err = %v, want ErrProductNotFound", err)
	}
}

// ==================== 评价联动测试 ====================

func TestReviewService_CreateReview(t *testing.T) {
	db := setupProductTestDB(t)
	productSvc := newProductService(db)
	reviewSvc := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
	)
	ctx := context.Background()

	sellerID, _ := setupSeller(t, db, "seller@example.com")
	productID, _ := productSvc.CreateProduct(ctx, sellerID, &dto.CreateProductRequest{
		Name: "HD Lace Front Bob", Category: "lace-front", PriceCents: 29900,
	})

	buyer := createTestUser(t, db, "buyer@example.com", model.UserRoleCustomer)

	// 两条评价，均分应为 4.5
	for i, rating := range []int{4, 5} {
		_, err := reviewSvc.CreateReview(ctx, buyer.ID, &dto.CreateReviewRequest{
			ProductID: productID,
			Rating:    rating,
			Comment:   fmt.Sprintf("review %d", i),
			PhotoUrls: []string{"/uploads/photo.jpg", ""},
		})
		if err != nil {
			t.Fatalf("CreateReview() error = %v", err)
		}
	}

	var product model.Product
	db.First(&product, productID)
	if product.ReviewCount != 2 {
		t.Errorf("ReviewCount = %d, want 2", product.ReviewCount)
	}
	if product.Rating < 4.49 || product.Rating > 4.51 {
		t.Errorf("Rating = %f, want 4.5", product.Rating)
	}
}

func TestReviewService_CreateReview_Invalid(t *testing.T) {
	db := setupProductTestDB(t)
	reviewSvc := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
	)
	ctx := context.Background()

	buyer := createTestUser(t, db, "buyer@example.com", model.UserRoleCustomer)

	for _, rating := range []int{0, 6, -1} {
		_, err := reviewSvc.CreateReview(ctx, buyer.ID, &dto.CreateReviewRequest{ProductID: 1, Rating: rating})
		if !errors.Is(err, ErrInvalidReview) {
			t.Errorf("rating=%d err = %v, want ErrInvalidReview", rating, err)
		}
	}

	// 商品不存在
	_, err := reviewSvc.CreateReview(ctx, buyer.ID, &dto.CreateReviewRequest{ProductID: 99999, Rating: 5})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}
