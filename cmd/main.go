package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lacelink_dev_v1_202608/internal/controller"
	"lacelink_dev_v1_202608/internal/middleware"
	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
	"lacelink_dev_v1_202608/internal/router"
	"lacelink_dev_v1_202608/internal/service"
	"lacelink_dev_v1_202608/internal/task"
	"lacelink_dev_v1_202608/pkg/config"
	"lacelink_dev_v1_202608/pkg/database"
)

// @title LaceLink API
// @version 1.0
// @description 假发垂直电商市场后端：卖家入驻、认证审核、商品、评价、结算
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(db, cfg)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers, cfg.Upload.Dir)

	// 6. 启动服务
	startServer(r, cfg.Server.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User    repository.UserRepository
	Vendor  repository.VendorRepository
	Product repository.ProductRepository
	Review  repository.ReviewRepository
	Order   repository.OrderRepository
}

// Services 服务集合
type Services struct {
	User     *service.UserService
	Vendor   *service.VendorService
	Product  *service.ProductService
	Review   *service.ReviewService
	Checkout *service.CheckoutService
	Storage  *service.StorageService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN,
		// User
		&model.User{},
		// Vendor
		&model.VendorProfile{}, &model.VerificationRequest{},
		// Product
		&model.Product{}, &model.ProductImage{}, &model.AffiliateLink{},
		// Review
		&model.Review{}, &model.ReviewPhoto{},
		// Order
		&model.Order{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:    repository.NewUserRepository(db),
		Vendor:  repository.NewVendorRepository(db),
		Product: repository.NewProductRepository(db),
		Review:  repository.NewReviewRepository(db),
		Order:   repository.NewOrderRepository(db),
	}

	// -------- 存储服务 --------
	storageSvc := initStorageService(cfg)

	// -------- 业务服务 --------
	services := &Services{
		User:    service.NewUserService(repos.User, cfg.Admin.Email),
		Vendor:  service.NewVendorService(repos.User, repos.Vendor),
		Product: service.NewProductService(repos.Product, repos.Vendor, repos.User),
		Review:  service.NewReviewService(repos.Review, repos.Product, repos.User),
		Checkout: service.NewCheckoutService(repos.Order, repos.Product, &service.CheckoutConfig{
			Endpoint:      cfg.Payment.Endpoint,
			APIKey:        cfg.Payment.APIKey,
			WebhookSecret: cfg.Payment.WebhookSecret,
			SiteURL:       cfg.Server.SiteURL,
		}),
		Storage: storageSvc,
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		User:     controller.NewUserController(services.User),
		Vendor:   controller.NewVendorController(services.Vendor),
		Admin:    controller.NewAdminController(services.Vendor),
		Product:  controller.NewProductController(services.Product),
		Review:   controller.NewReviewController(services.Review),
		Checkout: controller.NewCheckoutController(services.Checkout),
		Upload:   controller.NewUploadController(services.Storage),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorageService 初始化存储服务
func initStorageService(cfg *config.Config) *service.StorageService {
	storageCfg := &service.StorageConfig{
		Dir:          cfg.Upload.Dir,
		BaseURL:      cfg.Upload.BaseURL,
		MaxFileSize:  cfg.Upload.MaxFileSize,
		MaxFileCount: cfg.Upload.MaxFileCount,
	}
	provider, err := service.NewLocalStorage(storageCfg)
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return service.NewStorageService(provider, storageCfg)
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 认证状态一致性修复
	repairTask := task.NewVerificationRepairTask(deps.Repos.Vendor)
	repairTask.Start()

	// 过期未支付订单清理
	orderTask := task.NewOrderExpireTask(deps.Repos.Order)
	orderTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
