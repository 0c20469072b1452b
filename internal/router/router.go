package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lacelink_dev_v1_202608/internal/controller"
	"lacelink_dev_v1_202608/internal/middleware"
	"lacelink_dev_v1_202608/internal/model"

	_ "lacelink_dev_v1_202608/docs"
)

// Controllers 路由依赖的控制器集合
type Controllers struct {
	User     *controller.UserController
	Vendor   *controller.VendorController
	Admin    *controller.AdminController
	Product  *controller.ProductController
	Review   *controller.ReviewController
	Checkout *controller.CheckoutController
	Upload   *controller.UploadController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers, uploadDir string) {
	r.Use(middleware.RequestLog())
	r.Use(middleware.AuditContext())

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 健康检查 + 上传文件静态托管
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	// 3. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			// POST /api/auth/signup
			auth.POST("/signup", ctls.User.Signup)
			auth.POST("/login", ctls.User.Login)
			auth.POST("/refresh", ctls.User.RefreshToken)
		}

		// GET /api/me
		api.GET("/me", middleware.JWTAuth(), ctls.User.Me)

		// vendor 卖家组，入驻不限角色，申请认证和建商品要 VENDOR/ADMIN
		vendor := api.Group("/vendor", middleware.JWTAuth())
		{
			// POST /api/vendor/onboard
			vendor.POST("/onboard", ctls.Vendor.Onboard)

			// POST /api/vendor/verification/apply
			vendor.POST("/verification/apply",
				middleware.RequireRole(model.UserRoleVendor, model.UserRoleAdmin),
				ctls.Vendor.Apply)

			// POST /api/vendor/products/create
			vendor.POST("/products/create",
				middleware.RequireRole(model.UserRoleVendor, model.UserRoleAdmin),
				ctls.Product.Create)
		}

		// admin 审核组，只放 ADMIN 进
		admin := api.Group("/admin", middleware.JWTAuth(), middleware.RequireRole(model.UserRoleAdmin))
		{
			// GET /api/admin/vendors/pending
			admin.GET("/vendors/pending", ctls.Admin.ListPending)

			// POST /api/admin/vendors/decide
			admin.POST("/vendors/decide", ctls.Admin.Decide)
		}

		// products 商品组，公开读
		products := api.Group("/products")
		{
			products.GET("", ctls.Product.List)
			products.GET("/:id", ctls.Product.Detail)
		}

		// POST /api/reviews/create
		api.POST("/reviews/create", middleware.JWTAuth(), ctls.Review.Create)

		// checkout 结算，允许匿名（带 token 时取身份邮箱）
		api.POST("/checkout", middleware.OptionalAuth(), ctls.Checkout.Create)
		api.POST("/checkout/webhook", ctls.Checkout.Webhook)

		// POST /api/uploads
		api.POST("/uploads", middleware.JWTAuth(), ctls.Upload.Upload)
	}
}
