package router

import (
	"time"

	"stockroom/internal/config"
	"stockroom/internal/handler"
	"stockroom/internal/middleware"
	"stockroom/internal/model"
	"stockroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Cfg *config.Config
	DB  *gorm.DB
	RDB *redis.Client

	Auth     service.AuthService
	Products service.ProductService
	Category service.CategoryService
	Brand    service.BrandService
	Supplier service.SupplierService
	Customer service.CustomerService
	Staff    service.StaffService
	Ledger   service.LedgerService
	Reports  service.ReportService
	Payments service.PaymentService
}

// New builds the full route tree. Reads require a valid token; writes
// additionally require the admin role. A small public surface (price check,
// catalog reads, health) stays open.
func New(d Deps) *gin.Engine {
	if d.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimiter(300, time.Minute))

	health := handler.NewHealthHandler(d.DB, d.RDB)
	auth := handler.NewAuthHandler(d.Auth)
	products := handler.NewProductHandler(d.Products)
	categories := handler.NewCategoryHandler(d.Category)
	brands := handler.NewBrandHandler(d.Brand)
	suppliers := handler.NewSupplierHandler(d.Supplier)
	customers := handler.NewCustomerHandler(d.Customer)
	staffs := handler.NewStaffHandler(d.Staff)
	imports := handler.NewTransactionHandler(d.Ledger, d.Reports, model.KindImport)
	orders := handler.NewTransactionHandler(d.Ledger, d.Reports, model.KindOrder)
	importReports := handler.NewReportHandler(d.Reports, model.KindImport)
	salesReports := handler.NewReportHandler(d.Reports, model.KindOrder)
	payments := handler.NewPaymentHandler(d.Payments)

	r.GET("/health", health.Check)

	v1 := r.Group("/v1")

	// Public surface: catalog reads and price check
	v1.GET("/products", products.List)
	v1.GET("/products/:id", products.Get)
	v1.GET("/products/price-check/:code", products.PriceCheck)
	v1.GET("/categories", categories.List)
	v1.GET("/categories/:id", categories.Get)

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", middleware.LoginRateLimiter(), auth.Register)
		authGroup.POST("/login", middleware.LoginRateLimiter(), auth.Login)
		authGroup.POST("/refresh", auth.Refresh)
	}

	// Authenticated reads
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(d.Cfg.JWTSecret, d.RDB))
	{
		protected.POST("/auth/logout", auth.Logout)
		protected.GET("/auth/profile", auth.Profile)
		protected.PUT("/auth/profile", auth.UpdateProfile)

		protected.GET("/brands", brands.List)
		protected.GET("/brands/:id", brands.Get)
		protected.GET("/suppliers", suppliers.List)
		protected.GET("/suppliers/:id", suppliers.Get)
		protected.GET("/customers", customers.List)
		protected.GET("/customers/:id", customers.Get)
		protected.GET("/staffs", staffs.List)
		protected.GET("/staffs/:id", staffs.Get)

		protected.GET("/imports", imports.List)
		protected.GET("/imports/:id", imports.Get)
		protected.GET("/imports/:id/voucher.pdf", imports.Voucher)
		protected.GET("/orders", orders.List)
		protected.GET("/orders/:id", orders.Get)
		protected.GET("/orders/:id/voucher.pdf", orders.Voucher)
		protected.GET("/orders/:id/payment-status", payments.OrderStatus)

		protected.GET("/payments", payments.List)
		protected.GET("/payments/:id", payments.Get)
		protected.GET("/payments/summary", payments.Summary)

		reports := protected.Group("/reports")
		{
			reports.GET("/imports", importReports.Rows)
			reports.GET("/imports/summary", importReports.Summary)
			reports.GET("/imports/export.csv", importReports.ExportCSV)
			reports.GET("/imports/export.pdf", importReports.ExportPDF)
			reports.GET("/sales", salesReports.Rows)
			reports.GET("/sales/summary", salesReports.Summary)
			reports.GET("/sales/export.csv", salesReports.ExportCSV)
			reports.GET("/sales/export.pdf", salesReports.ExportPDF)
		}
	}

	// Admin-only writes
	admin := v1.Group("")
	admin.Use(middleware.JWTAuth(d.Cfg.JWTSecret, d.RDB), middleware.RequireAdmin())
	{
		admin.POST("/auth/users", auth.RegisterUser)

		admin.POST("/products", products.Create)
		admin.PUT("/products/:id", products.Update)
		admin.DELETE("/products/:id", products.Delete)
		admin.POST("/categories", categories.Create)
		admin.PUT("/categories/:id", categories.Update)
		admin.DELETE("/categories/:id", categories.Delete)
		admin.POST("/brands", brands.Create)
		admin.PUT("/brands/:id", brands.Update)
		admin.DELETE("/brands/:id", brands.Delete)
		admin.POST("/suppliers", suppliers.Create)
		admin.PUT("/suppliers/:id", suppliers.Update)
		admin.DELETE("/suppliers/:id", suppliers.Delete)
		admin.POST("/customers", customers.Create)
		admin.PUT("/customers/:id", customers.Update)
		admin.DELETE("/customers/:id", customers.Delete)
		admin.POST("/staffs", staffs.Create)
		admin.PUT("/staffs/:id", staffs.Update)
		admin.DELETE("/staffs/:id", staffs.Delete)

		admin.POST("/imports", imports.Create)
		admin.PUT("/imports/:id", imports.Update)
		admin.DELETE("/imports/:id", imports.Delete)
		admin.POST("/orders", orders.Create)
		admin.PUT("/orders/:id", orders.Update)
		admin.DELETE("/orders/:id", orders.Delete)

		admin.POST("/payments", payments.Create)
		admin.PUT("/payments/:id", payments.Update)
		admin.DELETE("/payments/:id", payments.Delete)
	}

	return r
}
