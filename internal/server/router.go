package server

import (
	"net/http"
	"time"

	"motopartes/internal/cache"
	"motopartes/internal/middleware"
	"motopartes/internal/modules/admin"
	"motopartes/internal/modules/auth"
	"motopartes/internal/modules/banner"
	"motopartes/internal/modules/catalog"
	"motopartes/internal/modules/category"
	"motopartes/internal/modules/finder"
	"motopartes/internal/modules/invoice"
	"motopartes/internal/modules/reservation"
	"motopartes/internal/notification"
	jwtsvc "motopartes/internal/pkg/jwt"
	"motopartes/internal/pkg/response"
	"motopartes/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Log      *zap.Logger
	JWT      *jwtsvc.Service
	Notifier notification.Notifier

	// ProductCache backs the product list; nil disables it.
	ProductCache cache.Store
	CacheTTL     time.Duration
	// RecentStore holds the finder's recent searches per visitor.
	RecentStore cache.Store

	CORSOrigins []string
	CORSMaxAge  time.Duration
}

// NewRouter wires repositories, services and handlers onto one engine.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.RecentStore == nil {
		d.RecentStore = cache.NewMemory()
	}

	userRepo := repository.NewUserRepository(d.DB)
	garageRepo := repository.NewGarageRepository(d.DB)
	reservaRepo := repository.NewReservaRepository(d.DB)
	productRepo := repository.NewProductRepository(d.DB)
	categoryRepo := repository.NewCategoryRepository(d.DB)
	bannerRepo := repository.NewBannerRepository(d.DB)
	invoiceRepo := repository.NewInvoiceRepository(d.DB)

	authHandler := auth.NewHandler(auth.NewService(userRepo, d.JWT), int64(d.JWT.TTL()/time.Second))

	finderService := finder.NewService(garageRepo, finder.NewCacheRecentStore(d.RecentStore), d.Log.Named("finder"))
	finderHandler := finder.NewHandler(finderService)

	catalogService := catalog.NewService(productRepo, d.ProductCache, d.CacheTTL, d.Log.Named("catalog"))
	catalogHandler := catalog.NewHandler(catalogService, finderService)

	reservationHandler := reservation.NewHandler(reservation.NewService(reservaRepo, d.Notifier, d.Log.Named("reservation")))
	invoiceHandler := invoice.NewHandler(invoice.NewService(invoiceRepo, d.Notifier, d.Log.Named("invoice")))
	categoryHandler := category.NewHandler(category.NewService(categoryRepo))
	bannerHandler := banner.NewHandler(bannerRepo)
	adminHandler := admin.NewHandler(admin.NewService(userRepo, reservaRepo, invoiceRepo, catalogService))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorLogger(d.Log), middleware.CORS(d.CORSOrigins, d.CORSMaxAge))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Internal(c, err, "database unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("")
	{
		authHandler.RegisterPublicRoutes(public)
		catalogHandler.RegisterPublicRoutes(public)
		finderHandler.RegisterRoutes(public)
		bannerHandler.RegisterPublicRoutes(public)
	}

	protected := r.Group("")
	protected.Use(middleware.JWTAuth(d.JWT))
	{
		authHandler.RegisterProtectedRoutes(protected)
	}

	adminGroup := r.Group("")
	adminGroup.Use(middleware.JWTAuth(d.JWT), middleware.AdminOnly())
	dashboard := adminGroup.Group("/dashboard")
	{
		adminHandler.RegisterRoutes(dashboard)
		catalogHandler.RegisterAdminRoutes(adminGroup, dashboard)
		reservationHandler.RegisterRoutes(dashboard)
		invoiceHandler.RegisterRoutes(dashboard)
		categoryHandler.RegisterRoutes(dashboard)
		bannerHandler.RegisterRoutes(dashboard)
	}

	return r
}
