package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/configs"
	"github.com/kellyworkos00-droid/fairm/controllers"
	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/middlewares"
	"github.com/kellyworkos00-droid/fairm/mq"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/plans"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/kellyworkos00-droid/fairm/services"
	"github.com/kellyworkos00-droid/fairm/ws"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs from the process. Redis may be nil.
type Deps struct {
	Config  *configs.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Events  mq.Publisher
	Hub     *ws.NotificationHub
	Limiter *middlewares.RateLimiter
	Log     *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware())
	}
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.NoRoute(func(c *gin.Context) { resp.NotFound(c, "route not found") })

	catalog := plans.Default()

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	subRepo := repository.NewSubscriptionRepository(d.DB)
	productRepo := repository.NewProductRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	noteRepo := repository.NewNotificationRepository(d.DB)
	listingRepo := repository.NewListingRepository(d.DB)
	marketRepo := repository.NewMarketRepository(d.DB)

	// Services
	cache := services.NewProductCache(d.Redis, cfg.ProductCacheTTL, d.Log)
	subSvc := services.NewSubscriptionService(d.DB, subRepo, catalog, d.Log)
	authSvc := services.NewAuthService(d.DB, userRepo, subSvc, cfg.JWTSecret, cfg.JWTTTL, d.Log)
	productSvc := services.NewProductService(d.DB, productRepo, userRepo, subRepo, catalog, cache, d.Log)
	var notifier services.Notifier
	if d.Hub != nil {
		notifier = d.Hub
	}
	orderSvc := services.NewOrderService(d.DB, orderRepo, productRepo, subRepo, noteRepo, catalog, cache, notifier, d.Events, d.Log)
	analyticsSvc := services.NewAnalyticsService(orderRepo, productRepo)
	listingSvc := services.NewListingService(listingRepo)
	marketSvc := services.NewMarketService(marketRepo)
	noteSvc := services.NewNotificationService(noteRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, d.Log)
	productCtrl := controllers.NewProductController(productSvc, d.Log)
	orderCtrl := controllers.NewOrderController(orderSvc, d.Log)
	subCtrl := controllers.NewSubscriptionController(subSvc, d.Log)
	analyticsCtrl := controllers.NewAnalyticsController(analyticsSvc, d.Log)
	listingCtrl := controllers.NewListingController(listingSvc, marketSvc, d.Log)
	noteCtrl := controllers.NewNotificationController(noteSvc, d.Log)

	authed := middlewares.AuthMiddleware(cfg.JWTSecret)
	farmerOnly := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleFarmer)
	buyerOnly := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleBuyer)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", authed, authCtrl.Me)
	}

	// Products (public reads, farmer writes)
	p := r.Group("/products")
	{
		p.GET("", productCtrl.List)
		p.GET("/:id", productCtrl.Get)
		p.POST("", farmerOnly, productCtrl.Create)
		p.PATCH("/:id", farmerOnly, productCtrl.Update)
		p.DELETE("/:id", farmerOnly, productCtrl.Remove)
	}

	// Farmer dashboard
	farmer := r.Group("/farmer", farmerOnly)
	{
		farmer.GET("/products", productCtrl.Mine)
		farmer.GET("/performance", analyticsCtrl.Performance)
	}

	// Orders
	o := r.Group("/orders")
	{
		o.GET("", authed, orderCtrl.List)
		o.GET("/:id", authed, orderCtrl.Detail)
		o.POST("", buyerOnly, orderCtrl.Create)
		o.PATCH("/:id/status", farmerOnly, orderCtrl.UpdateStatus)
	}

	// Subscription
	r.GET("/subscription/plans", subCtrl.Plans)
	s := r.Group("/subscription", authed)
	{
		s.GET("", subCtrl.Get)
		s.POST("", subCtrl.SetTier)
		s.GET("/payments", subCtrl.Payments)
	}

	r.GET("/recommendations", authed, analyticsCtrl.Recommendations)

	// Public directories
	r.GET("/market-data", listingCtrl.MarketPrices)
	r.POST("/market-data", listingCtrl.RecordPrice)
	r.GET("/agrovets", listingCtrl.Agrovets)
	r.GET("/events", listingCtrl.Events)
	r.GET("/education", listingCtrl.Education)

	// Notifications
	n := r.Group("/notifications", authed)
	{
		n.GET("", noteCtrl.List)
		n.PATCH("/:id/read", noteCtrl.MarkRead)
	}
	if d.Hub != nil {
		r.GET("/ws/notifications", middlewares.WSAuthMiddleware(cfg.JWTSecret), d.Hub.HandleWebSocket)
	}
}
