package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"petromart/cmd/fx/account_fx"
	"petromart/cmd/fx/catalog_fx"
	"petromart/cmd/fx/controllers_fx"
	"petromart/cmd/fx/core_fx"
	"petromart/cmd/fx/db_fx"
	"petromart/cmd/fx/mail_fx"
	"petromart/cmd/fx/memcache_fx"
	"petromart/cmd/fx/promotion_fx"
	"petromart/cmd/fx/store_fx"
	"petromart/cmd/fx/subscription_fx"
	"petromart/cmd/fx/workers_fx"
	"petromart/internal/api/controllers"
	"petromart/internal/config"
	"petromart/internal/models/db_models"
	"petromart/pkg/middleware"
	"petromart/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		core_fx.Module,
		db_fx.Module,
		mail_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		store_fx.Module,
		catalog_fx.Module,
		subscription_fx.Module,
		promotion_fx.Module,
		workers_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideRouter(
	cfg *config.Config,
	tokens *utils.TokenMaker,
	accountController *controllers.AccountController,
	catalogController *controllers.CatalogController,
	storeController *controllers.StoreController,
	productController *controllers.ProductController,
	subscriptionController *controllers.SubscriptionController,
	promotionController *controllers.PromotionController,
	adminController *controllers.AdminController,
) *gin.Engine {
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterRoutes(r, tokens,
		accountController, catalogController, storeController,
		productController, subscriptionController, promotionController,
		adminController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	tokens *utils.TokenMaker,
	accountController *controllers.AccountController,
	catalogController *controllers.CatalogController,
	storeController *controllers.StoreController,
	productController *controllers.ProductController,
	subscriptionController *controllers.SubscriptionController,
	promotionController *controllers.PromotionController,
	adminController *controllers.AdminController,
) {
	auth := r.Group("/auth")
	auth.POST("/register", accountController.Register)
	auth.POST("/login", accountController.Login)
	auth.POST("/forgot-password", accountController.ForgotPassword)
	auth.POST("/reset-password", accountController.ResetPassword)

	r.GET("/categories", catalogController.ListCategories)
	r.GET("/products", catalogController.SearchProducts)
	r.GET("/products/:id", catalogController.GetProduct)
	r.GET("/stores/:slug", catalogController.GetStore)
	r.GET("/plans", catalogController.ListPlans)
	r.GET("/featured", catalogController.FeaturedProducts)
	r.GET("/hot-deals", catalogController.HotDeals)

	authed := r.Group("/", middleware.JWTAuthMiddleware(tokens))
	authed.GET("/me", accountController.Profile)
	authed.POST("/reports", storeController.ReportStore)

	seller := authed.Group("/seller", middleware.RoleMiddleware(string(db_models.RoleSeller)))
	seller.POST("/store", storeController.CreateStore)
	seller.PUT("/store", storeController.UpdateStore)
	seller.GET("/store", storeController.MyStore)
	seller.POST("/store/documents", storeController.SubmitDocument)
	seller.GET("/store/documents", storeController.MyDocuments)

	seller.POST("/products", productController.CreateProduct)
	seller.GET("/products", productController.MyProducts)
	seller.PUT("/products/:id", productController.UpdateProduct)
	seller.DELETE("/products/:id", productController.DeleteProduct)

	seller.POST("/subscriptions", subscriptionController.Subscribe)
	seller.GET("/subscriptions/current", subscriptionController.MySubscription)

	seller.POST("/promotions/featured", promotionController.FeatureProduct)
	seller.POST("/promotions/hot-deals", promotionController.CreateHotDeal)
	seller.GET("/promotions", promotionController.MyPromotions)

	admin := authed.Group("/admin", middleware.RoleMiddleware(string(db_models.RoleAdmin)))
	admin.GET("/subscriptions/pending", adminController.PendingSubscriptions)
	admin.POST("/subscriptions/:id/approve", adminController.ApproveSubscription)
	admin.POST("/subscriptions/:id/reject", adminController.RejectSubscription)

	admin.GET("/stores", adminController.ListStores)
	admin.POST("/stores/:id/suspend", adminController.SuspendStore)
	admin.POST("/stores/:id/reactivate", adminController.ReactivateStore)
	admin.POST("/documents/:id/review", adminController.ReviewDocument)

	admin.GET("/reports", adminController.OpenReports)
	admin.POST("/reports/:id/resolve", adminController.ResolveReport)

	admin.POST("/categories", adminController.CreateCategory)
	admin.PUT("/categories/:id", adminController.UpdateCategory)
	admin.DELETE("/categories/:id", adminController.DeleteCategory)

	admin.PUT("/plans", adminController.UpsertPlan)
	admin.GET("/audit-log", adminController.AuditLog)
	admin.POST("/sweeps/run", adminController.RunSweep)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
