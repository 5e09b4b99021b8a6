// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/receipt-split/backend/internal/integration/entrypoint/controller"
	"github.com/receipt-split/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	userController       *controller.UserController
	storeController      *controller.StoreController
	receiptController    *controller.ReceiptController
	settlementController *controller.SettlementController
	settleRateLimiter    *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
	metricsHandler       http.Handler
}

// NewRouter creates a new router instance with all dependencies.
// authMiddleware and metricsHandler may be nil, which leaves the API open and
// /metrics unregistered.
func NewRouter(
	healthController *controller.HealthController,
	userController *controller.UserController,
	storeController *controller.StoreController,
	receiptController *controller.ReceiptController,
	settlementController *controller.SettlementController,
	settleRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:     healthController,
		userController:       userController,
		storeController:      storeController,
		receiptController:    receiptController,
		settlementController: settlementController,
		settleRateLimiter:    settleRateLimiter,
		authMiddleware:       authMiddleware,
		metricsHandler:       metricsHandler,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.authMiddleware != nil {
		v1.Use(r.authMiddleware.Authenticate())
	}

	users := v1.Group("/users")
	{
		users.POST("", r.userController.Create)
		users.GET("", r.userController.List)
		users.GET("/:id", r.userController.Get)
		users.POST("/:id/deposits", r.userController.Deposit)
		users.GET("/:id/coupons", r.userController.ListCoupons)
		users.GET("/:id/settlements", r.settlementController.ListByUser)
	}

	stores := v1.Group("/stores")
	{
		stores.POST("", r.storeController.Create)
		stores.GET("/:id", r.storeController.Get)
		stores.PATCH("/:id/coupon", r.storeController.ConfigureCoupon)
	}

	receipts := v1.Group("/receipts")
	{
		receipts.POST("", r.receiptController.Create)
		receipts.GET("/:id", r.receiptController.Get)
		receipts.PUT("/:id/items/:itemId/assignees", r.receiptController.AssignItem)
		receipts.GET("/:id/split", r.receiptController.Split)
		receipts.GET("/:id/payment-summary", r.settlementController.PaymentSummary)

		settle := []gin.HandlerFunc{r.settlementController.Settle}
		if r.settleRateLimiter != nil {
			settle = append([]gin.HandlerFunc{r.settleRateLimiter.Middleware()}, settle...)
		}
		receipts.POST("/:id/settlements", settle...)
	}
}
