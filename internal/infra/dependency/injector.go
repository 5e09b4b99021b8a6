// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/receipt-split/backend/config"
	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/application/usecase/coupon"
	"github.com/receipt-split/backend/internal/application/usecase/receipt"
	"github.com/receipt-split/backend/internal/application/usecase/settlement"
	"github.com/receipt-split/backend/internal/application/usecase/split"
	"github.com/receipt-split/backend/internal/application/usecase/store"
	"github.com/receipt-split/backend/internal/application/usecase/user"
	"github.com/receipt-split/backend/internal/infra/cache"
	"github.com/receipt-split/backend/internal/infra/metrics"
	"github.com/receipt-split/backend/internal/infra/server/router"
	"github.com/receipt-split/backend/internal/integration/adapters"
	"github.com/receipt-split/backend/internal/integration/email"
	"github.com/receipt-split/backend/internal/integration/entrypoint/controller"
	"github.com/receipt-split/backend/internal/integration/entrypoint/middleware"
	"github.com/receipt-split/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	EmailQueue  adapter.EmailQueueRepository
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.SettlementMetrics
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	storeRepo := persistence.NewStoreRepository(db)
	couponRepo := persistence.NewCouponRepository(db)
	receiptRepo := persistence.NewReceiptRepository(db)
	settlementRepo := persistence.NewSettlementRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	locker := adapters.NewRedisUserLocker(redisClient, cfg.Redis.LockTTL)
	emailService := email.NewService(emailQueueRepo)
	settlementMetrics := metrics.NewSettlementMetrics()
	splitter := split.NewService()
	settler := settlement.NewService(splitter)

	// Create user use cases
	createUserUseCase := user.NewCreateUserUseCase(userRepo)
	getUserUseCase := user.NewGetUserUseCase(userRepo)
	listUsersUseCase := user.NewListUsersUseCase(userRepo)
	depositUseCase := user.NewDepositBalanceUseCase(userRepo, locker)

	// Create store and coupon use cases
	createStoreUseCase := store.NewCreateStoreUseCase(storeRepo)
	getStoreUseCase := store.NewGetStoreUseCase(storeRepo)
	configureCouponUseCase := store.NewConfigureCouponUseCase(storeRepo)
	awardCouponUseCase := coupon.NewAwardCouponUseCase(storeRepo, couponRepo)
	listCouponsUseCase := coupon.NewListCouponsUseCase(userRepo, couponRepo)

	// Create receipt use cases
	createReceiptUseCase := receipt.NewCreateReceiptUseCase(receiptRepo, userRepo, storeRepo, receipt.Options{
		UploaderIsParticipant: cfg.Settlement.UploaderIsParticipant,
	})
	getReceiptUseCase := receipt.NewGetReceiptUseCase(receiptRepo)
	assignItemUseCase := receipt.NewAssignItemUseCase(receiptRepo, userRepo)
	calculateSplitUseCase := split.NewCalculateSplitUseCase(receiptRepo, splitter)

	// Create settlement use cases
	paymentSummaryUseCase := settlement.NewGetPaymentSummaryUseCase(receiptRepo, splitter)
	settleReceiptUseCase := settlement.NewSettleReceiptUseCase(
		receiptRepo,
		settlementRepo,
		locker,
		settler,
		splitter,
		awardCouponUseCase,
		emailService,
		settlementMetrics,
		settlement.Options{CashEarnsCoupons: cfg.Settlement.CashEarnsCoupons},
	)
	listSettlementsUseCase := settlement.NewListSettlementsUseCase(settlementRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cache.HealthChecker(redisClient))

	userController := controller.NewUserController(
		createUserUseCase,
		getUserUseCase,
		listUsersUseCase,
		depositUseCase,
		listCouponsUseCase,
	)

	storeController := controller.NewStoreController(
		createStoreUseCase,
		getStoreUseCase,
		configureCouponUseCase,
	)

	receiptController := controller.NewReceiptController(
		createReceiptUseCase,
		getReceiptUseCase,
		assignItemUseCase,
		calculateSplitUseCase,
	)

	settlementController := controller.NewSettlementController(
		paymentSummaryUseCase,
		settleReceiptUseCase,
		listSettlementsUseCase,
	)

	// E2E runs settle far more often than a person would.
	settleQuota := cfg.RateLimit.MaxRequests
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		settleQuota = 1000
	}
	settleRateLimiter := middleware.NewRateLimiter(settleQuota, cfg.RateLimit.Window)

	var authMiddleware *middleware.AuthMiddleware
	if cfg.JWT.Secret != "" {
		authMiddleware = middleware.NewAuthMiddleware(adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer))
	}

	// Create router
	r := router.NewRouter(
		healthController,
		userController,
		storeController,
		receiptController,
		settlementController,
		settleRateLimiter,
		authMiddleware,
		settlementMetrics.Handler(),
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Router:      r,
		EmailQueue:  emailQueueRepo,
		RateLimiter: settleRateLimiter,
		Metrics:     settlementMetrics,
	}
}
