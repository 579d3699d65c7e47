package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sekyere/schoolfees-api/internal/config"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	domainRepo "github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/handler"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/middleware"
	"github.com/sekyere/schoolfees-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Fee       *handler.FeeHandler
	Payment   *handler.PaymentHandler
	Debt      *handler.DebtHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Fee catalog and issuance
	registerFeeRoutes(protected, h, deps)

	// Payments
	registerPaymentRoutes(protected, h, deps)

	// Outstanding balances
	registerDebtRoutes(protected, h)
}

func registerFeeRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	fees := protected.Group("/fees")
	{
		// Issuance runs use idempotency middleware so a retried request
		// cannot double-issue a term
		issue := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})
		billing := middleware.RequireRole(entity.RoleAdmin, entity.RoleBursar)

		fees.POST("/structures/issue", billing, issue, h.Fee.IssueSchoolFees)
		fees.GET("/structures", h.Fee.ListFeeStructures)
		fees.GET("/structures/:id", h.Fee.GetFeeStructure)
		fees.DELETE("/structures/:id", billing, h.Fee.DeleteFeeStructure)

		fees.POST("/feeding/issue", billing, issue, h.Fee.IssueFeedingFee)
		fees.GET("/feeding", h.Fee.ListFeedingRates)
		fees.GET("/feeding/students", h.Fee.ListStudentFeedingFees)
		fees.DELETE("/feeding/:id", billing, h.Fee.DeleteFeedingRate)

		fees.GET("/students", h.Fee.ListStudentFees)
		fees.GET("/students/:studentID/statement", h.Fee.GetStudentStatement)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := protected.Group("/payments")
	payments.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleBursar))
	{
		// Receipt numbers are unique, but idempotency keys also shield
		// auto-generated receipts from client retries
		idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})

		payments.POST("/fees", idempotent, h.Payment.RecordFeePayment)
		payments.POST("/feeding", idempotent, h.Payment.RecordFeedingPayment)
		payments.GET("/fees/:studentFeeID", h.Payment.ListFeePayments)
		payments.GET("/feeding/:studentFeedingFeeID", h.Payment.ListFeedingPayments)
	}
}

func registerDebtRoutes(protected *gin.RouterGroup, h *Handlers) {
	debts := protected.Group("/debts")
	{
		debts.GET("/classes/:classID", h.Debt.SchoolFeeOwers)
		debts.GET("/feeding", h.Debt.FeedingFeeOwers)
	}
}
