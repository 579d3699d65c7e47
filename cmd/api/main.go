package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sekyere/schoolfees-api/internal/application/service"
	"github.com/sekyere/schoolfees-api/internal/config"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/infrastructure/database"
	"github.com/sekyere/schoolfees-api/internal/infrastructure/repository"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/handler"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/routes"
	"github.com/sekyere/schoolfees-api/pkg/email"
	"github.com/sekyere/schoolfees-api/pkg/printer"
	"github.com/sekyere/schoolfees-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Seed); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	catalogRepo := repository.NewFeeCatalogRepository(db)
	studentFeeRepo := repository.NewStudentFeeRepository(db)
	studentFeedingFeeRepo := repository.NewStudentFeedingFeeRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service when SMTP delivery is enabled
	var emailService *email.EmailService
	if cfg.Email.Enabled {
		emailService = email.NewEmailService(email.EmailConfig{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromName:     cfg.Email.FromName,
			FromEmail:    cfg.Email.FromEmail,
			SchoolName:   cfg.School.Name,
		})
	}

	// Initialize thermal printer
	receiptPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.DevicePath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		receiptPrinter = printer.NewNullPrinter()
	}

	school := entity.ReceiptHeader{
		SchoolName: cfg.School.Name,
		Address:    cfg.School.Address,
		Phone:      cfg.School.Phone,
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(catalogRepo, calendarRepo)
	ledgerService := service.NewLedgerService(studentFeeRepo, studentFeedingFeeRepo)
	issuanceService := service.NewIssuanceService(catalogService, ledgerService, rosterRepo, calendarRepo)
	paymentService := service.NewPaymentService(paymentRepo, studentFeeRepo, studentFeedingFeeRepo, emailService, receiptPrinter, school)
	debtService := service.NewDebtService(studentFeeRepo, studentFeedingFeeRepo, rosterRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, calendarRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Fee:       handler.NewFeeHandler(catalogService, ledgerService, issuanceService, rosterRepo),
		Payment:   handler.NewPaymentHandler(paymentService),
		Debt:      handler.NewDebtHandler(debtService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
