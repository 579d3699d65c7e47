package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/config"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Surface unique-constraint violations as gorm.ErrDuplicatedKey so
		// the services can distinguish create races from other store errors.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff accounts
		&entity.User{},

		// Roster and calendar
		&entity.Class{},
		&entity.Student{},
		&entity.AcademicTerm{},

		// Fee catalog
		&entity.FeeStructure{},
		&entity.FeedingFeeRate{},

		// Student ledgers
		&entity.StudentFee{},
		&entity.StudentFeedingFee{},

		// Payments
		&entity.FeePayment{},
		&entity.FeedingFeePayment{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the admin account, academic terms and, when enabled,
// a demo roster.
func SeedDefaultData(db *gorm.DB, cfg *config.SeedConfig) error {
	log.Println("Seeding default data...")

	seedAdminUser(db)
	seedAcademicTerms(db)

	if cfg != nil && cfg.DemoRoster {
		seedDemoRoster(db)
	}

	log.Println("Default data seeding completed")
	return nil
}

// seedAdminUser creates the bootstrap admin account if configured via
// environment variables.
func seedAdminUser(db *gorm.DB) {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail == "" || adminPassword == "" {
		return
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Printf("Admin user already exists: %s", adminEmail)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash admin password: %v", err)
		return
	}

	if adminName == "" {
		adminName = "School Admin"
	}
	firstName := adminName
	lastName := ""
	for i, c := range adminName {
		if c == ' ' {
			firstName = adminName[:i]
			lastName = adminName[i+1:]
			break
		}
	}

	adminUser := entity.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      entity.RoleAdmin,
		IsActive:  true,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", adminEmail)
}

// seedAcademicTerms ensures the current academic year has its three terms so
// due-date defaults and feeding date validation work out of the box.
func seedAcademicTerms(db *gorm.DB) {
	year := fmt.Sprintf("%d", time.Now().Year())

	terms := []entity.AcademicTerm{
		{
			AcademicYear: year,
			Term:         1,
			StartDate:    time.Date(time.Now().Year(), time.January, 8, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(time.Now().Year(), time.April, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			AcademicYear: year,
			Term:         2,
			StartDate:    time.Date(time.Now().Year(), time.May, 6, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(time.Now().Year(), time.August, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			AcademicYear: year,
			Term:         3,
			StartDate:    time.Date(time.Now().Year(), time.September, 2, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(time.Now().Year(), time.December, 6, 0, 0, 0, 0, time.UTC),
		},
	}

	for i := range terms {
		var existing entity.AcademicTerm
		err := db.Where("academic_year = ? AND term = ?", terms[i].AcademicYear, terms[i].Term).
			First(&existing).Error
		if err != nil {
			if err := db.Create(&terms[i]).Error; err != nil {
				log.Printf("Warning: failed to seed term %d/%s: %v", terms[i].Term, year, err)
			}
		}
	}
}

// seedDemoRoster creates a small set of classes and students for local
// development.
func seedDemoRoster(db *gorm.DB) {
	var count int64
	db.Model(&entity.Class{}).Count(&count)
	if count > 0 {
		return
	}

	classes := []entity.Class{
		{Name: "Primary 1", Level: 1, IsActive: true},
		{Name: "Primary 2", Level: 2, IsActive: true},
		{Name: "Primary 3", Level: 3, IsActive: true},
	}
	for i := range classes {
		if err := db.Create(&classes[i]).Error; err != nil {
			log.Printf("Warning: failed to seed class %s: %v", classes[i].Name, err)
			return
		}
	}

	names := [][2]string{
		{"Ama", "Mensah"}, {"Kofi", "Owusu"}, {"Abena", "Boateng"},
		{"Kwame", "Asante"}, {"Esi", "Appiah"}, {"Yaw", "Agyeman"},
	}
	year := fmt.Sprintf("%d", time.Now().Year())
	for i, n := range names {
		student := entity.Student{
			FirstName: n[0],
			LastName:  n[1],
			Admission: fmt.Sprintf("ADM-%s-%04d", year, i+1),
			ClassID:   classes[i%len(classes)].ID,
			IsActive:  true,
		}
		if err := db.Create(&student).Error; err != nil {
			log.Printf("Warning: failed to seed student %s: %v", student.DisplayName(), err)
		}
	}
	log.Println("Demo roster seeded")
}
