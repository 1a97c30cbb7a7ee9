package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/seobrain/hosting_affiliate/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Package{},
		&models.UserPackage{},
		&models.Referral{},
		&models.Payment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("✅ Database migration successful")
	return nil
}

// SeedPlatformAccount ensures the distinguished platform user exists. All
// activation fees are paid to this account, and it is the only account that
// can log in to the admin surface.
func SeedPlatformAccount(db *gorm.DB, username, email, password string) error {
	if username == "" {
		return errors.New("platform username is not configured")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for platform account: %w", err)
	}
	if count > 0 {
		log.Println("Platform account already exists.")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash platform account password: %w", err)
	}

	platform := models.User{
		Email:     email,
		Username:  username,
		FirstName: "Platform",
		Role:      models.RoleAdmin,
		Password:  string(hashedPassword),
	}
	if err := db.Create(&platform).Error; err != nil {
		return fmt.Errorf("failed to seed platform account: %w", err)
	}

	log.Println("✅ Platform account seeded successfully")
	return nil
}

// SeedPackages loads the hosting tier catalog when the table is empty.
// Catalog data is otherwise managed out-of-band.
func SeedPackages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Package{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check package catalog: %w", err)
	}
	if count > 0 {
		return nil
	}

	catalog := []models.Package{
		{Name: "Starter", Price: 25.00, DailyPaymentAmount: 0.50},
		{Name: "Business", Price: 60.00, DailyPaymentAmount: 1.25},
		{Name: "Enterprise", Price: 150.00, DailyPaymentAmount: 3.00},
	}
	if err := db.Create(&catalog).Error; err != nil {
		return fmt.Errorf("failed to seed package catalog: %w", err)
	}

	log.Println("✅ Package catalog seeded successfully")
	return nil
}
