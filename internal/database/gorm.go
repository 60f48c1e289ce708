package database

import (
	"fmt"
	"log"

	"admin-gateway/internal/config"
	"admin-gateway/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var GormDB *gorm.DB

// InitGorm opens the database and runs auto-migration. PostgreSQL is used
// when DB_HOST is set; otherwise it falls back to a local SQLite file so a
// fresh checkout runs without an external database.
func InitGorm(cfg *config.Config) {
	var err error

	if cfg.DBHost != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		GormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		log.Println("Connected to PostgreSQL successfully")
	} else {
		GormDB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			log.Fatalf("Failed to open SQLite database: %v", err)
		}
		log.Printf("Using SQLite database at %s", cfg.DBPath)
	}

	if err := Migrate(GormDB); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}

	log.Println("Database migration completed")
}

// Migrate runs auto-migration for all persistence models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.WebhookConfig{},
		&models.WebhookEvent{},
		&models.User{},
		&models.UserSession{},
		&models.SiteSetting{},
	)
}

// SyncWebhookConfig reconciles the env config with the webhook_configs row.
// Values already stored in the database win over env; env values fill gaps
// and seed the row on first boot.
func SyncWebhookConfig(cfg *config.Config) {
	var wh models.WebhookConfig
	err := GormDB.Order("id").First(&wh).Error
	if err == gorm.ErrRecordNotFound {
		wh = models.WebhookConfig{
			Endpoint:    cfg.PublicURL + "/webhook",
			VerifyToken: cfg.VerifyToken,
		}
		if cfg.AppID != "" {
			wh.AppID = &cfg.AppID
		}
		if cfg.WhatsAppBusinessAccountID != "" {
			wh.BusinessAccountID = &cfg.WhatsAppBusinessAccountID
		}
		if cfg.PhoneNumberID != "" {
			wh.PhoneNumberID = &cfg.PhoneNumberID
		}
		if cfg.WhatsAppToken != "" {
			wh.AccessToken = &cfg.WhatsAppToken
		}
		if err := GormDB.Create(&wh).Error; err != nil {
			log.Printf("Error seeding webhook config: %v", err)
			return
		}
		log.Println("Webhook config seeded from environment")
		return
	}
	if err != nil {
		log.Printf("Error loading webhook config: %v", err)
		return
	}

	if wh.VerifyToken != "" {
		cfg.VerifyToken = wh.VerifyToken
	}
	if wh.AccessToken != nil && *wh.AccessToken != "" {
		cfg.WhatsAppToken = *wh.AccessToken
	}
	if wh.PhoneNumberID != nil && *wh.PhoneNumberID != "" {
		cfg.PhoneNumberID = *wh.PhoneNumberID
	}
	if wh.BusinessAccountID != nil && *wh.BusinessAccountID != "" {
		cfg.WhatsAppBusinessAccountID = *wh.BusinessAccountID
	}
	log.Println("Webhook config synchronized from database")
}
