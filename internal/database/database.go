package database

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studiocrm/crm-api/internal/config"
	"github.com/studiocrm/crm-api/internal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.FollowUpTask{},
		&models.InteractionLog{},
		&models.OrderLog{},
		&models.POPLog{},
		&models.RepNote{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// SeedDemoUsers inserts the demo accounts if they are missing. Safe to run
// on every startup.
func SeedDemoUsers(db *gorm.DB) error {
	demo := []struct {
		username string
		password string
		role     models.Role
	}{
		{"polina", "polinapass", models.RoleAdmin},
		{"tanya", "tanyapass", models.RoleCreative},
		{"rory", "rorypass", models.RoleSales},
	}

	for _, d := range demo {
		var existing models.User
		err := db.Where("username = ?", d.username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check demo user %s: %w", d.username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}

		user := models.User{
			Username:     d.username,
			PasswordHash: string(hash),
			Role:         d.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create demo user %s: %w", d.username, err)
		}
		log.Printf("Seeded demo user %s (%s)", d.username, d.role)
	}

	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
