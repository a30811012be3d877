package configs

import (
	"log/slog"
	"strings"

	"sabores/entity"
	"sabores/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// สร้าง admin ครั้งแรก
func SeedAdmin(database *gorm.DB, cfg *Config, l *logger.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		l.Info("seed_admin", "", "skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := database.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		l.Info("seed_admin", "", "admin already exists", slog.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Admin",
		Role:     entity.RoleAdmin,
		IsActive: true,
	}
	return database.Create(&admin).Error
}

// Seed หมวดหมู่เมนูเริ่มต้น
func SeedCategories(database *gorm.DB, l *logger.Logger) error {
	for _, name := range []string{"Drinks", "Main Dishes", "Desserts"} {
		var cat entity.Category
		err := database.Where(entity.Category{Name: name}).
			Attrs(entity.Category{IsActive: true}).
			FirstOrCreate(&cat).Error
		if err != nil {
			return err
		}
	}
	l.Info("seed_categories", "", "categories seeded")
	return nil
}
