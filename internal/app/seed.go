package app

import (
	"errors"

	"blog_backend/internal/auth"
	"blog_backend/internal/config"
	"blog_backend/internal/logger"
	"blog_backend/internal/models"

	"gorm.io/gorm"
)

// SeedFirstAdmin creates the initial admin account when the users table
// holds no admin yet. Without it nobody could ever call the admin-only
// user endpoints.
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.Admin.Password == "" {
		return errors.New("no admin user exists and admin.password is not configured")
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Login:        cfg.Admin.Login,
		PasswordHash: hash,
		Email:        cfg.Admin.Email,
		Role:         models.UserRoleAdmin,
		IsVerified:   true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded first admin user", "login", admin.Login)
	return nil
}
