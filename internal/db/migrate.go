package db

import (
	"github.com/ndemidova/ringshop-backend/config"
	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/pkg/logger"
	"github.com/ndemidova/ringshop-backend/pkg/util"
)

// Migrate runs database migrations.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.Order{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedAdmin creates the initial staff account if it does not exist yet,
// so the admin API is usable on a fresh database.
func SeedAdmin(cfg *config.AdminConfig) error {
	var count int64
	if err := DB.Model(&model.User{}).Where("email = ?", cfg.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Admin account already exists, skipping seed", map[string]interface{}{
			"email": cfg.Email,
		})
		return nil
	}

	hash, err := util.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        cfg.Email,
		PasswordHash: hash,
		Name:         cfg.Name,
	}
	if err := DB.Create(admin).Error; err != nil {
		logger.Error("Failed to seed admin account", err, map[string]interface{}{
			"email": cfg.Email,
		})
		return err
	}

	logger.Info("Admin account seeded", map[string]interface{}{
		"email": cfg.Email,
	})
	return nil
}
