package database

import (
	"errors"
	"fmt"

	"github.com/Payphone-Digital/jobboard/config"
	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultRoles are created on every start if missing.
var DefaultRoles = []model.Role{
	{Name: constants.RoleAdmin, Description: "Full access", IsActive: true},
	{Name: constants.RoleHR, Description: "Manages own companies, jobs and their applications", IsActive: true},
	{Name: constants.RoleUser, Description: "Job seeker", IsActive: true},
}

// Seed creates initial data for the database
func Seed(db *gorm.DB, cfg config.SeedConfig) error {
	if err := SeedRoles(db); err != nil {
		return err
	}
	return SeedAdmin(db, cfg)
}

func SeedRoles(db *gorm.DB) error {
	for _, role := range DefaultRoles {
		if err := db.Where(model.Role{Name: role.Name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

// SeedAdmin creates the configured admin user if not exists
func SeedAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	var existingUser model.User
	result := db.Where("email = ?", cfg.AdminEmail).First(&existingUser)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	var adminRole model.Role
	if err := db.Where("name = ?", constants.RoleAdmin).First(&adminRole).Error; err != nil {
		return fmt.Errorf("admin role missing: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		Password:     string(hashedPassword),
		RoleID:       &adminRole.ID,
		TokenVersion: 1,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("Admin user seeded", zap.String("email", cfg.AdminEmail))
	return nil
}
