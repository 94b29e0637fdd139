package database

import (
	"github.com/Payphone-Digital/jobboard/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Skill{},
		&model.Category{},
		&model.Company{},
		&model.Job{},
		&model.Application{},
		&model.Blog{},
	)
}
