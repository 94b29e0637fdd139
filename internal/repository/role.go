package repository

import (
	"context"

	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"gorm.io/gorm"
)

type RoleRepository struct {
	entityRepository[model.Role]
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{newEntityRepository[model.Role](db, RoleSchema, "role")}
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	return r.FindOne(ctx, listing.Eq("name", name), nil)
}
