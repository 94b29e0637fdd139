package repository

import (
	"context"

	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillRepository struct {
	entityRepository[model.Skill]
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{newEntityRepository[model.Skill](db, SkillSchema, "skill")}
}

// GetMany loads the skills with the given IDs. Missing IDs are simply absent
// from the result.
func (r *SkillRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]model.Skill, error) {
	if len(ids) == 0 {
		return []model.Skill{}, nil
	}
	return r.FindAll(ctx, listing.In("_id", ids), nil, 0, nil)
}

type CategoryRepository struct {
	entityRepository[model.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{newEntityRepository[model.Category](db, CategorySchema, "category")}
}
