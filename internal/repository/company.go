package repository

import (
	"context"

	"github.com/Payphone-Digital/jobboard/internal/model"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	entityRepository[model.Company]
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{newEntityRepository[model.Company](db, CompanySchema, "company")}
}

// Update writes values on company. When skills is non-nil it becomes the
// company's full skill set.
func (r *CompanyRepository) Update(ctx context.Context, company *model.Company, values map[string]any, skills []model.Skill) error {
	var related any
	if skills != nil {
		related = skills
	}
	return r.UpdateWithAssociation(ctx, company, company.ID, values, "Skills", related)
}
