package repository

import (
	"context"

	"github.com/Payphone-Digital/jobboard/internal/model"
	"gorm.io/gorm"
)

type JobRepository struct {
	entityRepository[model.Job]
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{newEntityRepository[model.Job](db, JobSchema, "job")}
}

// Update writes values on job. When skills is non-nil it becomes the job's
// full skill set.
func (r *JobRepository) Update(ctx context.Context, job *model.Job, values map[string]any, skills []model.Skill) error {
	var related any
	if skills != nil {
		related = skills
	}
	return r.UpdateWithAssociation(ctx, job, job.ID, values, "Skills", related)
}
