package database

import (
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureIndexes creates the indexes gorm tags cannot express: case-insensitive
// and partial unique indexes, and the composites the listings sort and
// filter on.
func EnsureIndexes(db *gorm.DB) error {
	uniqueIndexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_roles_name_live ON roles (name) WHERE deleted_at IS NULL;",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_skills_name_ci ON skills (LOWER(name)) WHERE deleted_at IS NULL;",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_ci ON categories (LOWER(name)) WHERE deleted_at IS NULL;",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_user_job_cv ON applications (user_id, job_id, cv_url) WHERE deleted_at IS NULL;",
	}

	// Listing indexes
	listingIndexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_jobs_active_created ON jobs (is_active, created_at DESC) WHERE deleted_at IS NULL;",
		"CREATE INDEX IF NOT EXISTS idx_jobs_active_updated ON jobs (is_active, updated_at DESC) WHERE deleted_at IS NULL;",
		"CREATE INDEX IF NOT EXISTS idx_jobs_created_by ON jobs (created_by_id, created_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_companies_created_by ON companies (created_by_id, created_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_job_skills_skill ON job_skills (skill_id, job_id);",
		"CREATE INDEX IF NOT EXISTS idx_company_skills_skill ON company_skills (skill_id, company_id);",
		"CREATE INDEX IF NOT EXISTS idx_applications_job_created ON applications (job_id, created_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_applications_user_created ON applications (user_id, created_at DESC);",
	}

	// A failing unique index means duplicate rows already exist; the
	// service-level checks still hold, so startup continues.
	for _, indexSQL := range append(uniqueIndexes, listingIndexes...) {
		if err := db.Exec(indexSQL).Error; err != nil {
			logger.GetLogger().Warn("Failed to create index",
				zap.String("sql", indexSQL),
				zap.Error(err),
			)
		}
	}

	return nil
}
