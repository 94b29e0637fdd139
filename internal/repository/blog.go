package repository

import (
	"context"

	"github.com/Payphone-Digital/jobboard/internal/model"
	ctxutil "github.com/Payphone-Digital/jobboard/pkg/context"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogRepository struct {
	entityRepository[model.Blog]
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{newEntityRepository[model.Blog](db, BlogSchema, "blog")}
}

// IncrementViews bumps the view counter of a live blog without touching
// updated_at. It returns the rows matched.
func (r *BlogRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "IncrementViews")

	result := r.db.WithContext(ctx).Model(&model.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to increment blog views").
			String("blog_id", id.String()).
			Err(result.Error).
			Log()
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
