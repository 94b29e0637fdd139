package repository

import (
	"context"

	"github.com/Payphone-Digital/jobboard/internal/model"
	ctxutil "github.com/Payphone-Digital/jobboard/pkg/context"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	entityRepository[model.Application]
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{newEntityRepository[model.Application](db, ApplicationSchema, "application")}
}

// UpdateStatus moves every application matching filter to change.Status and
// appends change to its history. It returns the rows matched.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, filter listing.Filter, change model.StatusChange) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateStatus")

	logger.DebugWithContext(ctx, "Updating application status").
		String("status", change.Status).
		Log()

	return r.UpdateWhere(ctx, filter, map[string]any{
		"status":           change.Status,
		"history":          gorm.Expr("COALESCE(history, '[]'::jsonb) || ?::jsonb", datatypes.JSONSlice[model.StatusChange]{change}),
		"updated_by_id":    change.UpdatedBy.UserID,
		"updated_by_email": change.UpdatedBy.Email,
	})
}
