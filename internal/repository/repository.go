package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/jobboard/internal/model"
	ctxutil "github.com/Payphone-Digital/jobboard/pkg/context"
	"github.com/Payphone-Digital/jobboard/pkg/database"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// entityRepository holds the operations every entity shares. Reads go
// through the listing store so by-id lookups, listings and existence checks
// all compile the same filter language.
type entityRepository[T any] struct {
	db     *gorm.DB
	store  *database.Store[T]
	entity string
}

func newEntityRepository[T any](db *gorm.DB, schema *listing.Schema, entity string) entityRepository[T] {
	return entityRepository[T]{
		db:     db,
		store:  database.NewStore[T](db, schema),
		entity: entity,
	}
}

func (r *entityRepository[T]) Schema() *listing.Schema {
	return r.store.Schema()
}

// Store exposes the read side for listing.List.
func (r *entityRepository[T]) Store() listing.Store[T] {
	return r.store
}

// List counts and fetches one page for plan.
func (r *entityRepository[T]) List(ctx context.Context, plan listing.Plan) (listing.Result[T], error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "List")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			String("entity", r.entity).
			Err(err).
			Log()
		return listing.Result[T]{}, err
	}

	start := time.Now()
	result, err := listing.List[T](ctx, r.store, plan)
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list entities").
			String("entity", r.entity).
			Int("offset", plan.Offset()).
			Int("limit", plan.Limit()).
			Duration(duration).
			Err(err).
			Log()
		return listing.Result[T]{}, err
	}

	logger.DebugWithContext(ctx, "Entities listed successfully").
		String("entity", r.entity).
		Int("current", result.Meta.Current).
		Int("page_size", result.Meta.PageSize).
		Int64("total", result.Meta.Total).
		Int("returned_count", len(result.Result)).
		Duration(duration).
		Log()

	return result, nil
}

// FindAll returns every match in sort order, at most limit rows when limit
// is positive.
func (r *entityRepository[T]) FindAll(ctx context.Context, filter listing.Filter, sort []listing.SortField, limit int, population []listing.Directive) ([]T, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "FindAll")

	start := time.Now()
	items, err := r.store.FindAll(ctx, filter, sort, limit, population)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to find entities").
			String("entity", r.entity).
			Int("limit", limit).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}
	return items, nil
}

// FindOne returns the first match or gorm.ErrRecordNotFound.
func (r *entityRepository[T]) FindOne(ctx context.Context, filter listing.Filter, population []listing.Directive) (*T, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "FindOne")

	start := time.Now()
	item, err := r.store.FindOne(ctx, filter, population)
	duration := time.Since(start)

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.DebugWithContext(ctx, "Entity not found").
				String("entity", r.entity).
				Duration(duration).
				Log()
		} else {
			logger.ErrorWithContext(ctx, "Failed to find entity").
				String("entity", r.entity).
				Duration(duration).
				Err(err).
				Log()
		}
		return nil, err
	}
	return item, nil
}

func (r *entityRepository[T]) GetByID(ctx context.Context, id uuid.UUID, population []listing.Directive) (*T, error) {
	return r.FindOne(ctx, listing.Eq("_id", id), population)
}

func (r *entityRepository[T]) Exists(ctx context.Context, filter listing.Filter) (bool, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "Exists")

	exists, err := r.store.Exists(ctx, filter)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to check existence").
			String("entity", r.entity).
			Err(err).
			Log()
	}
	return exists, err
}

// Create inserts entity. Associations already loaded on it are linked, not
// rewritten.
func (r *entityRepository[T]) Create(ctx context.Context, entity *T) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(entity)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create entity").
			String("entity", r.entity).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Entity created successfully").
		String("entity", r.entity).
		Duration(duration).
		Log()
	return nil
}

// Updates writes columns of the live row id and reports the rows matched.
func (r *entityRepository[T]) Updates(ctx context.Context, id uuid.UUID, values map[string]any) (int64, error) {
	return r.UpdateWhere(ctx, listing.Eq("_id", id), values)
}

// UpdateWhere writes columns of every live row matching filter. An empty
// filter updates nothing.
func (r *entityRepository[T]) UpdateWhere(ctx context.Context, filter listing.Filter, values map[string]any) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateWhere")

	cond := database.Compile(filter, r.Schema())
	if cond == nil {
		return 0, nil
	}

	start := time.Now()
	result := r.db.WithContext(ctx).Model(new(T)).Where(cond).Updates(values)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update entity").
			String("entity", r.entity).
			Duration(duration).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.DebugWithContext(ctx, "Entity updated").
		String("entity", r.entity).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()
	return result.RowsAffected, nil
}

// SoftDelete stamps deletedBy on the live rows matching filter and marks
// them deleted in one transaction.
func (r *entityRepository[T]) SoftDelete(ctx context.Context, filter listing.Filter, actor model.Actor) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "SoftDelete")

	cond := database.Compile(filter, r.Schema())
	if cond == nil {
		return 0, nil
	}

	start := time.Now()
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(new(T)).Where(cond).Updates(map[string]any{
			"deleted_by_id":    actor.UserID,
			"deleted_by_email": actor.Email,
		}).Error; err != nil {
			return err
		}

		result := tx.Where(cond).Delete(new(T))
		affected = result.RowsAffected
		return result.Error
	})
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete entity").
			String("entity", r.entity).
			Duration(duration).
			Err(err).
			Log()
		return 0, err
	}

	logger.InfoWithContext(ctx, "Entity soft deleted").
		String("entity", r.entity).
		Int64("rows_affected", affected).
		Duration(duration).
		Log()
	return affected, nil
}

// UpdateWithAssociation writes values on owner and replaces its many-to-many
// association name with related in one transaction. A nil related leaves the
// association untouched.
func (r *entityRepository[T]) UpdateWithAssociation(ctx context.Context, owner *T, id uuid.UUID, values map[string]any, name string, related any) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateWithAssociation")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(values) > 0 {
			if err := tx.Model(new(T)).Where("id = ?", id).Updates(values).Error; err != nil {
				return err
			}
		}
		if related == nil {
			return nil
		}
		return tx.Model(owner).Association(name).Replace(related)
	})
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to update entity").
			String("entity", r.entity).
			String("id", id.String()).
			String("association", name).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.DebugWithContext(ctx, "Entity updated").
		String("entity", r.entity).
		String("id", id.String()).
		Bool("association_replaced", related != nil).
		Duration(duration).
		Log()
	return nil
}
