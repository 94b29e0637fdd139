package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	apperrors "github.com/Payphone-Digital/jobboard/internal/errors"
	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/Payphone-Digital/jobboard/internal/repository"
	ctxutil "github.com/Payphone-Digital/jobboard/pkg/context"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type taxonomyRepository[T any] interface {
	lister[T]
	Schema() *listing.Schema
	GetByID(ctx context.Context, id uuid.UUID, population []listing.Directive) (*T, error)
	Exists(ctx context.Context, filter listing.Filter) (bool, error)
	Create(ctx context.Context, entity *T) error
	Updates(ctx context.Context, id uuid.UUID, values map[string]any) (int64, error)
	SoftDelete(ctx context.Context, filter listing.Filter, actor model.Actor) (int64, error)
}

// TaxonomyService manages a flat list of named terms: skills or categories.
// Names are unique ignoring case.
type TaxonomyService[T any] struct {
	repo     taxonomyRepository[T]
	entity   string
	notFound *apperrors.DomainError
	build    func(req *dto.TaxonomyRequest, by model.Actor) *T
}

func NewSkillService(repo *repository.SkillRepository) *TaxonomyService[model.Skill] {
	return &TaxonomyService[model.Skill]{
		repo:     repo,
		entity:   "skill",
		notFound: apperrors.ErrSkillNotFound,
		build: func(req *dto.TaxonomyRequest, by model.Actor) *model.Skill {
			skill := &model.Skill{
				Name:        strings.TrimSpace(req.Name),
				Description: req.Description,
				IsActive:    req.IsActive == nil || *req.IsActive,
			}
			skill.CreatedBy = by
			return skill
		},
	}
}

func NewCategoryService(repo *repository.CategoryRepository) *TaxonomyService[model.Category] {
	return &TaxonomyService[model.Category]{
		repo:     repo,
		entity:   "category",
		notFound: apperrors.ErrCategoryNotFound,
		build: func(req *dto.TaxonomyRequest, by model.Actor) *model.Category {
			category := &model.Category{
				Name:        strings.TrimSpace(req.Name),
				Description: req.Description,
				IsActive:    req.IsActive == nil || *req.IsActive,
			}
			category.CreatedBy = by
			return category
		},
	}
}

// List is public. search is matched as a case-insensitive substring of the
// name; the rest of the request follows the listing query language.
func (s *TaxonomyService[T]) List(ctx context.Context, req listing.Request, search string) (listing.Result[T], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "List")

	var base listing.Filter
	if search != "" {
		base = listing.Contains("name", search)
	}

	logger.InfoWithContext(ctx, "Listing taxonomy").
		String("entity", s.entity).
		String("search", search).
		Log()

	return list[T](ctx, s.repo, req, listing.Options{
		Schema:      s.repo.Schema(),
		Base:        base,
		DefaultSort: constants.SortRecentlyUpdated,
	})
}

func (s *TaxonomyService[T]) GetByID(ctx context.Context, rawID string) (*T, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetByID")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, id, nil)
	if err != nil {
		return nil, storeError(err, s.notFound)
	}
	return item, nil
}

func (s *TaxonomyService[T]) Create(ctx context.Context, req *dto.TaxonomyRequest, actor *listing.ActorScope) (*T, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Create")

	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	item := s.build(req, stamp(actor))
	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicate(name)
		}
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Taxonomy term created").
		String("entity", s.entity).
		String("name", name).
		Log()
	return item, nil
}

func (s *TaxonomyService[T]) Update(ctx context.Context, rawID string, req *dto.UpdateTaxonomyRequest, actor *listing.ActorScope) (*T, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Update")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := s.checkName(ctx, name, id); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		by := stamp(actor)
		updates["updated_by_id"] = by.UserID
		updates["updated_by_email"] = by.Email

		rows, err := s.repo.Updates(ctx, id, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, s.duplicate(*req.Name)
			}
			return nil, storeError(err, nil)
		}
		if rows == 0 {
			return nil, s.notFound
		}
	}

	return s.GetByID(ctx, id.String())
}

func (s *TaxonomyService[T]) Delete(ctx context.Context, rawID string, actor *listing.ActorScope) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Delete")

	id, err := parseID("id", rawID)
	if err != nil {
		return err
	}
	rows, err := s.repo.SoftDelete(ctx, listing.Eq("_id", id), stamp(actor))
	if err != nil {
		return storeError(err, nil)
	}
	if rows == 0 {
		return s.notFound
	}
	return nil
}

// checkName rejects a name already used by another live term, ignoring case.
func (s *TaxonomyService[T]) checkName(ctx context.Context, name string, self uuid.UUID) error {
	filter := listing.Matches("name", name)
	if self != uuid.Nil {
		filter = listing.And(filter, listing.Ne("_id", self))
	}

	taken, err := s.repo.Exists(ctx, filter)
	if err != nil {
		return storeError(err, nil)
	}
	if taken {
		logger.WarnWithContext(ctx, "Duplicate taxonomy name").
			String("entity", s.entity).
			String("name", name).
			Log()
		return s.duplicate(name)
	}
	return nil
}

func (s *TaxonomyService[T]) duplicate(name string) error {
	return apperrors.Conflict("%s %q already exists", s.entity, name)
}
