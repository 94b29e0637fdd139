package service

import (
	"context"
	"errors"
	"slices"
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

// builtinRoles are seeded at startup and referenced by name in authorization
// checks, so they keep their names and cannot be deleted.
var builtinRoles = []string{constants.RoleAdmin, constants.RoleHR, constants.RoleUser}

type RoleService struct {
	repoRole *repository.RoleRepository
}

func NewRoleService(repoRole *repository.RoleRepository) *RoleService {
	return &RoleService{repoRole: repoRole}
}

func (s *RoleService) List(ctx context.Context, req listing.Request) (listing.Result[model.Role], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListRoles")

	return list[model.Role](ctx, s.repoRole, req, listing.Options{
		Schema:      repository.RoleSchema,
		DefaultSort: constants.SortNewest,
	})
}

func (s *RoleService) GetByID(ctx context.Context, rawID string) (*model.Role, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetRole")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	role, err := s.repoRole.GetByID(ctx, id, nil)
	if err != nil {
		return nil, storeError(err, apperrors.ErrRoleNotFound)
	}
	return role, nil
}

func (s *RoleService) Create(ctx context.Context, req *dto.CreateRoleRequest, actor *listing.ActorScope) (*model.Role, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateRole")

	name := roleName(req.Name)
	if err := s.checkName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	role := &model.Role{
		Name:        name,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	role.CreatedBy = stamp(actor)

	if err := s.repoRole.Create(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateRole(name)
		}
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Role created").
		String("role_id", role.ID.String()).
		String("name", name).
		Log()
	return role, nil
}

// Update changes a role. Built-in roles may change everything but their name.
func (s *RoleService) Update(ctx context.Context, rawID string, req *dto.UpdateRoleRequest, actor *listing.ActorScope) (*model.Role, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateRole")

	role, err := s.GetByID(ctx, rawID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	name := role.Name
	if req.Name != nil {
		name = roleName(*req.Name)
		if name != role.Name {
			if isBuiltinRole(role.Name) {
				return nil, apperrors.ErrProtectedRole
			}
			if err := s.checkName(ctx, name, role.ID); err != nil {
				return nil, err
			}
			updates["name"] = name
		}
	}
	setIf(updates, "description", req.Description)
	setIf(updates, "is_active", req.IsActive)

	if len(updates) == 0 {
		return role, nil
	}

	by := stamp(actor)
	updates["updated_by_id"] = by.UserID
	updates["updated_by_email"] = by.Email

	rows, err := s.repoRole.Updates(ctx, role.ID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateRole(name)
		}
		return nil, storeError(err, nil)
	}
	if rows == 0 {
		return nil, apperrors.ErrRoleNotFound
	}

	return s.GetByID(ctx, role.ID.String())
}

// Delete soft deletes a role. Built-in roles cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, rawID string, actor *listing.ActorScope) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteRole")

	role, err := s.GetByID(ctx, rawID)
	if err != nil {
		return err
	}
	if isBuiltinRole(role.Name) {
		logger.WarnWithContext(ctx, "Attempt to delete a built-in role").
			String("name", role.Name).
			Log()
		return apperrors.ErrProtectedRole
	}

	rows, err := s.repoRole.SoftDelete(ctx, listing.Eq("_id", role.ID), stamp(actor))
	if err != nil {
		return storeError(err, nil)
	}
	if rows == 0 {
		return apperrors.ErrRoleNotFound
	}
	return nil
}

// checkName rejects a name already used by another live role.
func (s *RoleService) checkName(ctx context.Context, name string, self uuid.UUID) error {
	filter := listing.Eq("name", name)
	if self != uuid.Nil {
		filter = listing.And(filter, listing.Ne("_id", self))
	}

	taken, err := s.repoRole.Exists(ctx, filter)
	if err != nil {
		return storeError(err, nil)
	}
	if taken {
		return duplicateRole(name)
	}
	return nil
}

// roleName normalises a role name to the upper case form used in tokens.
func roleName(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func isBuiltinRole(name string) bool {
	return slices.Contains(builtinRoles, name)
}

func duplicateRole(name string) error {
	return apperrors.Conflict("role %q already exists", name)
}
