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

var userPopulation = []listing.Directive{listing.Populate("role", "_id", "name")}

type UserService struct {
	repoUser   *repository.UserRepository
	repoRole   *repository.RoleRepository
	adminEmail string
}

func NewUserService(repoUser *repository.UserRepository, repoRole *repository.RoleRepository, adminEmail string) *UserService {
	return &UserService{
		repoUser:   repoUser,
		repoRole:   repoRole,
		adminEmail: normalizeEmail(adminEmail),
	}
}

// List pages through users. Passwords are never selected.
func (s *UserService) List(ctx context.Context, req listing.Request) (listing.Result[model.User], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListUsers")

	plan, err := resolve(req, listing.Options{
		Schema:            repository.UserSchema,
		DefaultSort:       constants.SortNewest,
		DefaultPopulation: userPopulation,
	})
	if err != nil {
		return listing.Result[model.User]{}, err
	}
	plan = withoutPassword(plan)

	logger.InfoWithContext(ctx, "Listing users").
		Int("current", plan.Page.Current).
		Int("page_size", plan.Page.PageSize).
		Log()

	return runList[model.User](ctx, s.repoUser, plan)
}

func withoutPassword(plan listing.Plan) listing.Plan {
	if !slices.Contains(plan.Omit, repository.PasswordColumn) {
		plan.Omit = append(slices.Clone(plan.Omit), repository.PasswordColumn)
	}
	return plan
}

func (s *UserService) GetByID(ctx context.Context, rawID string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetUser")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}

	user, err := s.repoUser.GetByID(ctx, id, userPopulation)
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// Create adds a user with the given role. Used by admins; self sign-up goes
// through AuthService.Register.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest, actor *listing.ActorScope) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateUser")

	email := normalizeEmail(req.Email)
	logger.InfoWithContext(ctx, "Creating new user").
		String("email", email).
		Log()

	if err := s.validateEmail(ctx, email); err != nil {
		return nil, err
	}

	role, err := s.role(ctx, req.Role)
	if err != nil {
		return nil, err
	}

	company, err := companyRef(req.Company)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Password:     hashedPassword,
		Age:          req.Age,
		Gender:       req.Gender,
		Address:      req.Address,
		RoleID:       &role.ID,
		Company:      company,
		TokenVersion: 1,
	}
	user.CreatedBy = stamp(actor)

	if err := s.repoUser.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, storeError(err, nil)
	}
	user.Role = role

	logger.InfoWithContext(ctx, "User created successfully").
		String("user_id", user.ID.String()).
		String("role", role.Name).
		Log()
	return user, nil
}

func (s *UserService) Update(ctx context.Context, rawID string, req *dto.UpdateUserRequest, actor *listing.ActorScope) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateUser")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Role != nil {
		role, err := s.role(ctx, *req.Role)
		if err != nil {
			return nil, err
		}
		updates["role_id"] = role.ID
	}
	if req.Company != nil {
		company, err := companyRef(req.Company)
		if err != nil {
			return nil, err
		}
		updates["company_id"] = company.RefID
		updates["company_name"] = company.Name
	}

	if len(updates) > 0 {
		by := stamp(actor)
		updates["updated_by_id"] = by.UserID
		updates["updated_by_email"] = by.Email

		rows, err := s.repoUser.Updates(ctx, id, updates)
		if err != nil {
			return nil, storeError(err, nil)
		}
		if rows == 0 {
			return nil, apperrors.ErrUserNotFound
		}
	}

	logger.InfoWithContext(ctx, "User updated").
		String("user_id", id.String()).
		Int("fields", len(updates)).
		Log()

	return s.GetByID(ctx, id.String())
}

// Delete soft deletes a user. The configured admin account is protected.
func (s *UserService) Delete(ctx context.Context, rawID string, actor *listing.ActorScope) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteUser")

	id, err := parseID("id", rawID)
	if err != nil {
		return err
	}

	user, err := s.repoUser.GetByID(ctx, id, nil)
	if err != nil {
		return storeError(err, apperrors.ErrUserNotFound)
	}
	if normalizeEmail(user.Email) == s.adminEmail {
		logger.WarnWithContext(ctx, "Attempt to delete the admin account").
			String("user_id", id.String()).
			Log()
		return apperrors.ErrProtectedAdmin
	}

	rows, err := s.repoUser.SoftDelete(ctx, listing.Eq("_id", id), stamp(actor))
	if err != nil {
		return storeError(err, nil)
	}
	if rows == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListCVs returns the CVs attached to the user's profile.
func (s *UserService) ListCVs(ctx context.Context, userID uuid.UUID) ([]model.AttachedCV, error) {
	user, err := s.repoUser.GetByID(ctx, userID, nil)
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	if user.AttachedCVs == nil {
		return []model.AttachedCV{}, nil
	}
	return user.AttachedCVs, nil
}

func (s *UserService) AttachCV(ctx context.Context, userID uuid.UUID, req *dto.AttachCVRequest) ([]model.AttachedCV, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "AttachCV")

	cvs, err := s.ListCVs(ctx, userID)
	if err != nil {
		return nil, err
	}
	cvs = append(slices.Clone(cvs), model.AttachedCV{Name: strings.TrimSpace(req.Name), URL: strings.TrimSpace(req.URL)})

	if err := s.repoUser.SetAttachedCVs(ctx, userID, cvs); err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	return cvs, nil
}

// RemoveCV drops the CV at index.
func (s *UserService) RemoveCV(ctx context.Context, userID uuid.UUID, index int) ([]model.AttachedCV, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "RemoveCV")

	cvs, err := s.ListCVs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(cvs) {
		return nil, apperrors.NotFound("attached cv")
	}
	cvs = slices.Delete(slices.Clone(cvs), index, index+1)

	if err := s.repoUser.SetAttachedCVs(ctx, userID, cvs); err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	return cvs, nil
}

// validateEmail checks the email is not already used
func (s *UserService) validateEmail(ctx context.Context, email string) error {
	taken, err := s.repoUser.Exists(ctx, listing.Eq("email", email))
	if err != nil {
		return storeError(err, nil)
	}
	if taken {
		logger.WarnWithContext(ctx, "Email already exists").
			String("email", email).
			Log()
		return apperrors.ErrEmailExists
	}
	return nil
}

func (s *UserService) role(ctx context.Context, rawID string) (*model.Role, error) {
	id, err := parseID("role", rawID)
	if err != nil {
		return nil, err
	}
	role, err := s.repoRole.GetByID(ctx, id, nil)
	if err != nil {
		return nil, storeError(err, apperrors.ErrRoleNotFound)
	}
	return role, nil
}

func companyRef(req *dto.CompanyRefRequest) (model.CompanyRef, error) {
	if req == nil || req.ID == "" {
		return model.CompanyRef{}, nil
	}
	id, err := parseID("company._id", req.ID)
	if err != nil {
		return model.CompanyRef{}, err
	}
	return model.CompanyRef{RefID: &id, Name: req.Name}, nil
}
