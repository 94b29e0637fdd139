package service

import (
	"context"
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
)

var companyPopulation = []listing.Directive{listing.Populate("skills", "_id", "name")}

type CompanyService struct {
	repoCompany *repository.CompanyRepository
	repoSkill   *repository.SkillRepository
	cache       *CacheService
}

func NewCompanyService(repoCompany *repository.CompanyRepository, repoSkill *repository.SkillRepository, cache *CacheService) *CompanyService {
	return &CompanyService{
		repoCompany: repoCompany,
		repoSkill:   repoSkill,
		cache:       cache,
	}
}

// List pages through companies. HR actors only see companies they created.
func (s *CompanyService) List(ctx context.Context, req listing.Request, actor *listing.ActorScope) (listing.Result[model.Company], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListCompanies")

	logger.InfoWithContext(ctx, "Listing companies").
		Bool("hr_scope", actor.IsHR()).
		Log()

	return list[model.Company](ctx, s.repoCompany, req, listing.Options{
		Schema:            repository.CompanySchema,
		Actor:             actor,
		Scope:             listing.CreatorScope,
		DefaultSort:       constants.SortNewest,
		DefaultPopulation: companyPopulation,
	})
}

// GetByID is public and served from cache when possible.
func (s *CompanyService) GetByID(ctx context.Context, rawID string) (*model.Company, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetCompany")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}

	key := constants.CacheKeyCompany + id.String()
	var cached model.Company
	if s.cache.Get(ctx, key, &cached) {
		logger.DebugWithContext(ctx, "Company served from cache").
			String("company_id", id.String()).
			Log()
		return &cached, nil
	}

	company, err := s.repoCompany.GetByID(ctx, id, companyPopulation)
	if err != nil {
		return nil, storeError(err, apperrors.ErrCompanyNotFound)
	}
	s.cache.Set(ctx, key, company)
	return company, nil
}

func (s *CompanyService) Create(ctx context.Context, req *dto.CreateCompanyRequest, actor *listing.ActorScope) (*model.Company, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateCompany")

	skills, err := s.skills(ctx, req.Skills)
	if err != nil {
		return nil, err
	}

	company := &model.Company{
		Name:        strings.TrimSpace(req.Name),
		Address:     req.Address,
		Description: req.Description,
		Logo:        req.Logo,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Country:     req.Country,
		WorkingTime: req.WorkingTime,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Skills:      skills,
	}
	company.CreatedBy = stamp(actor)

	if err := s.repoCompany.Create(ctx, company); err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Company created").
		String("company_id", company.ID.String()).
		String("name", company.Name).
		Log()
	return company, nil
}

// Update changes a company. HR actors may only change companies they created.
func (s *CompanyService) Update(ctx context.Context, rawID string, req *dto.UpdateCompanyRequest, actor *listing.ActorScope) (*model.Company, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateCompany")

	company, err := s.owned(ctx, rawID, actor)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	setIf(updates, "name", trimmed(req.Name))
	setIf(updates, "address", req.Address)
	setIf(updates, "description", req.Description)
	setIf(updates, "logo", req.Logo)
	setIf(updates, "industry", req.Industry)
	setIf(updates, "company_size", req.CompanySize)
	setIf(updates, "country", req.Country)
	setIf(updates, "working_time", req.WorkingTime)
	setIf(updates, "latitude", req.Latitude)
	setIf(updates, "longitude", req.Longitude)

	var skills []model.Skill
	if req.Skills != nil {
		if skills, err = s.skills(ctx, req.Skills); err != nil {
			return nil, err
		}
	}

	by := stamp(actor)
	updates["updated_by_id"] = by.UserID
	updates["updated_by_email"] = by.Email

	if err := s.repoCompany.Update(ctx, company, updates, skills); err != nil {
		return nil, storeError(err, apperrors.ErrCompanyNotFound)
	}
	s.invalidate(ctx, company.ID)

	fresh, err := s.repoCompany.GetByID(ctx, company.ID, companyPopulation)
	if err != nil {
		return nil, storeError(err, apperrors.ErrCompanyNotFound)
	}
	return fresh, nil
}

func (s *CompanyService) Delete(ctx context.Context, rawID string, actor *listing.ActorScope) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteCompany")

	id, err := parseID("id", rawID)
	if err != nil {
		return err
	}

	rows, err := s.repoCompany.SoftDelete(ctx, listing.And(listing.Eq("_id", id), listing.CreatorScope(actor)), stamp(actor))
	if err != nil {
		return storeError(err, nil)
	}
	if rows == 0 {
		return apperrors.ErrCompanyNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

// owned loads the company if actor may modify it.
func (s *CompanyService) owned(ctx context.Context, rawID string, actor *listing.ActorScope) (*model.Company, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	company, err := s.repoCompany.FindOne(ctx, listing.And(listing.Eq("_id", id), listing.CreatorScope(actor)), nil)
	if err != nil {
		return nil, storeError(err, apperrors.ErrCompanyNotFound)
	}
	return company, nil
}

func (s *CompanyService) skills(ctx context.Context, raw []string) ([]model.Skill, error) {
	return loadSkills(ctx, s.repoSkill, raw)
}

// Cached jobs embed company name and logo, so they go too.
func (s *CompanyService) invalidate(ctx context.Context, id uuid.UUID) {
	s.cache.Invalidate(ctx, constants.CacheKeyCompany+id.String())
	s.cache.InvalidatePrefix(ctx, constants.CacheKeyJob)
}

// loadSkills resolves skill IDs, failing when any of them does not exist.
func loadSkills(ctx context.Context, repo *repository.SkillRepository, raw []string) ([]model.Skill, error) {
	ids, err := parseIDs("skills", raw)
	if err != nil {
		return nil, err
	}
	skills, err := repo.GetMany(ctx, ids)
	if err != nil {
		return nil, storeError(err, nil)
	}
	if len(skills) != len(ids) {
		return nil, apperrors.ErrSkillNotFound
	}
	return skills, nil
}

func setIf[V any](updates map[string]any, column string, value *V) {
	if value != nil {
		updates[column] = *value
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
