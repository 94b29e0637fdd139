package service

import (
	"context"
	"strings"
	"time"

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

var jobPopulation = []listing.Directive{
	listing.Populate("company", "_id", "name", "logo"),
	listing.Populate("skills", "_id", "name"),
	listing.Populate("category", "_id", "name"),
}

func activeJobs() listing.Filter {
	return listing.Eq("isActive", true)
}

type JobService struct {
	repoJob      *repository.JobRepository
	repoSkill    *repository.SkillRepository
	repoCategory *repository.CategoryRepository
	repoCompany  *repository.CompanyRepository
	cache        *CacheService
}

func NewJobService(
	repoJob *repository.JobRepository,
	repoSkill *repository.SkillRepository,
	repoCategory *repository.CategoryRepository,
	repoCompany *repository.CompanyRepository,
	cache *CacheService,
) *JobService {
	return &JobService{
		repoJob:      repoJob,
		repoSkill:    repoSkill,
		repoCategory: repoCategory,
		repoCompany:  repoCompany,
		cache:        cache,
	}
}

// List pages through all jobs, active or not. HR actors only see jobs they
// created.
func (s *JobService) List(ctx context.Context, req listing.Request, actor *listing.ActorScope) (listing.Result[model.Job], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListJobs")

	logger.InfoWithContext(ctx, "Listing jobs").
		Bool("hr_scope", actor.IsHR()).
		Log()

	return list[model.Job](ctx, s.repoJob, req, listing.Options{
		Schema:            repository.JobSchema,
		Actor:             actor,
		Scope:             listing.CreatorScope,
		DefaultSort:       constants.SortNewest,
		DefaultPopulation: jobPopulation,
	})
}

// Search is the public job search: active jobs whose name contains name and,
// when given, whose location is exactly location. Other keys follow the
// listing query language.
func (s *JobService) Search(ctx context.Context, req listing.Request, name, location string) (listing.Result[model.Job], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "SearchJobs")

	base := activeJobs()
	if name != "" {
		base = listing.And(base, listing.Contains("name", name))
	}
	if location != "" {
		base = listing.And(base, listing.Eq("location", location))
	}

	logger.InfoWithContext(ctx, "Searching jobs").
		String("name", name).
		String("location", location).
		Log()

	return s.public(ctx, req, base, constants.SortNewest)
}

func (s *JobService) ByCompany(ctx context.Context, req listing.Request, rawCompanyID string) (listing.Result[model.Job], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "JobsByCompany")

	companyID, err := parseID("companyId", rawCompanyID)
	if err != nil {
		return listing.Result[model.Job]{}, err
	}
	return s.public(ctx, req, listing.And(activeJobs(), listing.Eq("companyId", companyID)), constants.SortNewest)
}

func (s *JobService) ByCategory(ctx context.Context, req listing.Request, rawCategoryID string) (listing.Result[model.Job], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "JobsByCategory")

	categoryID, err := parseID("categoryId", rawCategoryID)
	if err != nil {
		return listing.Result[model.Job]{}, err
	}
	return s.public(ctx, req, listing.And(activeJobs(), listing.Eq("categoryId", categoryID)), constants.SortRecentlyUpdated)
}

// BySkills lists active jobs requiring at least one of the given skills.
func (s *JobService) BySkills(ctx context.Context, req listing.Request, rawSkills []string) (listing.Result[model.Job], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "JobsBySkills")

	skillIDs, err := parseIDs("skills", rawSkills)
	if err != nil {
		return listing.Result[model.Job]{}, err
	}
	return s.public(ctx, req, listing.And(activeJobs(), listing.In("skills", skillIDs)), constants.SortRecentlyUpdated)
}

func (s *JobService) public(ctx context.Context, req listing.Request, base listing.Filter, sort string) (listing.Result[model.Job], error) {
	return list[model.Job](ctx, s.repoJob, req, listing.Options{
		Schema:            repository.JobSchema,
		Base:              base,
		DefaultSort:       sort,
		DefaultPopulation: jobPopulation,
	})
}

// Similar returns up to limit other active jobs sharing a skill or the
// category with the given job, newest first.
func (s *JobService) Similar(ctx context.Context, rawID string, rawLimit string) ([]model.Job, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "SimilarJobs")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	limit := similarLimit(rawLimit)

	job, err := s.repoJob.GetByID(ctx, id, []listing.Directive{listing.Populate("skills", "_id")})
	if err != nil {
		return nil, storeError(err, apperrors.ErrJobNotFound)
	}

	var related []listing.Filter
	if len(job.Skills) > 0 {
		skillIDs := make([]uuid.UUID, len(job.Skills))
		for i, skill := range job.Skills {
			skillIDs[i] = skill.ID
		}
		related = append(related, listing.In("skills", skillIDs))
	}
	if job.CategoryID != nil {
		related = append(related, listing.Eq("categoryId", *job.CategoryID))
	}
	if len(related) == 0 {
		return []model.Job{}, nil
	}

	filter := listing.And(activeJobs(), listing.Ne("_id", id), listing.Or(related...))
	jobs, err := s.repoJob.FindAll(ctx, filter, listing.ParseSort(constants.SortNewest, repository.JobSchema), limit, jobPopulation)
	if err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Similar jobs found").
		String("job_id", id.String()).
		Int("limit", limit).
		Int("returned_count", len(jobs)).
		Log()
	return jobs, nil
}

// similarLimit coerces the requested limit, defaulting to 5 and capping at 20.
func similarLimit(raw string) int {
	return min(listing.PositiveOr(raw, constants.DefaultSimilarLimit), constants.MaxSimilarLimit)
}

// GetByID is public and served from cache when possible.
func (s *JobService) GetByID(ctx context.Context, rawID string) (*model.Job, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetJob")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}

	key := constants.CacheKeyJob + id.String()
	var cached model.Job
	if s.cache.Get(ctx, key, &cached) {
		logger.DebugWithContext(ctx, "Job served from cache").
			String("job_id", id.String()).
			Log()
		return &cached, nil
	}

	job, err := s.repoJob.GetByID(ctx, id, jobPopulation)
	if err != nil {
		return nil, storeError(err, apperrors.ErrJobNotFound)
	}
	s.cache.Set(ctx, key, job)
	return job, nil
}

func (s *JobService) Create(ctx context.Context, req *dto.CreateJobRequest, actor *listing.ActorScope) (*model.Job, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateJob")

	if err := checkDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	skills, err := loadSkills(ctx, s.repoSkill, req.Skills)
	if err != nil {
		return nil, err
	}
	companyID, err := s.companyID(ctx, req.Company)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.categoryID(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	job := &model.Job{
		Name:        strings.TrimSpace(req.Name),
		Skills:      skills,
		CategoryID:  categoryID,
		CompanyID:   &companyID,
		Location:    strings.TrimSpace(req.Location),
		Salary:      req.Salary,
		Quantity:    req.Quantity,
		Level:       req.Level,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive == nil || *req.IsActive,
		IsHot:       req.IsHot,
	}
	job.CreatedBy = stamp(actor)

	if err := s.repoJob.Create(ctx, job); err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Job created").
		String("job_id", job.ID.String()).
		String("name", job.Name).
		Log()
	return job, nil
}

// Update changes a job. HR actors may only change jobs they created; other
// jobs are reported as not found.
func (s *JobService) Update(ctx context.Context, rawID string, req *dto.UpdateJobRequest, actor *listing.ActorScope) (*model.Job, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateJob")

	job, err := s.owned(ctx, rawID, actor)
	if err != nil {
		return nil, err
	}

	start, end := job.StartDate, job.EndDate
	if req.StartDate != nil {
		start = req.StartDate
	}
	if req.EndDate != nil {
		end = req.EndDate
	}
	if err := checkDates(start, end); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	setIf(updates, "name", trimmed(req.Name))
	setIf(updates, "location", trimmed(req.Location))
	setIf(updates, "salary", req.Salary)
	setIf(updates, "quantity", req.Quantity)
	setIf(updates, "level", req.Level)
	setIf(updates, "description", req.Description)
	setIf(updates, "start_date", req.StartDate)
	setIf(updates, "end_date", req.EndDate)
	setIf(updates, "is_active", req.IsActive)
	setIf(updates, "is_hot", req.IsHot)

	if req.Company != nil {
		companyID, err := s.companyID(ctx, *req.Company)
		if err != nil {
			return nil, err
		}
		updates["company_id"] = companyID
	}
	if req.Category != nil {
		categoryID, err := s.categoryID(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = categoryID
	}

	var skills []model.Skill
	if req.Skills != nil {
		if skills, err = loadSkills(ctx, s.repoSkill, req.Skills); err != nil {
			return nil, err
		}
	}

	by := stamp(actor)
	updates["updated_by_id"] = by.UserID
	updates["updated_by_email"] = by.Email

	if err := s.repoJob.Update(ctx, job, updates, skills); err != nil {
		return nil, storeError(err, apperrors.ErrJobNotFound)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyJob+job.ID.String())

	fresh, err := s.repoJob.GetByID(ctx, job.ID, jobPopulation)
	if err != nil {
		return nil, storeError(err, apperrors.ErrJobNotFound)
	}
	return fresh, nil
}

func (s *JobService) Delete(ctx context.Context, rawID string, actor *listing.ActorScope) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteJob")

	id, err := parseID("id", rawID)
	if err != nil {
		return err
	}

	rows, err := s.repoJob.SoftDelete(ctx, listing.And(listing.Eq("_id", id), listing.CreatorScope(actor)), stamp(actor))
	if err != nil {
		return storeError(err, nil)
	}
	if rows == 0 {
		return apperrors.ErrJobNotFound
	}
	s.cache.Invalidate(ctx, constants.CacheKeyJob+id.String())
	return nil
}

// Owned loads a job the actor may manage: any job for admins, only their
// own for HR.
func (s *JobService) Owned(ctx context.Context, rawID string, actor *listing.ActorScope) (*model.Job, error) {
	return s.owned(ctx, rawID, actor)
}

func (s *JobService) owned(ctx context.Context, rawID string, actor *listing.ActorScope) (*model.Job, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	job, err := s.repoJob.FindOne(ctx, listing.And(listing.Eq("_id", id), listing.CreatorScope(actor)), nil)
	if err != nil {
		return nil, storeError(err, apperrors.ErrJobNotFound)
	}
	return job, nil
}

func (s *JobService) companyID(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := parseID("company", raw)
	if err != nil {
		return uuid.Nil, err
	}
	exists, err := s.repoCompany.Exists(ctx, listing.Eq("_id", id))
	if err != nil {
		return uuid.Nil, storeError(err, nil)
	}
	if !exists {
		return uuid.Nil, apperrors.ErrCompanyNotFound
	}
	return id, nil
}

// categoryID resolves an optional category. Empty means none.
func (s *JobService) categoryID(ctx context.Context, raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := parseID("category", raw)
	if err != nil {
		return nil, err
	}
	exists, err := s.repoCategory.Exists(ctx, listing.Eq("_id", id))
	if err != nil {
		return nil, storeError(err, nil)
	}
	if !exists {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &id, nil
}

func checkDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.InvalidArgument("endDate must not be before startDate")
	}
	return nil
}
