package service

import (
	"context"
	"errors"
	"slices"
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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobOwnerScope restricts HR actors to applications for jobs they created.
var JobOwnerScope = listing.OwnedBy("job.createdBy._id")

var (
	applicationPopulation = []listing.Directive{
		listing.Populate("user", "_id", "name", "email"),
		listing.Populate("job", "_id", "name"),
	}
	applicantPopulation = []listing.Directive{
		listing.Populate("user", "_id", "name", "email"),
	}
	appliedJobPopulation = []listing.Directive{
		listing.Populate("job", "_id", "name", "location", "salary", "isActive", "isHot").
			With(listing.Populate("company", "_id", "name", "logo")),
	}
)

type ApplicationService struct {
	repoApplication *repository.ApplicationRepository
	repoJob         *repository.JobRepository
	jobService      *JobService
}

func NewApplicationService(repoApplication *repository.ApplicationRepository, repoJob *repository.JobRepository, jobService *JobService) *ApplicationService {
	return &ApplicationService{
		repoApplication: repoApplication,
		repoJob:         repoJob,
		jobService:      jobService,
	}
}

// Create submits a CV to an active job. Applying twice to the same job with
// the same CV is a conflict.
func (s *ApplicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest, actor *listing.ActorScope) (*model.Application, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateApplication")

	jobID, err := parseID("jobId", req.JobID)
	if err != nil {
		return nil, err
	}

	open, err := s.repoJob.Exists(ctx, listing.And(listing.Eq("_id", jobID), listing.Eq("isActive", true)))
	if err != nil {
		return nil, storeError(err, nil)
	}
	if !open {
		return nil, apperrors.ErrJobNotFound
	}

	cvURL := strings.TrimSpace(req.CVURL)
	duplicate, err := s.repoApplication.Exists(ctx, listing.And(
		listing.Eq("user._id", actor.ActorID),
		listing.Eq("job._id", jobID),
		listing.Eq("cvUrl", cvURL),
	))
	if err != nil {
		return nil, storeError(err, nil)
	}
	if duplicate {
		logger.WarnWithContext(ctx, "Duplicate application").
			String("job_id", jobID.String()).
			Log()
		return nil, apperrors.ErrDuplicateApplication
	}

	email := normalizeEmail(req.Email)
	if email == "" {
		email = actor.Email
	}

	by := stamp(actor)
	application := &model.Application{
		UserID: actor.ActorID,
		JobID:  jobID,
		Email:  email,
		CVURL:  cvURL,
		Status: constants.ApplicationPending,
		History: datatypes.JSONSlice[model.StatusChange]{
			{Status: constants.ApplicationPending, UpdatedAt: time.Now(), UpdatedBy: by},
		},
	}
	application.CreatedBy = by

	if err := s.repoApplication.Create(ctx, application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Application created").
		String("application_id", application.ID.String()).
		String("job_id", jobID.String()).
		Log()
	return application, nil
}

// List pages through applications. HR actors only see applications to jobs
// they created.
func (s *ApplicationService) List(ctx context.Context, req listing.Request, actor *listing.ActorScope) (listing.Result[model.Application], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListApplications")

	return list[model.Application](ctx, s.repoApplication, req, listing.Options{
		Schema:            repository.ApplicationSchema,
		Actor:             actor,
		Scope:             JobOwnerScope,
		DefaultSort:       constants.SortNewest,
		DefaultPopulation: applicationPopulation,
	})
}

// ByJob lists the applications to one job the actor manages.
func (s *ApplicationService) ByJob(ctx context.Context, req listing.Request, rawJobID string, actor *listing.ActorScope) (listing.Result[model.Application], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ApplicationsByJob")

	job, err := s.jobService.Owned(ctx, rawJobID, actor)
	if err != nil {
		return listing.Result[model.Application]{}, err
	}

	return list[model.Application](ctx, s.repoApplication, req, listing.Options{
		Schema:            repository.ApplicationSchema,
		Base:              listing.Eq("job._id", job.ID),
		DefaultSort:       constants.SortNewest,
		DefaultPopulation: applicantPopulation,
	})
}

// ByUser lists the actor's own applications.
func (s *ApplicationService) ByUser(ctx context.Context, req listing.Request, actor *listing.ActorScope) (listing.Result[model.Application], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ApplicationsByUser")

	return list[model.Application](ctx, s.repoApplication, req, listing.Options{
		Schema:            repository.ApplicationSchema,
		Base:              listing.Eq("user._id", actor.ActorID),
		DefaultSort:       constants.SortNewest,
		DefaultPopulation: appliedJobPopulation,
	})
}

// UpdateStatus moves an application to status and records the change in its
// history.
func (s *ApplicationService) UpdateStatus(ctx context.Context, rawID, status string, actor *listing.ActorScope) (*model.Application, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateApplicationStatus")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(constants.ApplicationStatuses, status) {
		return nil, apperrors.ErrInvalidStatus
	}

	filter := listing.And(listing.Eq("_id", id), JobOwnerScope(actor))
	rows, err := s.repoApplication.UpdateStatus(ctx, filter, model.StatusChange{
		Status:    status,
		UpdatedAt: time.Now(),
		UpdatedBy: stamp(actor),
	})
	if err != nil {
		return nil, storeError(err, nil)
	}
	if rows == 0 {
		return nil, apperrors.ErrApplicationNotFound
	}

	logger.InfoWithContext(ctx, "Application status updated").
		String("application_id", id.String()).
		String("status", status).
		Log()

	application, err := s.repoApplication.GetByID(ctx, id, applicationPopulation)
	if err != nil {
		return nil, storeError(err, apperrors.ErrApplicationNotFound)
	}
	return application, nil
}
