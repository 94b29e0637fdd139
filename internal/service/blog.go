package service

import (
	"context"
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
	"gorm.io/datatypes"
)

var blogPopulation = []listing.Directive{listing.Populate("author", "_id", "name", "email")}

type BlogService struct {
	repoBlog *repository.BlogRepository
}

func NewBlogService(repoBlog *repository.BlogRepository) *BlogService {
	return &BlogService{repoBlog: repoBlog}
}

// List is public and pages through live blogs, newest first by default.
func (s *BlogService) List(ctx context.Context, req listing.Request) (listing.Result[model.Blog], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListBlogs")

	return list[model.Blog](ctx, s.repoBlog, req, listing.Options{
		Schema:            repository.BlogSchema,
		DefaultSort:       constants.SortNewest,
		DefaultPopulation: blogPopulation,
	})
}

// ByTags returns every live blog carrying at least one of tags, newest
// first. The result is not paginated.
func (s *BlogService) ByTags(ctx context.Context, tags []string) ([]model.Blog, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "BlogsByTags")

	tags = cleanTags(tags)
	if len(tags) == 0 {
		return []model.Blog{}, nil
	}

	logger.InfoWithContext(ctx, "Listing blogs by tags").
		Strings("tags", tags).
		Log()

	blogs, err := s.repoBlog.FindAll(ctx, listing.In("tags", tags), listing.ParseSort(constants.SortNewest, repository.BlogSchema), 0, blogPopulation)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return blogs, nil
}

// GetByID counts a view and returns the blog with its author.
func (s *BlogService) GetByID(ctx context.Context, rawID string) (*model.Blog, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetBlog")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repoBlog.IncrementViews(ctx, id)
	if err != nil {
		return nil, storeError(err, nil)
	}
	if rows == 0 {
		return nil, apperrors.ErrBlogNotFound
	}

	blog, err := s.repoBlog.GetByID(ctx, id, blogPopulation)
	if err != nil {
		return nil, storeError(err, apperrors.ErrBlogNotFound)
	}
	return blog, nil
}

// Create publishes a blog authored by actor.
func (s *BlogService) Create(ctx context.Context, req *dto.CreateBlogRequest, actor *listing.ActorScope) (*model.Blog, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateBlog")

	blog := &model.Blog{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Status:      strings.TrimSpace(req.Status),
		Tags:        datatypes.JSONSlice[string](cleanTags(req.Tags)),
		MetaData:    datatypes.JSONMap(req.MetaData),
	}
	blog.CreatedBy = stamp(actor)
	if actor != nil {
		author := actor.ActorID
		blog.AuthorID = &author
	}

	if err := s.repoBlog.Create(ctx, blog); err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Blog created").
		String("blog_id", blog.ID.String()).
		String("title", blog.Title).
		Log()
	return blog, nil
}

// Update changes a blog. HR actors may only change blogs they created.
func (s *BlogService) Update(ctx context.Context, rawID string, req *dto.UpdateBlogRequest, actor *listing.ActorScope) (*model.Blog, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateBlog")

	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	setIf(updates, "title", trimmed(req.Title))
	setIf(updates, "content", req.Content)
	setIf(updates, "description", req.Description)
	setIf(updates, "thumbnail", req.Thumbnail)
	setIf(updates, "status", trimmed(req.Status))
	if req.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](cleanTags(req.Tags))
	}
	if req.MetaData != nil {
		updates["meta_data"] = datatypes.JSONMap(req.MetaData)
	}

	by := stamp(actor)
	updates["updated_by_id"] = by.UserID
	updates["updated_by_email"] = by.Email

	rows, err := s.repoBlog.UpdateWhere(ctx, listing.And(listing.Eq("_id", id), listing.CreatorScope(actor)), updates)
	if err != nil {
		return nil, storeError(err, nil)
	}
	if rows == 0 {
		return nil, apperrors.ErrBlogNotFound
	}

	blog, err := s.repoBlog.GetByID(ctx, id, blogPopulation)
	if err != nil {
		return nil, storeError(err, apperrors.ErrBlogNotFound)
	}
	return blog, nil
}

// Delete soft deletes a blog. HR actors may only delete blogs they created.
func (s *BlogService) Delete(ctx context.Context, rawID string, actor *listing.ActorScope) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteBlog")

	id, err := parseID("id", rawID)
	if err != nil {
		return err
	}

	rows, err := s.repoBlog.SoftDelete(ctx, listing.And(listing.Eq("_id", id), listing.CreatorScope(actor)), stamp(actor))
	if err != nil {
		return storeError(err, nil)
	}
	if rows == 0 {
		return apperrors.ErrBlogNotFound
	}
	return nil
}

// cleanTags trims tags and drops blanks and repeats, keeping first-seen order.
func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}
