package service

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	apperrors "github.com/Payphone-Digital/jobboard/internal/errors"
	"github.com/Payphone-Digital/jobboard/internal/repository"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tagMembership = `"blogs"."id" IN (SELECT blogs.id FROM blogs, jsonb_array_elements_text(blogs.tags) AS tag WHERE tag IN ($1,$2))`

func TestCleanTags(t *testing.T) {
	got := cleanTags([]string{" go ", "", "backend", "go", "  "})
	if !reflect.DeepEqual(got, []string{"go", "backend"}) {
		t.Errorf("Expected [go backend], got %v", got)
	}
	if got := cleanTags(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestBlogListFiltersByTags(t *testing.T) {
	count, find := listingSQL(t, func(db *gorm.DB) error {
		_, err := NewBlogService(repository.NewBlogRepository(db)).List(context.Background(), listing.Request{RawQuery: "tags=go,backend"})
		return err
	})

	if !strings.Contains(count, tagMembership) {
		t.Errorf("Expected tag membership test, got %s", count)
	}
	if !strings.Contains(count, `"blogs"."deleted_at" IS NULL`) {
		t.Errorf("Expected deleted blogs to be excluded, got %s", count)
	}
	if !strings.Contains(find, `ORDER BY "blogs"."created_at" DESC`) {
		t.Errorf("Expected newest first, got %s", find)
	}
}

func TestBlogsByTags(t *testing.T) {
	db, mock, statements := capturingDB(t)
	mock.ExpectQuery("find").
		WithArgs("go", "backend").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	blogs, err := NewBlogService(repository.NewBlogRepository(db)).ByTags(context.Background(), []string{" go ", "", "backend", "go"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(blogs) != 0 {
		t.Errorf("Expected no blogs, got %d", len(blogs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}

	issued := statements()
	if len(issued) != 1 {
		t.Fatalf("Expected one query, got %v", issued)
	}
	if !strings.Contains(issued[0], tagMembership) {
		t.Errorf("Expected tag membership test, got %s", issued[0])
	}
	if !strings.Contains(issued[0], `ORDER BY "blogs"."created_at" DESC`) {
		t.Errorf("Expected newest first, got %s", issued[0])
	}
	if strings.Contains(issued[0], "LIMIT") {
		t.Errorf("Expected an unpaginated query, got %s", issued[0])
	}
}

func TestBlogsByBlankTags(t *testing.T) {
	db, _, statements := capturingDB(t)

	blogs, err := NewBlogService(repository.NewBlogRepository(db)).ByTags(context.Background(), []string{"", " "})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(blogs) != 0 {
		t.Errorf("Expected no blogs, got %d", len(blogs))
	}
	if issued := statements(); len(issued) != 0 {
		t.Errorf("Expected no query, got %v", issued)
	}
}

func TestBlogGetByIDCountsView(t *testing.T) {
	db, mock, statements := capturingDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("update").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := NewBlogService(repository.NewBlogRepository(db)).GetByID(context.Background(), uuid.NewString())
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Expected not found for a missing blog, got %v", err)
	}

	issued := statements()
	if len(issued) != 1 {
		t.Fatalf("Expected only the view update, got %v", issued)
	}
	update := issued[0]
	if !strings.Contains(update, `"views"=views + $1`) {
		t.Errorf("Expected an atomic increment, got %s", update)
	}
	if !strings.Contains(update, `"blogs"."deleted_at" IS NULL`) {
		t.Errorf("Expected deleted blogs to be skipped, got %s", update)
	}
	if strings.Contains(update, "updated_at") {
		t.Errorf("Expected updatedAt to be left alone, got %s", update)
	}
}

func TestBlogGetByIDInvalidID(t *testing.T) {
	db, _, statements := capturingDB(t)

	_, err := NewBlogService(repository.NewBlogRepository(db)).GetByID(context.Background(), "not-an-id")
	if !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Errorf("Expected invalid argument, got %v", err)
	}
	if issued := statements(); len(issued) != 0 {
		t.Errorf("Expected no query, got %v", issued)
	}
}

func TestBlogDeleteScopesHRToCreator(t *testing.T) {
	db, mock, statements := capturingDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("stamp").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("delete").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewBlogService(repository.NewBlogRepository(db)).Delete(context.Background(), uuid.NewString(), hrActor())
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Expected not found when nothing matched, got %v", err)
	}

	for _, sql := range statements() {
		if !strings.Contains(sql, `"blogs"."created_by_id" = $`) {
			t.Errorf("Expected creator restriction, got %s", sql)
		}
	}
}
