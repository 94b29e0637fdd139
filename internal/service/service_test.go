package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Payphone-Digital/jobboard/config"
	apperrors "github.com/Payphone-Digital/jobboard/internal/errors"
	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/Payphone-Digital/jobboard/internal/repository"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.SetLogger(zap.NewNop())
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound *apperrors.DomainError
		code     string
	}{
		{"record not found", gorm.ErrRecordNotFound, apperrors.ErrJobNotFound, apperrors.CodeNotFound},
		{"not found without fallback", gorm.ErrRecordNotFound, nil, apperrors.CodeDependencyFailure},
		{"duplicate key", gorm.ErrDuplicatedKey, nil, apperrors.CodeConflict},
		{"invalid argument", fmt.Errorf("%w: _id must be a valid id", listing.ErrInvalidArgument), nil, apperrors.CodeInvalidArgument},
		{"domain error passes through", apperrors.ErrForbidden, nil, apperrors.CodeForbidden},
		{"store failure", errors.New("connection reset"), nil, apperrors.CodeDependencyFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storeError(tt.err, tt.notFound)
			if !apperrors.HasCode(err, tt.code) {
				t.Errorf("Expected code %s, got %v", tt.code, err)
			}
		})
	}

	if storeError(nil, apperrors.ErrJobNotFound) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestStoreErrorInvalidArgumentMessage(t *testing.T) {
	err := storeError(fmt.Errorf("%w: skills must be a valid id, got x", listing.ErrInvalidArgument), nil)
	if got := apperrors.GetErrorMessage(err); got != "skills must be a valid id, got x" {
		t.Errorf("Expected prefix to be stripped, got %q", got)
	}
}

func TestParseIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := parseIDs("skills", []string{a.String(), " " + b.String(), a.String()})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reflect.DeepEqual(ids, []uuid.UUID{a, b}) {
		t.Errorf("Expected deduplicated ids in order, got %v", ids)
	}

	if _, err := parseIDs("skills", []string{a.String(), "not-an-id"}); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Errorf("Expected invalid argument, got %v", err)
	}
}

func TestSimilarLimit(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"", 5},
		{"abc", 5},
		{"0", 5},
		{"-3", 5},
		{"3", 3},
		{" 12 ", 12},
		{"08", 8},
		{"010", 10},
		{"50", 20},
	}

	for _, tt := range tests {
		if got := similarLimit(tt.raw); got != tt.expected {
			t.Errorf("similarLimit(%q) = %d, want %d", tt.raw, got, tt.expected)
		}
	}
}

func TestCheckDates(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	before := start.Add(-24 * time.Hour)
	after := start.Add(24 * time.Hour)

	if err := checkDates(&start, &after); err != nil {
		t.Errorf("Expected valid range, got %v", err)
	}
	if err := checkDates(&start, nil); err != nil {
		t.Errorf("Expected open range to be valid, got %v", err)
	}
	if err := checkDates(&start, &before); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Errorf("Expected invalid argument, got %v", err)
	}
}

func TestWithoutPassword(t *testing.T) {
	plan := withoutPassword(listing.Plan{Projection: listing.Projection{Include: []string{"name"}}})
	if !reflect.DeepEqual(plan.Omit, []string{"password"}) {
		t.Errorf("Expected password to be omitted, got %v", plan.Omit)
	}
	if !reflect.DeepEqual(plan.Projection.Include, []string{"name"}) {
		t.Errorf("Expected projection to be untouched, got %+v", plan.Projection)
	}

	again := withoutPassword(plan)
	if len(again.Omit) != 1 {
		t.Errorf("Expected password omitted once, got %v", again.Omit)
	}
}

func TestUserSchemaHidesPassword(t *testing.T) {
	q, err := listing.ParseQuery("password="+url.QueryEscape(`/^\$2a/`)+"&sort=password&fields=password,name", repository.UserSchema)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(q.Sort) != 0 {
		t.Errorf("Expected password sort to be dropped, got %v", q.Sort)
	}
	if !reflect.DeepEqual(q.Projection.Include, []string{"name"}) {
		t.Errorf("Expected password projection to be dropped, got %+v", q.Projection)
	}
	if _, ok := repository.UserSchema.Field("password"); ok {
		t.Error("Expected password to be unknown to the user schema")
	}
}

func TestSplitRefreshToken(t *testing.T) {
	id := uuid.New()

	gotID, secret, ok := splitRefreshToken(id.String() + ".s3cr3t")
	if !ok || gotID != id || secret != "s3cr3t" {
		t.Errorf("Expected (%s, s3cr3t, true), got (%s, %s, %v)", id, gotID, secret, ok)
	}

	for _, token := range []string{"", "no-dot", id.String() + ".", "not-a-uuid.secret"} {
		if _, _, ok := splitRefreshToken(token); ok {
			t.Errorf("Expected %q to be rejected", token)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Errorf("Expected lowercased trimmed email, got %q", got)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("123456")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !checkPassword(hash, "123456") {
		t.Error("Expected password to match its hash")
	}
	if checkPassword(hash, "654321") {
		t.Error("Expected wrong password to be rejected")
	}
}

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret",
		AccessDuration:  time.Minute,
		RefreshDuration: time.Hour,
	})
}

func TestJWTRoundTrip(t *testing.T) {
	jwtService := newTestJWTService()

	user := &model.User{Email: "hr@example.com", Role: &model.Role{Name: listing.RoleHR}, TokenVersion: 3}
	user.ID = uuid.New()

	token, err := jwtService.GenerateToken(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := jwtService.ValidateTokenWithVersion(token, 3)
	if err != nil {
		t.Fatalf("Expected valid token, got %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != listing.RoleHR {
		t.Errorf("Expected claims to match user, got %+v", claims)
	}

	if _, err := jwtService.ValidateTokenWithVersion(token, 4); err == nil {
		t.Error("Expected token from an older version to be rejected")
	}

	other := NewJWTService(config.JWTConfig{Secret: "other", AccessDuration: time.Minute})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Expected token signed with another secret to be rejected")
	}
}

func TestJWTExpired(t *testing.T) {
	jwtService := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessDuration: -time.Minute})

	user := &model.User{Email: "user@example.com"}
	user.ID = uuid.New()
	token, err := jwtService.GenerateToken(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := jwtService.ValidateToken(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	jwtService := newTestJWTService()

	token, err := jwtService.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.ContainsAny(token, "+/") {
		t.Errorf("Expected URL-safe token, got %q", token)
	}

	hash, err := jwtService.HashRefreshToken(token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !jwtService.VerifyRefreshToken(token, hash) {
		t.Error("Expected refresh token to verify")
	}
	if jwtService.VerifyRefreshToken(token+"x", hash) {
		t.Error("Expected altered refresh token to fail")
	}
}

func TestCacheServiceLocal(t *testing.T) {
	ctx := context.Background()
	cacheService := NewCacheService(nil, time.Minute)
	defer cacheService.Close()

	type entry struct {
		Name string `json:"name"`
	}

	var got entry
	if cacheService.Get(ctx, "job:1", &got) {
		t.Fatal("Expected a miss on an empty cache")
	}

	cacheService.Set(ctx, "job:1", entry{Name: "Backend Engineer"})
	cacheService.Set(ctx, "job:2", entry{Name: "Designer"})
	cacheService.Set(ctx, "company:1", entry{Name: "Acme"})

	if !cacheService.Get(ctx, "job:1", &got) || got.Name != "Backend Engineer" {
		t.Errorf("Expected cached job, got %+v", got)
	}

	cacheService.Invalidate(ctx, "job:1")
	if cacheService.Get(ctx, "job:1", &got) {
		t.Error("Expected job:1 to be invalidated")
	}

	cacheService.InvalidatePrefix(ctx, "job:")
	if cacheService.Get(ctx, "job:2", &got) {
		t.Error("Expected job:2 to be invalidated by prefix")
	}
	if !cacheService.Get(ctx, "company:1", &got) || got.Name != "Acme" {
		t.Errorf("Expected company:1 to survive, got %+v", got)
	}
}

func TestStampWithoutActor(t *testing.T) {
	if got := stamp(nil); got != (model.Actor{}) {
		t.Errorf("Expected zero actor, got %+v", got)
	}
}
