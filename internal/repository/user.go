package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Payphone-Digital/jobboard/internal/model"
	ctxutil "github.com/Payphone-Digital/jobboard/pkg/context"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// rolePopulation loads the role name for authentication and account views.
var rolePopulation = []listing.Directive{listing.Populate("role", "_id", "name")}

type UserRepository struct {
	entityRepository[model.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{newEntityRepository[model.User](db, UserSchema, "user")}
}

// GetWithRole finds a user by ID with the role populated.
func (r *UserRepository) GetWithRole(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.GetByID(ctx, id, rolePopulation)
}

// GetByEmail finds user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByEmail")

	logger.DebugWithContext(ctx, "Getting user by email").
		String("email", email).
		Log()

	return r.FindOne(ctx, listing.Eq("email", strings.ToLower(strings.TrimSpace(email))), rolePopulation)
}

// UpdateRefreshToken stores the hash of the current refresh token. An empty
// hash clears it.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshTokenHash string, expiresAt *time.Time) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateRefreshToken")

	logger.DebugWithContext(ctx, "Updating refresh token").
		String("user_id", id.String()).
		Bool("has_token", refreshTokenHash != "").
		Log()

	var hash any
	if refreshTokenHash != "" {
		hash = refreshTokenHash
	}

	rows, err := r.Updates(ctx, id, map[string]any{
		"refresh_token_hash":       hash,
		"refresh_token_expires_at": expiresAt,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.WarnWithContext(ctx, "No user found to update refresh token").
			String("user_id", id.String()).
			Log()
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RevokeTokens bumps the token version and drops the stored refresh token so
// every outstanding token stops validating.
func (r *UserRepository) RevokeTokens(ctx context.Context, id uuid.UUID) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "RevokeTokens")

	rows, err := r.Updates(ctx, id, map[string]any{
		"token_version":            gorm.Expr("token_version + 1"),
		"refresh_token_hash":       nil,
		"refresh_token_expires_at": nil,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User tokens revoked").
		String("user_id", id.String()).
		Log()
	return nil
}

// SetAttachedCVs replaces the user's attached CV list.
func (r *UserRepository) SetAttachedCVs(ctx context.Context, id uuid.UUID, cvs []model.AttachedCV) error {
	rows, err := r.Updates(ctx, id, map[string]any{
		"attached_cvs": datatypes.JSONSlice[model.AttachedCV](cvs),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
