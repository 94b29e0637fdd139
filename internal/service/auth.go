package service

import (
	"context"
	"errors"
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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	roleRepo   *repository.RoleRepository
	jwtService *JWTService
}

func NewAuthService(userRepo *repository.UserRepository, roleRepo *repository.RoleRepository, jwtService *JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
	}
}

// Register creates a job seeker account.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Register")

	email := normalizeEmail(req.Email)
	logger.InfoWithContext(ctx, "Registering user").
		String("email", email).
		Log()

	taken, err := s.userRepo.Exists(ctx, listing.Eq("email", email))
	if err != nil {
		return nil, storeError(err, nil)
	}
	if taken {
		logger.WarnWithContext(ctx, "Email already registered").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	}

	role, err := s.roleRepo.GetByName(ctx, constants.RoleUser)
	if err != nil {
		return nil, storeError(err, apperrors.ErrRoleNotFound)
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
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
		TokenVersion: 1,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, storeError(err, nil)
	}
	user.Role = role

	logger.LogAuth(user.ID.String(), "register", true)
	account := toAccount(user)
	return &account, nil
}

// Login checks credentials and issues an access token plus a rotated
// refresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.LogAuth("", "login", false)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, storeError(err, nil)
	}

	if !checkPassword(user.Password, password) {
		logger.LogAuth(user.ID.String(), "login", false)
		return nil, apperrors.ErrInvalidCredentials
	}

	response, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(user.ID.String(), "login", true)
	return response, nil
}

// Refresh exchanges a refresh token for a new token pair. The old refresh
// token stops working.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Refresh")

	userID, secret, ok := splitRefreshToken(refreshToken)
	if !ok {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetWithRole(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, storeError(err, nil)
	}

	if user.RefreshTokenHash == "" || !s.jwtService.VerifyRefreshToken(secret, user.RefreshTokenHash) {
		logger.WarnWithContext(ctx, "Refresh token does not match").
			String("user_id", userID.String()).
			Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if user.RefreshTokenExpires != nil && time.Now().After(*user.RefreshTokenExpires) {
		logger.WarnWithContext(ctx, "Refresh token expired").
			String("user_id", userID.String()).
			Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	response, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(user.ID.String(), "refresh", true)
	return response, nil
}

// Logout revokes every token issued to the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Logout")

	if err := s.userRepo.RevokeTokens(ctx, userID); err != nil {
		return storeError(err, apperrors.ErrUserNotFound)
	}

	logger.LogAuth(userID.String(), "logout", true)
	return nil
}

// Account returns the current state of the authenticated user.
func (s *AuthService) Account(ctx context.Context, userID uuid.UUID) (*dto.AccountResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Account")

	user, err := s.userRepo.GetWithRole(ctx, userID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	account := toAccount(user)
	return &account, nil
}

// Authenticate validates an access token against the user's current token
// version and returns the caller's scope.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*listing.ActorScope, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Authenticate")

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	user, err := s.userRepo.GetWithRole(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, storeError(err, nil)
	}

	if _, err := s.jwtService.ValidateTokenWithVersion(token, user.TokenVersion); err != nil {
		logger.WarnWithContext(ctx, "Token version mismatch").
			String("user_id", user.ID.String()).
			Int("token_version", claims.TokenVersion).
			Int("current_version", user.TokenVersion).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	// The role comes from the database so demotions apply immediately.
	role := ""
	if user.Role != nil {
		role = user.Role.Name
	}
	return &listing.ActorScope{ActorID: user.ID, Email: user.Email, Role: role}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.LoginResponse, error) {
	accessToken, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate access token").
			String("user_id", user.ID.String()).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	secret, err := s.jwtService.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	hash, err := s.jwtService.HashRefreshToken(secret)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	expiresAt := time.Now().Add(s.jwtService.RefreshDuration())
	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, hash, &expiresAt); err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		ExpiresIn:    int(s.jwtService.AccessDuration().Seconds()),
		User:         toAccount(user),
		RefreshToken: user.ID.String() + "." + secret,
	}, nil
}

// splitRefreshToken separates "<user id>.<secret>".
func splitRefreshToken(token string) (uuid.UUID, string, bool) {
	rawID, secret, found := strings.Cut(token, ".")
	if !found || secret == "" {
		return uuid.Nil, "", false
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, secret, true
}

func toAccount(user *model.User) dto.AccountResponse {
	account := dto.AccountResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
	if user.Role != nil {
		account.Role = dto.RoleRef{ID: user.Role.ID, Name: user.Role.Name}
	}
	return account
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword hashes password using bcrypt
func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// checkPassword verifies password against hash
func checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
