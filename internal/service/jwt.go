package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/Payphone-Digital/jobboard/config"
	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenClaims is what the access token carries about its holder.
type TokenClaims struct {
	UserID       uuid.UUID
	Email        string
	Role         string
	TokenVersion int
}

type JWTService struct {
	secretKey       []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:       []byte(cfg.Secret),
		accessDuration:  cfg.AccessDuration,
		refreshDuration: cfg.RefreshDuration,
	}
}

func (s *JWTService) AccessDuration() time.Duration {
	return s.accessDuration
}

func (s *JWTService) RefreshDuration() time.Duration {
	return s.refreshDuration
}

// GenerateToken generates a JWT access token for the given user
func (s *JWTService) GenerateToken(user *model.User) (string, error) {
	role := ""
	if user.Role != nil {
		role = user.Role.Name
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":       user.ID.String(),
		"email":         user.Email,
		"role":          role,
		"token_version": user.TokenVersion,
		"exp":           now.Add(s.accessDuration).Unix(),
		"iat":           now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// GenerateRefreshToken generates a cryptographically secure random refresh token
func (s *JWTService) GenerateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// HashRefreshToken hashes the refresh token for storage
func (s *JWTService) HashRefreshToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash refresh token: %w", err)
	}
	return string(hash), nil
}

// VerifyRefreshToken compares a plain refresh token with its stored hash
func (s *JWTService) VerifyRefreshToken(token, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}

// ValidateToken parses and verifies an access token.
func (s *JWTService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	rawID, _ := mapClaims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id claim: %w", err)
	}

	claims := &TokenClaims{UserID: userID}
	claims.Email, _ = mapClaims["email"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	if version, ok := mapClaims["token_version"].(float64); ok {
		claims.TokenVersion = int(version)
	}
	return claims, nil
}

// ValidateTokenWithVersion validates the token and checks it was issued for
// the user's current token version.
func (s *JWTService) ValidateTokenWithVersion(tokenString string, currentVersion int) (*TokenClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenVersion != currentVersion {
		return nil, fmt.Errorf("token has been revoked")
	}
	return claims, nil
}
