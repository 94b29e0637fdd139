package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	ctxutil "github.com/Payphone-Digital/jobboard/pkg/context"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves a bearer token to the calling actor.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*listing.ActorScope, error)
}

type JWTMiddleware struct {
	auth Authenticator
}

func NewJWTMiddleware(auth Authenticator) *JWTMiddleware {
	return &JWTMiddleware{auth: auth}
}

// RequireAuth rejects requests without a valid access token and stores the
// actor on the gin context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, ok := bearerToken(c)
		if !ok {
			logger.WarnWithContext(ctx, "Missing or malformed Authorization header").
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Log()
			abort(c, http.StatusUnauthorized, constants.MsgUnauthorized)
			return
		}

		actor, err := m.auth.Authenticate(ctx, token)
		if err != nil {
			logger.WarnWithContext(ctx, "Invalid or expired token").
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Err(err).
				Log()
			abort(c, http.StatusUnauthorized, constants.MsgUnauthorized)
			return
		}

		setActor(c, actor)
		logger.DebugWithContext(c.Request.Context(), "User authenticated").
			String("role", actor.Role).
			Log()

		c.Next()
	}
}

// OptionalAuth attaches the actor when a valid token is present and lets the
// request through either way.
func (m *JWTMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if actor, err := m.auth.Authenticate(c.Request.Context(), token); err == nil {
			setActor(c, actor)
		}
		c.Next()
	}
}

// RequireRoles must run after RequireAuth.
func (m *JWTMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor(c)
		if actor == nil {
			abort(c, http.StatusUnauthorized, constants.MsgUnauthorized)
			return
		}
		if !slices.Contains(roles, actor.Role) {
			logger.WarnWithContext(c.Request.Context(), "Role not permitted").
				String("role", actor.Role).
				Strings("allowed", roles).
				String("path", c.Request.URL.Path).
				Log()
			abort(c, http.StatusForbidden, constants.MsgForbidden)
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated caller, or nil.
func Actor(c *gin.Context) *listing.ActorScope {
	value, exists := c.Get(constants.GinKeyActor)
	if !exists {
		return nil
	}
	actor, _ := value.(*listing.ActorScope)
	return actor
}

func setActor(c *gin.Context, actor *listing.ActorScope) {
	c.Set(constants.GinKeyActor, actor)
	ctx := ctxutil.WithUserID(c.Request.Context(), actor.ActorID.String())
	c.Request = c.Request.WithContext(ctx)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, constants.BuildErrorResponse(status, message, nil))
}
