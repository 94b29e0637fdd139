package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	apperrors "github.com/Payphone-Digital/jobboard/internal/errors"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	ctxutil "github.com/Payphone-Digital/jobboard/pkg/context"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

func handlerContext(c *gin.Context, function string) context.Context {
	return ctxutil.WithFunction(c.Request.Context(), "handler", function)
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, constants.BuildResponse(status, message, data))
}

// respondError writes err in the error envelope. Errors outside the domain
// never reach the client verbatim.
func respondError(ctx context.Context, c *gin.Context, err error, action string) {
	status := apperrors.ToHTTPStatus(err)

	message := constants.MsgInternalError
	if apperrors.IsDomainError(err) {
		message = apperrors.GetErrorMessage(err)
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(ctx, action+" failed").
			StatusCode(status).
			Err(err).
			Log()
	} else {
		logger.WarnWithContext(ctx, action+" rejected").
			StatusCode(status).
			String("reason", message).
			Log()
	}

	c.JSON(status, constants.BuildErrorResponse(status, message, nil))
}

// listingRequest hands the raw query string to the resolver untouched, with
// the pagination parameters read the way the transport sees them.
func listingRequest(c *gin.Context) listing.Request {
	return listing.Request{
		RawQuery: c.Request.URL.RawQuery,
		Current:  c.Query(constants.QueryParamCurrent),
		PageSize: c.Query(constants.QueryParamPageSize),
	}
}

// searchRequest pulls the free-text key out of the query string before the
// rest goes to the resolver.
func searchRequest(c *gin.Context, key string) (listing.Request, string) {
	req := listingRequest(c)
	search, rest := listing.Extract(req.RawQuery, key)
	req.RawQuery = rest
	return req, search
}

// actor returns the authenticated caller or writes 401.
func actor(c *gin.Context) (*listing.ActorScope, bool) {
	a := middleware.Actor(c)
	if a == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(http.StatusUnauthorized, constants.MsgUnauthorized, nil))
		return nil, false
	}
	return a, true
}
