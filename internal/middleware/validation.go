package middleware

import (
	"net/http"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/Payphone-Digital/jobboard/pkg/validation"
	"github.com/gin-gonic/gin"
)

const requestBodyKey = "request_body"

// ValidateRequestBody decodes the JSON body into a new T and validates it
// with the binding rules. Handlers read the result with Body.
func ValidateRequestBody[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		request := new(T)
		if err := c.ShouldBindJSON(request); err != nil {
			details := validation.Translate(err)

			logger.WarnWithContext(c.Request.Context(), "Request validation failed").
				String("path", c.Request.URL.Path).
				Strings("validation_errors", details).
				Int("error_count", len(details)).
				Log()

			c.AbortWithStatusJSON(http.StatusBadRequest,
				constants.BuildErrorResponse(http.StatusBadRequest, constants.MsgBadRequest, details))
			return
		}

		c.Set(requestBodyKey, request)
		c.Next()
	}
}

// Body returns the request validated by ValidateRequestBody[T], or nil.
func Body[T any](c *gin.Context) *T {
	value, exists := c.Get(requestBodyKey)
	if !exists {
		return nil
	}
	request, _ := value.(*T)
	return request
}
