package constants

import "net/http"

// Standard Response Field Keys
const (
	ResponseFieldStatusCode = "statusCode"
	ResponseFieldMessage    = "message"
	ResponseFieldData       = "data"
	ResponseFieldError      = "error"
	ResponseFieldDetails    = "details"
)

// BuildResponse wraps data in the envelope every endpoint returns.
func BuildResponse(statusCode int, message string, data any) map[string]any {
	return map[string]any{
		ResponseFieldStatusCode: statusCode,
		ResponseFieldMessage:    message,
		ResponseFieldData:       data,
	}
}

func BuildErrorResponse(statusCode int, message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldStatusCode: statusCode,
		ResponseFieldMessage:    message,
		ResponseFieldError:      http.StatusText(statusCode),
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}
