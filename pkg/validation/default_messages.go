package validation

import (
	"fmt"
)

func DefaultMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must have length %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "uuid_list":
		return fmt.Sprintf("%s must be a list of valid ids", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "application_status":
		return fmt.Sprintf("%s is not a valid application status", field)
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", field, tag)
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, param)
	case "datetime":
		return fmt.Sprintf("%s must be a date in the format %s", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
