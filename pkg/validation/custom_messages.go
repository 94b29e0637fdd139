package validation

// CustomMessage returns per-field overrides keyed by validation tag. Fields
// are named by their JSON tag.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"email": {
			"required": "email is required",
			"email":    "email is not a valid address",
		},
		"password": {
			"required": "password is required",
			"min":      "password must be at least 6 characters",
		},
		"status": {
			"required":           "status is required",
			"application_status": "status must be one of pending, reviewed, accepted, rejected, offered",
		},
		"skills": {
			"required":  "skills is required",
			"uuid_list": "skills must be a list of valid ids",
		},
		"cvUrl": {
			"required": "cvUrl is required",
			"url":      "cvUrl must be a valid URL",
		},
	}
	return customValidationMessages[field]
}
