package dto

type CreateApplicationRequest struct {
	JobID string `json:"jobId" binding:"required,uuid"`
	CVURL string `json:"cvUrl" binding:"required,url,max=1024"`
	// Email defaults to the applicant's account email.
	Email string `json:"email" binding:"omitempty,email"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,application_status"`
}
