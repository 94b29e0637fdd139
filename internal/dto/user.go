package dto

type CompanyRefRequest struct {
	ID   string `json:"_id" binding:"omitempty,uuid"`
	Name string `json:"name" binding:"omitempty,max=255"`
}

type CreateUserRequest struct {
	Name     string             `json:"name" binding:"required,min=2,max=255"`
	Email    string             `json:"email" binding:"required,email,max=255"`
	Password string             `json:"password" binding:"required,min=6,max=100"`
	Age      int                `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender   string             `json:"gender" binding:"omitempty,max=20"`
	Address  string             `json:"address" binding:"omitempty,max=1000"`
	Role     string             `json:"role" binding:"required,uuid"`
	Company  *CompanyRefRequest `json:"company"`
}

// UpdateUserRequest changes only the fields present. Email and password
// cannot be changed here.
type UpdateUserRequest struct {
	Name    *string            `json:"name" binding:"omitempty,min=2,max=255"`
	Age     *int               `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender  *string            `json:"gender" binding:"omitempty,max=20"`
	Address *string            `json:"address" binding:"omitempty,max=1000"`
	Role    *string            `json:"role" binding:"omitempty,uuid"`
	Company *CompanyRefRequest `json:"company"`
}

type AttachCVRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	URL  string `json:"url" binding:"required,url,max=2048"`
}
