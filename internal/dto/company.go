package dto

type CreateCompanyRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Address     string   `json:"address" binding:"omitempty,max=1000"`
	Description string   `json:"description"`
	Logo        string   `json:"logo" binding:"omitempty,max=1024"`
	Industry    string   `json:"industry" binding:"omitempty,max=255"`
	CompanySize string   `json:"companySize" binding:"omitempty,max=50"`
	Country     string   `json:"country" binding:"omitempty,max=100"`
	WorkingTime string   `json:"workingTime" binding:"omitempty,max=100"`
	Latitude    float64  `json:"latitude" binding:"omitempty,latitude"`
	Longitude   float64  `json:"longitude" binding:"omitempty,longitude"`
	Skills      []string `json:"skills" binding:"omitempty,uuid_list"`
}

type UpdateCompanyRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Address     *string  `json:"address" binding:"omitempty,max=1000"`
	Description *string  `json:"description"`
	Logo        *string  `json:"logo" binding:"omitempty,max=1024"`
	Industry    *string  `json:"industry" binding:"omitempty,max=255"`
	CompanySize *string  `json:"companySize" binding:"omitempty,max=50"`
	Country     *string  `json:"country" binding:"omitempty,max=100"`
	WorkingTime *string  `json:"workingTime" binding:"omitempty,max=100"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,longitude"`
	Skills      []string `json:"skills" binding:"omitempty,uuid_list"`
}
