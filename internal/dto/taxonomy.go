package dto

// TaxonomyRequest creates a skill or a category.
type TaxonomyRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateTaxonomyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	IsActive    *bool   `json:"isActive"`
}
