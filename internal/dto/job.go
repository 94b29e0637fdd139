package dto

import "time"

type CreateJobRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Skills      []string   `json:"skills" binding:"required,min=1,uuid_list"`
	Category    string     `json:"category" binding:"omitempty,uuid"`
	Company     string     `json:"company" binding:"required,uuid"`
	Location    string     `json:"location" binding:"required,max=255"`
	Salary      float64    `json:"salary" binding:"gte=0"`
	Quantity    int        `json:"quantity" binding:"gte=0"`
	Level       string     `json:"level" binding:"required,max=50"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    *bool      `json:"isActive"`
	IsHot       bool       `json:"isHot"`
}

type UpdateJobRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=255"`
	Skills      []string   `json:"skills" binding:"omitempty,min=1,uuid_list"`
	Category    *string    `json:"category" binding:"omitempty,uuid"`
	Company     *string    `json:"company" binding:"omitempty,uuid"`
	Location    *string    `json:"location" binding:"omitempty,max=255"`
	Salary      *float64   `json:"salary" binding:"omitempty,gte=0"`
	Quantity    *int       `json:"quantity" binding:"omitempty,gte=0"`
	Level       *string    `json:"level" binding:"omitempty,max=50"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    *bool      `json:"isActive"`
	IsHot       *bool      `json:"isHot"`
}

// JobsBySkillsRequest is the body of the skill-matching listing.
type JobsBySkillsRequest struct {
	Skills []string `json:"skills" binding:"required,min=1,uuid_list"`
}
