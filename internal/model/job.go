package model

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	Base
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Skills      []Skill    `gorm:"many2many:job_skills" json:"skills,omitempty"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"categoryId,omitempty"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CompanyID   *uuid.UUID `gorm:"type:uuid;index" json:"companyId,omitempty"`
	Company     *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Location    string     `gorm:"type:varchar(255);index" json:"location"`
	Salary      float64    `json:"salary"`
	Quantity    int        `json:"quantity"`
	Level       string     `gorm:"type:varchar(50)" json:"level"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsActive    bool       `gorm:"default:true;index" json:"isActive"`
	IsHot       bool       `gorm:"default:false" json:"isHot"`
	Audit
}

// Creator returns the id of the user who posted the job, if recorded.
func (j *Job) Creator() uuid.UUID {
	if j.CreatedBy.UserID == nil {
		return uuid.Nil
	}
	return *j.CreatedBy.UserID
}
