package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StatusChange struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy Actor     `json:"updatedBy"`
}

// Application is a user's submission of a CV to a job. (user, job, cv) is
// unique among live rows.
type Application struct {
	Base
	UserID  uuid.UUID                         `gorm:"type:uuid;not null;index" json:"userId"`
	User    *User                             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JobID   uuid.UUID                         `gorm:"type:uuid;not null;index" json:"jobId"`
	Job     *Job                              `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Email   string                            `gorm:"type:varchar(255);not null" json:"email"`
	CVURL   string                            `gorm:"column:cv_url;type:varchar(1024);not null" json:"cvUrl"`
	Status  string                            `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	History datatypes.JSONSlice[StatusChange] `gorm:"type:jsonb" json:"history"`
	Audit
}
