package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttachedCV struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CompanyRef is the company a user belongs to, denormalised onto the user.
type CompanyRef struct {
	RefID *uuid.UUID `gorm:"column:id;type:uuid" json:"_id,omitempty"`
	Name  string     `gorm:"column:name;type:varchar(255)" json:"name,omitempty"`
}

type User struct {
	Base
	Name        string                          `gorm:"type:varchar(255);not null" json:"name"`
	Email       string                          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string                          `gorm:"type:varchar(255);not null" json:"-"`
	Age         int                             `json:"age,omitempty"`
	Gender      string                          `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Address     string                          `gorm:"type:text" json:"address,omitempty"`
	RoleID      *uuid.UUID                      `gorm:"type:uuid;index" json:"roleId,omitempty"`
	Role        *Role                           `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Company     CompanyRef                      `gorm:"embedded;embeddedPrefix:company_" json:"company"`
	AttachedCVs datatypes.JSONSlice[AttachedCV] `gorm:"column:attached_cvs;type:jsonb" json:"attachedCvs"`

	TokenVersion        int        `gorm:"default:1;not null" json:"-"`
	RefreshTokenHash    string     `gorm:"default:null;index:idx_users_refresh_token_hash,where:refresh_token_hash IS NOT NULL" json:"-"`
	RefreshTokenExpires *time.Time `gorm:"column:refresh_token_expires_at;default:null" json:"-"`
	Audit
}
