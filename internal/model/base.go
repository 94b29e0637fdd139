package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every entity. IDs are minted client side so callers
// can reference a row before it is written.
type Base struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Actor is the {_id, email} stamp recorded for audit fields.
type Actor struct {
	UserID *uuid.UUID `gorm:"column:id;type:uuid" json:"_id,omitempty"`
	Email  string     `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
}

func NewActor(id uuid.UUID, email string) Actor {
	return Actor{UserID: &id, Email: email}
}

type Audit struct {
	CreatedBy Actor `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	UpdatedBy Actor `gorm:"embedded;embeddedPrefix:updated_by_" json:"updatedBy"`
	DeletedBy Actor `gorm:"embedded;embeddedPrefix:deleted_by_" json:"-"`
}
