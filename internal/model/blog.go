package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Blog is an article written by a staff member. Tags are free-form labels
// stored as a JSON array.
type Blog struct {
	Base
	Title       string                      `gorm:"type:varchar(255);not null" json:"title"`
	Content     string                      `gorm:"type:text;not null" json:"content"`
	Description string                      `gorm:"type:text" json:"description"`
	Thumbnail   string                      `gorm:"type:varchar(1024)" json:"thumbnail,omitempty"`
	Status      string                      `gorm:"type:varchar(50);index" json:"status"`
	AuthorID    *uuid.UUID                  `gorm:"type:uuid;index" json:"authorId,omitempty"`
	Author      *User                       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Views       int64                       `gorm:"default:0;not null" json:"views"`
	MetaData    datatypes.JSONMap           `gorm:"column:meta_data;type:jsonb" json:"metaData,omitempty"`
	Audit
}
