package model

// Skill and Category names are unique ignoring case among live rows; the
// index lives in database.EnsureIndexes.
type Skill struct {
	Base
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
	Audit
}

type Category struct {
	Base
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
	Audit
}
