package model

type Company struct {
	Base
	Name        string  `gorm:"type:varchar(255);not null;index" json:"name"`
	Address     string  `gorm:"type:text" json:"address"`
	Description string  `gorm:"type:text" json:"description"`
	Logo        string  `gorm:"type:varchar(1024)" json:"logo"`
	Industry    string  `gorm:"type:varchar(255)" json:"industry"`
	CompanySize string  `gorm:"type:varchar(50)" json:"companySize"`
	Country     string  `gorm:"type:varchar(100)" json:"country"`
	WorkingTime string  `gorm:"type:varchar(100)" json:"workingTime"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Skills      []Skill `gorm:"many2many:company_skills" json:"skills,omitempty"`
	Audit
}
