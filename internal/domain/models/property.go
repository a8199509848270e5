package models

// Property is the building an admin manages. Each admin owns at most one.
type Property struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Address      string `gorm:"type:varchar(255);not null" json:"address"`
	PropertyType string `gorm:"type:varchar(50);not null" json:"propertyType"`
	AdminID      uint   `gorm:"uniqueIndex;not null" json:"adminId"`
}
