package models

import "time"

// DefaultProfileAddress is stored when a profile is created without an address.
const DefaultProfileAddress = "Property Resident"

// ResidentProfile extends an Account with resident details. It shares the
// account's id rather than having its own key.
type ResidentProfile struct {
	ID         uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Email      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	IC         string    `gorm:"column:ic;type:varchar(50);uniqueIndex;not null" json:"ic"`
	Gender     string    `gorm:"type:varchar(20);not null" json:"gender"`
	Address    string    `gorm:"type:varchar(255)" json:"address"`
	Room       string    `gorm:"type:varchar(50);not null" json:"room"`
	Approved   bool      `gorm:"not null" json:"approved"`
	PropertyID uint      `gorm:"index;not null" json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName keeps the historical table name.
func (ResidentProfile) TableName() string {
	return "residents"
}
