package models

import "time"

// SecurityStaffProfile extends an Account with gate-staff details and shares its id.
type SecurityStaffProfile struct {
	ID         uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Email      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	IC         string    `gorm:"column:ic;type:varchar(50);uniqueIndex;not null" json:"ic"`
	Gender     string    `gorm:"type:varchar(20);not null" json:"gender"`
	Address    string    `gorm:"type:varchar(255)" json:"address"`
	Approved   bool      `gorm:"not null" json:"approved"`
	PropertyID uint      `gorm:"index;not null" json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName keeps the historical table name.
func (SecurityStaffProfile) TableName() string {
	return "security_staff"
}
