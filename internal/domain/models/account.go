package models

// Account is the identity anchor every role-specific profile hangs off.
type Account struct {
	BaseModel
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(32);not null" json:"role"`
	Onboarded    bool   `gorm:"not null" json:"isOnboarded"`
	Approved     bool   `gorm:"not null" json:"isApproved"`
	PropertyID   *uint  `gorm:"index" json:"propertyId,omitempty"`
	FullName     string `gorm:"type:varchar(100)" json:"fullName"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`
	Address      string `gorm:"type:varchar(255)" json:"address"`
	ProfileImage string `gorm:"type:text" json:"profileImage,omitempty"`
}

// PendingApproval reports the one state that blocks authentication: an
// onboarded resident the property admin has not approved yet.
func (a *Account) PendingApproval() bool {
	return a.Role == RoleResident && a.Onboarded && !a.Approved
}
