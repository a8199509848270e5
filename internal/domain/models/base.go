package models

import "time"

// BaseModel carries the auto-increment key and timestamps shared by most tables.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Property{},
		&ResidentProfile{},
		&SecurityStaffProfile{},
		&VisitRequest{},
		&VerifiedVisitor{},
		&VisitorDetails{},
	}
}
