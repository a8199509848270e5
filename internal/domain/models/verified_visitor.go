package models

import "time"

// VerificationStatusVerified is the only status an audit entry ever carries.
const VerificationStatusVerified = "Verified"

// VerifiedVisitor is an append-only audit entry written when a guard
// verifies a visitor's one-time password.
type VerifiedVisitor struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	SecurityStaffID   uint      `gorm:"index;not null" json:"securityStaffId"`
	VisitRequestID    uint      `gorm:"index;not null" json:"visitRequestId"`
	ResidentName      string    `gorm:"type:varchar(100);not null" json:"residentName"`
	VisitorIdentifier string    `gorm:"type:varchar(100);index;not null" json:"visitorUsername"`
	VisitorPassword   string    `gorm:"type:varchar(100);not null" json:"-"`
	Status            string    `gorm:"column:verification_status;type:varchar(20);not null" json:"status"`
	CreatedAt         time.Time `json:"verifiedAt"`
}
