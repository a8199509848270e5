package models

import "time"

// VisitorDetails holds the contact details a guard records for one visit.
type VisitorDetails struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	VisitRequestID uint      `gorm:"uniqueIndex;not null" json:"visitRequestId"`
	VisitorName    string    `gorm:"type:varchar(100);not null" json:"visitorName"`
	Email          string    `gorm:"type:varchar(100);not null" json:"email"`
	IC             string    `gorm:"column:ic;type:varchar(50);not null" json:"ic"`
	Phone          string    `gorm:"type:varchar(20);not null" json:"phone"`
	Gender         string    `gorm:"type:varchar(20);not null" json:"gender"`
	Address        string    `gorm:"type:varchar(255);not null" json:"address"`
	CreatedAt      time.Time `json:"createdAt"`
}
