package models

import (
	"fmt"
	"strings"
	"time"
)

// VisitStatus is the closed set of visit request states.
type VisitStatus string

const (
	VisitStatusPending  VisitStatus = "Pending"
	VisitStatusApproved VisitStatus = "Approved"
	VisitStatusRejected VisitStatus = "Rejected"
	VisitStatusClosed   VisitStatus = "Closed"
)

// visitTransitions lists the allowed next states. States without an entry are terminal.
var visitTransitions = map[VisitStatus][]VisitStatus{
	VisitStatusPending:  {VisitStatusApproved, VisitStatusRejected},
	VisitStatusApproved: {VisitStatusClosed},
}

// ParseVisitStatus matches s case-insensitively against the known states.
func ParseVisitStatus(s string) (VisitStatus, error) {
	for _, st := range []VisitStatus{VisitStatusPending, VisitStatusApproved, VisitStatusRejected, VisitStatusClosed} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown visit status %q", s)
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s VisitStatus) CanTransitionTo(next VisitStatus) bool {
	for _, allowed := range visitTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s VisitStatus) Terminal() bool {
	return len(visitTransitions[s]) == 0
}

// VisitRequest is one visitor invitation created by a resident.
type VisitRequest struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	ResidentID        uint        `gorm:"index;not null" json:"residentId"`
	ResidentName      string      `gorm:"type:varchar(100);index:idx_visit_lookup;not null" json:"residentName"`
	VisitorName       string      `gorm:"type:varchar(100);not null" json:"visitorName"`
	VisitorIdentifier string      `gorm:"type:varchar(100);index:idx_visit_lookup;not null" json:"visitorUsername"`
	VisitorPassword   string      `gorm:"type:varchar(100);not null" json:"-"`
	Status            VisitStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	RequestDate       time.Time   `gorm:"not null" json:"requestDate"`
}
