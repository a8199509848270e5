package services

import (
	"strings"
	"time"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"
	"hostel-http-service/pkg/logger"

	"gorm.io/gorm"
)

// InterfaceVisitService manages visit requests.
type InterfaceVisitService interface {
	CreateVisitRequest(residentID uint, input VisitRequestInput) (*models.VisitRequest, error)
	UpdateStatus(propertyID, requestID uint, status string) (*models.VisitRequest, error)
	ResidentVisits(residentID uint) ([]models.VisitRequest, error)
	PropertyHistory(propertyID uint) ([]models.VisitRequest, error)
}

// VisitRequestInput is what a resident submits to invite a visitor. An empty
// ResidentName falls back to the resident's profile name.
type VisitRequestInput struct {
	ResidentName      string
	VisitorName       string
	VisitorIdentifier string
	VisitorPassword   string
}

// VisitService implements InterfaceVisitService.
type VisitService struct {
	DB     *gorm.DB
	Config *config.Config
	now    func() time.Time
}

// NewVisitService creates a visit service.
func NewVisitService(db *gorm.DB, cfg *config.Config) InterfaceVisitService {
	return &VisitService{DB: db, Config: cfg, now: time.Now}
}

// CreateVisitRequest stores a new Pending request for an approved resident.
// The visitor identifier may not be shared with another Pending request.
func (s *VisitService) CreateVisitRequest(residentID uint, input VisitRequestInput) (*models.VisitRequest, error) {
	visitorName := strings.TrimSpace(input.VisitorName)
	identifier := strings.TrimSpace(input.VisitorIdentifier)
	if visitorName == "" || identifier == "" || input.VisitorPassword == "" {
		return nil, invalid("visitor name, username and password are required")
	}

	var request *models.VisitRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var resident models.ResidentProfile
		if err := tx.First(&resident, residentID).Error; err != nil {
			if isNotFound(err) {
				return ErrResidentNotFound
			}
			return err
		}
		if !resident.Approved {
			return ErrPendingApproval
		}

		var pending int64
		if err := tx.Model(&models.VisitRequest{}).
			Where("visitor_identifier = ? AND status = ?", identifier, models.VisitStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrDuplicateVisit
		}

		residentName := strings.TrimSpace(input.ResidentName)
		if residentName == "" {
			residentName = resident.Name
		}

		request = &models.VisitRequest{
			ResidentID:        resident.ID,
			ResidentName:      residentName,
			VisitorName:       visitorName,
			VisitorIdentifier: identifier,
			VisitorPassword:   input.VisitorPassword,
			Status:            models.VisitStatusPending,
			RequestDate:       s.now(),
		}
		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("visit request %d created by resident %d", request.ID, residentID)
	return request, nil
}

// UpdateStatus moves a request of the caller's property along the transition table.
func (s *VisitService) UpdateStatus(propertyID, requestID uint, status string) (*models.VisitRequest, error) {
	next, err := models.ParseVisitStatus(status)
	if err != nil {
		return nil, ErrInvalidVisitStatus
	}

	var request models.VisitRequest
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND resident_id IN (?)", requestID, residentsOf(tx, propertyID)).
			First(&request).Error; err != nil {
			if isNotFound(err) {
				return ErrVisitNotFound
			}
			return err
		}
		if !request.Status.CanTransitionTo(next) {
			return ErrVisitTransition
		}

		res := tx.Model(&models.VisitRequest{}).
			Where("id = ? AND status = ?", request.ID, request.Status).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// someone else moved it first
			return ErrVisitTransition
		}
		request.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ResidentVisits lists a resident's own requests, newest first.
func (s *VisitService) ResidentVisits(residentID uint) ([]models.VisitRequest, error) {
	var requests []models.VisitRequest
	if err := s.DB.Where("resident_id = ?", residentID).Order("id desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// PropertyHistory lists every request raised by residents of the property.
func (s *VisitService) PropertyHistory(propertyID uint) ([]models.VisitRequest, error) {
	var requests []models.VisitRequest
	if err := s.DB.Where("resident_id IN (?)", residentsOf(s.DB, propertyID)).
		Order("id desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// residentsOf is a subquery selecting the resident ids of a property.
func residentsOf(db *gorm.DB, propertyID uint) *gorm.DB {
	return db.Model(&models.ResidentProfile{}).Select("id").Where("property_id = ?", propertyID)
}
