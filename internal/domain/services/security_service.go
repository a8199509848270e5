package services

import (
	"crypto/subtle"
	"strings"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"
	"hostel-http-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InterfaceSecurityService is the gate-side half of the visit workflow.
type InterfaceSecurityService interface {
	VerifyVisitor(staffID uint, residentName, visitorIdentifier, password string) (bool, error)
	LogVisitorDetailsByUsername(visitorIdentifier string, details VisitorDetailsInput) (*models.VisitorDetails, error)
	VerificationHistory(propertyID uint) ([]models.VerifiedVisitor, error)
}

// VisitorDetailsInput is the contact information recorded at the gate.
type VisitorDetailsInput struct {
	Name    string
	Email   string
	Phone   string
	IC      string
	Gender  string
	Address string
}

// SecurityService implements InterfaceSecurityService.
type SecurityService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewSecurityService creates a security service.
func NewSecurityService(db *gorm.DB, cfg *config.Config) InterfaceSecurityService {
	return &SecurityService{DB: db, Config: cfg}
}

// VerifyVisitor checks a visitor's one-time password against the Pending
// request of (residentName, visitorIdentifier). On a match the request
// becomes Approved and one audit entry is appended, in one transaction.
// A mismatch of any kind is reported as false, never as an error.
func (s *SecurityService) VerifyVisitor(staffID uint, residentName, visitorIdentifier, password string) (bool, error) {
	residentName = strings.TrimSpace(residentName)
	visitorIdentifier = strings.TrimSpace(visitorIdentifier)

	verified := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var staff models.SecurityStaffProfile
		if err := tx.First(&staff, staffID).Error; err != nil {
			if isNotFound(err) {
				return ErrStaffNotFound
			}
			return err
		}

		var request models.VisitRequest
		found := true
		err := tx.Where("resident_name = ? AND visitor_identifier = ?", residentName, visitorIdentifier).
			Where("resident_id IN (?)", residentsOf(tx, staff.PropertyID)).
			Order("id desc").
			First(&request).Error
		if err != nil {
			if !isNotFound(err) {
				return err
			}
			found = false
		}

		// compare even without a request so both failure paths cost the same
		stored := request.VisitorPassword
		if !found {
			stored = password + "\x00"
		}
		match := subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
		if !found || !match || request.Status != models.VisitStatusPending {
			return nil
		}

		res := tx.Model(&models.VisitRequest{}).
			Where("id = ? AND status = ?", request.ID, models.VisitStatusPending).
			Update("status", models.VisitStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		entry := &models.VerifiedVisitor{
			SecurityStaffID:   staff.ID,
			VisitRequestID:    request.ID,
			ResidentName:      request.ResidentName,
			VisitorIdentifier: request.VisitorIdentifier,
			VisitorPassword:   password,
			Status:            models.VerificationStatusVerified,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		verified = true
		return nil
	})
	if err != nil {
		return false, err
	}

	log := logger.With(zap.Uint("staff_id", staffID), zap.String("visitor", visitorIdentifier))
	if verified {
		log.Info("visitor verified")
	} else {
		log.Warn("visitor verification failed")
	}
	return verified, nil
}

// LogVisitorDetailsByUsername attaches contact details to the visit behind
// the most recent verification of visitorIdentifier. Identifiers can be
// reused across visits, so the latest verification picks the visit. Each
// visit takes one set of details; later calls are rejected.
func (s *SecurityService) LogVisitorDetailsByUsername(visitorIdentifier string, input VisitorDetailsInput) (*models.VisitorDetails, error) {
	visitorIdentifier = strings.TrimSpace(visitorIdentifier)
	if visitorIdentifier == "" {
		return nil, invalid("visitor username is required")
	}
	details := &models.VisitorDetails{
		VisitorName: strings.TrimSpace(input.Name),
		Email:       normalizeEmail(input.Email),
		IC:          strings.TrimSpace(input.IC),
		Phone:       strings.TrimSpace(input.Phone),
		Gender:      strings.TrimSpace(input.Gender),
		Address:     strings.TrimSpace(input.Address),
	}
	if details.VisitorName == "" || details.Email == "" || details.IC == "" ||
		details.Phone == "" || details.Gender == "" || details.Address == "" {
		return nil, invalid("all visitor details are required")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var last models.VerifiedVisitor
		if err := tx.Where("visitor_identifier = ?", visitorIdentifier).
			Order("id desc").First(&last).Error; err != nil {
			if isNotFound(err) {
				return ErrVerificationNotFound
			}
			return err
		}

		var request models.VisitRequest
		if err := tx.First(&request, last.VisitRequestID).Error; err != nil {
			if isNotFound(err) {
				return ErrVisitNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.VisitorDetails{}).Where("visit_request_id = ?", request.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrVisitorDetailsExist
		}

		details.VisitRequestID = request.ID
		return tx.Create(details).Error
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// VerificationHistory lists audit entries written by the property's guards, newest first.
func (s *SecurityService) VerificationHistory(propertyID uint) ([]models.VerifiedVisitor, error) {
	var entries []models.VerifiedVisitor
	staff := s.DB.Model(&models.SecurityStaffProfile{}).Select("id").Where("property_id = ?", propertyID)
	if err := s.DB.Where("security_staff_id IN (?)", staff).Order("id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
