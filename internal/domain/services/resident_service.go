package services

import (
	"strings"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"
	"hostel-http-service/pkg/logger"

	"gorm.io/gorm"
)

// InterfaceResidentService defines the resident service interface
type InterfaceResidentService interface {
	SearchResidents(propertyID uint, searchType, value string) ([]models.ResidentProfile, error)
	GetResidentByID(propertyID, id uint) (*models.ResidentProfile, error)
	CreateResident(propertyID uint, input CreateResidentInput) (*models.ResidentProfile, error)
	UpdateResident(propertyID, id uint, update ResidentUpdate) (*models.ResidentProfile, error)
	SetApproval(propertyID, id uint, approved bool) (*models.ResidentProfile, error)
	DeleteResident(propertyID, id uint) error
}

// CreateResidentInput links an existing Resident account to the admin's property.
type CreateResidentInput struct {
	AccountID uint
	Profile   ProfileFields
	Room      string
	Approved  bool
}

// ResidentUpdate is a partial update of a resident profile.
type ResidentUpdate struct {
	ProfileUpdate
	Room     *string
	Approved *bool
}

// ResidentService 提供居民相关的服务
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewResidentService 创建一个新的居民服务
func NewResidentService(db *gorm.DB, cfg *config.Config) InterfaceResidentService {
	return &ResidentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 SearchResidents lists the property's residents, optionally filtered by name or email
func (s *ResidentService) SearchResidents(propertyID uint, searchType, value string) ([]models.ResidentProfile, error) {
	query, err := searchQuery(s.DB.Where("property_id = ?", propertyID), searchType, value)
	if err != nil {
		return nil, err
	}
	var residents []models.ResidentProfile
	if err := query.Order("name asc").Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// 2 GetResidentByID 根据ID获取居民
func (s *ResidentService) GetResidentByID(propertyID, id uint) (*models.ResidentProfile, error) {
	return findResident(s.DB, propertyID, id)
}

// 3 CreateResident 创建新居民
func (s *ResidentService) CreateResident(propertyID uint, input CreateResidentInput) (*models.ResidentProfile, error) {
	var profile *models.ResidentProfile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		account, err := loadAccount(tx, input.AccountID)
		if err != nil {
			return err
		}
		if account.PropertyID != nil && *account.PropertyID != propertyID {
			return ErrResidentExists
		}
		profile, err = createResidentProfile(tx, account, propertyID, input.Profile, input.Room, input.Approved)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("resident %d added to property %d", profile.ID, propertyID)
	return profile, nil
}

// 4 UpdateResident applies the non-nil fields. Approval is mirrored onto the account.
func (s *ResidentService) UpdateResident(propertyID, id uint, update ResidentUpdate) (*models.ResidentProfile, error) {
	cols, err := update.columns()
	if err != nil {
		return nil, err
	}
	if update.Room != nil {
		room := strings.TrimSpace(*update.Room)
		if room == "" {
			return nil, invalid("room cannot be empty")
		}
		cols["room"] = room
	}
	if update.Approved != nil {
		cols["approved"] = *update.Approved
	}

	var profile *models.ResidentProfile
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if profile, err = findResident(tx, propertyID, id); err != nil {
			return err
		}
		if len(cols) == 0 {
			return nil
		}
		if err := ensureUnique(tx, &models.ResidentProfile{}, cols, id, ErrResidentExists); err != nil {
			return err
		}
		if err := tx.Model(profile).Updates(cols).Error; err != nil {
			return err
		}
		if update.Approved != nil {
			if err := tx.Model(&models.Account{}).Where("id = ?", id).
				Update("approved", *update.Approved).Error; err != nil {
				return err
			}
		}
		return tx.First(profile, id).Error
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// 5 SetApproval approves or un-approves a resident
func (s *ResidentService) SetApproval(propertyID, id uint, approved bool) (*models.ResidentProfile, error) {
	profile, err := s.UpdateResident(propertyID, id, ResidentUpdate{Approved: &approved})
	if err != nil {
		return nil, err
	}
	logger.Info("resident %d approval set to %t", id, approved)
	return profile, nil
}

// 6 DeleteResident removes the profile and its account together
func (s *ResidentService) DeleteResident(propertyID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		profile, err := findResident(tx, propertyID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(profile).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, id).Error
	})
}

func findResident(db *gorm.DB, propertyID, id uint) (*models.ResidentProfile, error) {
	var profile models.ResidentProfile
	if err := db.Where("id = ? AND property_id = ?", id, propertyID).First(&profile).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// searchQuery narrows q by a case-insensitive substring of name or email.
func searchQuery(q *gorm.DB, searchType, value string) (*gorm.DB, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return q, nil
	}
	pattern := "%" + strings.ToLower(value) + "%"
	switch strings.ToLower(strings.TrimSpace(searchType)) {
	case "", "name":
		return q.Where("LOWER(name) LIKE ?", pattern), nil
	case "email":
		return q.Where("LOWER(email) LIKE ?", pattern), nil
	default:
		return nil, invalid("search type must be name or email")
	}
}
