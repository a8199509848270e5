package services

import (
	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"
	"hostel-http-service/pkg/logger"

	"gorm.io/gorm"
)

// InterfaceStaffService manages the security staff of a property.
type InterfaceStaffService interface {
	SearchStaff(propertyID uint, searchType, value string) ([]models.SecurityStaffProfile, error)
	GetStaffByID(propertyID, id uint) (*models.SecurityStaffProfile, error)
	RegisterStaff(propertyID uint, input RegisterStaffInput) (*models.SecurityStaffProfile, error)
	UpdateStaff(propertyID, id uint, update ProfileUpdate) (*models.SecurityStaffProfile, error)
	DeleteStaff(propertyID, id uint) error
}

// RegisterStaffInput links an existing Security Staff account to the admin's property.
type RegisterStaffInput struct {
	AccountID uint
	Profile   ProfileFields
}

// StaffService 提供物业安保人员相关的服务
type StaffService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewStaffService 创建一个新的安保人员服务
func NewStaffService(db *gorm.DB, cfg *config.Config) InterfaceStaffService {
	return &StaffService{
		DB:     db,
		Config: cfg,
	}
}

// 1 SearchStaff lists the property's guards, optionally filtered by name or email
func (s *StaffService) SearchStaff(propertyID uint, searchType, value string) ([]models.SecurityStaffProfile, error) {
	query, err := searchQuery(s.DB.Where("property_id = ?", propertyID), searchType, value)
	if err != nil {
		return nil, err
	}
	var staff []models.SecurityStaffProfile
	if err := query.Order("name asc").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// 2 GetStaffByID 根据ID获取安保人员
func (s *StaffService) GetStaffByID(propertyID, id uint) (*models.SecurityStaffProfile, error) {
	return findStaff(s.DB, propertyID, id)
}

// 3 RegisterStaff creates an approved staff profile and onboards the account
func (s *StaffService) RegisterStaff(propertyID uint, input RegisterStaffInput) (*models.SecurityStaffProfile, error) {
	fields := input.Profile
	fields.normalize()

	var profile *models.SecurityStaffProfile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		account, err := loadAccount(tx, input.AccountID)
		if err != nil {
			return err
		}
		if account.Role != models.RoleSecurityStaff {
			return ErrRoleTransition
		}
		if fields.Email == "" {
			fields.Email = account.Email
		}
		if err := fields.validate(); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.SecurityStaffProfile{}).Where("id = ?", account.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrStaffExists
		}
		if err := ensureUnique(tx, &models.SecurityStaffProfile{}, fields.uniqueColumns(), 0, ErrStaffExists); err != nil {
			return err
		}

		profile = &models.SecurityStaffProfile{
			ID:         account.ID,
			Name:       fields.Name,
			Email:      fields.Email,
			Phone:      fields.Phone,
			IC:         fields.IC,
			Gender:     fields.Gender,
			Address:    fields.Address,
			Approved:   true,
			PropertyID: propertyID,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return tx.Model(account).Updates(map[string]interface{}{
			"onboarded":   true,
			"approved":    true,
			"property_id": propertyID,
			"full_name":   fields.Name,
			"phone":       fields.Phone,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	logger.Info("security staff %d registered to property %d", profile.ID, propertyID)
	return profile, nil
}

// 4 UpdateStaff applies the non-nil fields
func (s *StaffService) UpdateStaff(propertyID, id uint, update ProfileUpdate) (*models.SecurityStaffProfile, error) {
	cols, err := update.columns()
	if err != nil {
		return nil, err
	}

	var profile *models.SecurityStaffProfile
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if profile, err = findStaff(tx, propertyID, id); err != nil {
			return err
		}
		if len(cols) == 0 {
			return nil
		}
		if err := ensureUnique(tx, &models.SecurityStaffProfile{}, cols, id, ErrStaffExists); err != nil {
			return err
		}
		if err := tx.Model(profile).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(profile, id).Error
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// 5 DeleteStaff removes the profile and its account together
func (s *StaffService) DeleteStaff(propertyID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		profile, err := findStaff(tx, propertyID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(profile).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, id).Error
	})
}

func findStaff(db *gorm.DB, propertyID, id uint) (*models.SecurityStaffProfile, error) {
	var profile models.SecurityStaffProfile
	if err := db.Where("id = ? AND property_id = ?", id, propertyID).First(&profile).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &profile, nil
}
