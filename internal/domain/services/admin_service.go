package services

import (
	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceAdminService resolves what an admin manages.
type InterfaceAdminService interface {
	GetAdminProperty(adminID uint) (*models.Property, error)
	GetMember(propertyID, accountID uint) (*ProfileView, error)
	UpdateMember(propertyID, accountID uint, update AccountUpdate) (*ProfileView, error)
}

// AdminService 提供物业管理员相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAdminProperty returns the property owned by adminID
func (s *AdminService) GetAdminProperty(adminID uint) (*models.Property, error) {
	var property models.Property
	if err := s.DB.Where("admin_id = ?", adminID).First(&property).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotOnboarded
		}
		return nil, err
	}
	return &property, nil
}

// 2 GetMember loads an account that belongs to the property
func (s *AdminService) GetMember(propertyID, accountID uint) (*ProfileView, error) {
	var account models.Account
	if err := s.DB.Where("id = ? AND property_id = ?", accountID, propertyID).First(&account).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return profileView(s.DB, &account)
}

// 3 UpdateMember edits an account that belongs to the property
func (s *AdminService) UpdateMember(propertyID, accountID uint, update AccountUpdate) (*ProfileView, error) {
	account, err := updateAccount(s.DB, accountID, propertyID, update)
	if err != nil {
		return nil, err
	}
	return profileView(s.DB, account)
}
