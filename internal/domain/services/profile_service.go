package services

import (
	"errors"
	"strings"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceProfileService serves the caller's own account data.
type InterfaceProfileService interface {
	GetProfile(accountID uint) (*ProfileView, error)
	UpdateProfile(accountID uint, update AccountUpdate) (*ProfileView, error)
	GetManager(accountID uint) (*ManagerView, error)
	PropertyOf(accountID uint) (uint, error)
}

// AccountUpdate is a partial update of the editable account fields.
type AccountUpdate struct {
	FullName     *string `json:"fullName"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	ProfileImage *string `json:"profileImage"`
}

func (u *AccountUpdate) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.FullName != nil {
		cols["full_name"] = strings.TrimSpace(*u.FullName)
	}
	if u.Phone != nil {
		cols["phone"] = strings.TrimSpace(*u.Phone)
	}
	if u.Address != nil {
		cols["address"] = strings.TrimSpace(*u.Address)
	}
	if u.ProfileImage != nil {
		cols["profile_image"] = *u.ProfileImage
	}
	return cols
}

// ProfileView is an account with its property, when it has one.
type ProfileView struct {
	models.Account
	Property *models.Property `json:"property,omitempty"`
}

// ManagerView is what a resident may see about the admin of their property.
type ManagerView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PropertyName    string `json:"propertyName"`
	PropertyAddress string `json:"propertyAddress"`
}

// ProfileService implements InterfaceProfileService.
type ProfileService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewProfileService creates a profile service.
func NewProfileService(db *gorm.DB, cfg *config.Config) InterfaceProfileService {
	return &ProfileService{DB: db, Config: cfg}
}

func (s *ProfileService) GetProfile(accountID uint) (*ProfileView, error) {
	account, err := loadAccount(s.DB, accountID)
	if err != nil {
		return nil, err
	}
	return profileView(s.DB, account)
}

func (s *ProfileService) UpdateProfile(accountID uint, update AccountUpdate) (*ProfileView, error) {
	account, err := updateAccount(s.DB, accountID, 0, update)
	if err != nil {
		return nil, err
	}
	return profileView(s.DB, account)
}

// GetManager returns the admin of the caller's property.
func (s *ProfileService) GetManager(accountID uint) (*ManagerView, error) {
	account, err := loadAccount(s.DB, accountID)
	if err != nil {
		return nil, err
	}
	if account.PropertyID == nil {
		return nil, ErrNotLinkedToProperty
	}
	property, err := findProperty(s.DB, *account.PropertyID)
	if err != nil {
		return nil, err
	}
	admin, err := loadAccount(s.DB, property.AdminID)
	if err != nil {
		return nil, ErrManagerNotFound
	}
	return &ManagerView{
		ID:              admin.ID,
		Name:            admin.FullName,
		Email:           admin.Email,
		Phone:           admin.Phone,
		PropertyName:    property.Name,
		PropertyAddress: property.Address,
	}, nil
}

// PropertyOf returns the property an onboarded account belongs to.
func (s *ProfileService) PropertyOf(accountID uint) (uint, error) {
	account, err := loadAccount(s.DB, accountID)
	if err != nil {
		return 0, err
	}
	if !account.Onboarded || account.PropertyID == nil {
		return 0, ErrNotOnboarded
	}
	return *account.PropertyID, nil
}

func profileView(db *gorm.DB, account *models.Account) (*ProfileView, error) {
	view := &ProfileView{Account: *account}
	if account.PropertyID != nil {
		property, err := findProperty(db, *account.PropertyID)
		if err != nil && !errors.Is(err, ErrPropertyNotFound) {
			return nil, err
		}
		view.Property = property
	}
	return view, nil
}

// updateAccount applies update to the account, limited to propertyID when it is not 0.
func updateAccount(db *gorm.DB, accountID, propertyID uint, update AccountUpdate) (*models.Account, error) {
	var account models.Account
	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ?", accountID)
		if propertyID != 0 {
			q = q.Where("property_id = ?", propertyID)
		}
		if err := q.First(&account).Error; err != nil {
			if isNotFound(err) {
				return ErrAccountNotFound
			}
			return err
		}
		cols := update.columns()
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&account).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(&account, account.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}
