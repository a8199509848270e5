package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"hostel-http-service/internal/domain/models"
	"hostel-http-service/internal/infrastructure/config"
	"hostel-http-service/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfaceAuthService drives registration, login and onboarding.
type InterfaceAuthService interface {
	Register(input RegisterInput) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	GoogleLogin(ctx context.Context, idToken, requestedRole string) (*AuthResult, error)
	OnboardAdmin(accountID uint, input AdminOnboardingInput) (*AdminOnboardingResult, error)
	OnboardResident(accountID uint, input ResidentOnboardingInput) (*models.ResidentProfile, error)
	ListProperties() ([]models.Property, error)
}

// RegisterInput is a new account request. An empty role means Resident.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by every flow that issues a token.
type AuthResult struct {
	Token           string      `json:"token"`
	ID              uint        `json:"id"`
	Email           string      `json:"email"`
	Role            models.Role `json:"role"`
	IsOnboarded     bool        `json:"isOnboarded"`
	NeedsOnboarding bool        `json:"needsOnboarding"`
	IsApproved      bool        `json:"isApproved"`
	PropertyID      *uint       `json:"propertyId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// AdminOnboardingInput describes the property an admin registers.
type AdminOnboardingInput struct {
	PropertyName    string
	PropertyAddress string
	PropertyType    string
}

// AdminOnboardingResult carries the new property and the re-issued token.
type AdminOnboardingResult struct {
	Message     string `json:"message"`
	PropertyID  uint   `json:"propertyId"`
	IsOnboarded bool   `json:"isOnboarded"`
	Token       string `json:"token"`
}

// ResidentOnboardingInput links a resident to a property. A nil PropertyID
// means no property was selected.
type ResidentOnboardingInput struct {
	PropertyID *uint
	Profile    ProfileFields
	Room       string
}

// AuthService implements InterfaceAuthService.
type AuthService struct {
	DB          *gorm.DB
	Config      *config.Config
	JWT         InterfaceJWTService
	Credentials CredentialVerifier
	Federated   InterfaceFederatedVerifier

	decoyOnce sync.Once
	decoy     string
}

// NewAuthService creates an auth service.
func NewAuthService(db *gorm.DB, cfg *config.Config, jwtService InterfaceJWTService, credentials CredentialVerifier, federated InterfaceFederatedVerifier) InterfaceAuthService {
	return &AuthService{
		DB:          db,
		Config:      cfg,
		JWT:         jwtService,
		Credentials: credentials,
		Federated:   federated,
	}
}

func (s *AuthService) issue(account *models.Account) (*AuthResult, error) {
	token, err := s.JWT.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:           token,
		ID:              account.ID,
		Email:           account.Email,
		Role:            account.Role,
		IsOnboarded:     account.Onboarded,
		NeedsOnboarding: !account.Onboarded,
		IsApproved:      account.Approved,
		PropertyID:      account.PropertyID,
		CreatedAt:       account.CreatedAt,
	}, nil
}

// Register creates an account that still has to onboard.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, invalid("email and password are required")
	}

	role := models.RoleResident
	if strings.TrimSpace(input.Role) != "" {
		parsed, err := models.ParseRole(input.Role)
		if err != nil {
			return nil, invalid("invalid role")
		}
		role = parsed
	}

	var count int64
	if err := s.DB.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := s.Credentials.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{Email: email, Password: hashed, Role: role}
	if err := s.DB.Create(account).Error; err != nil {
		return nil, err
	}

	logger.Info("account registered: id=%d role=%s", account.ID, account.Role)
	return s.issue(account)
}

// Login verifies the credential pair. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	var account models.Account
	if err := s.DB.Where("email = ?", normalizeEmail(email)).First(&account).Error; err != nil {
		if isNotFound(err) {
			s.Credentials.Verify(s.decoyHash(), password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.Credentials.Verify(account.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if account.PendingApproval() {
		return nil, ErrPendingApproval
	}
	return s.issue(&account)
}

// decoyHash is checked for unknown emails so both login failures pay the
// same hashing cost.
func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		s.decoy, _ = s.Credentials.Hash(uuid.NewString())
	})
	return s.decoy
}

// GoogleLogin signs in with a Google ID token, creating the account on first use.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken, requestedRole string) (*AuthResult, error) {
	if !s.Config.GoogleLoginConfigured() {
		return nil, ErrFederatedNotConfigured
	}

	email, err := s.Federated.VerifyEmail(ctx, idToken, s.Config.GoogleClientID)
	if err != nil {
		return nil, err
	}

	var requested models.Role
	if strings.TrimSpace(requestedRole) != "" {
		if requested, err = models.ParseRole(requestedRole); err != nil {
			return nil, invalid("invalid role")
		}
	}

	var account models.Account
	err = s.DB.Where("email = ?", email).First(&account).Error
	switch {
	case err == nil:
		// a fresh Resident may become an admin before onboarding, nobody else changes role here
		if requested == models.RoleAdmin && account.Role == models.RoleResident && !account.Onboarded {
			if err := s.DB.Model(&account).Update("role", models.RoleAdmin).Error; err != nil {
				return nil, err
			}
			account.Role = models.RoleAdmin
			logger.Info("account %d promoted to admin via google login", account.ID)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if requested == models.RoleAdmin {
			return nil, ErrFederatedAdminUnknown
		}
		role := requested
		if role == "" {
			role = models.RoleResident
		}
		hashed, err := s.Credentials.Hash("GOOGLE_AUTH_" + uuid.NewString())
		if err != nil {
			return nil, err
		}
		account = models.Account{Email: email, Password: hashed, Role: role}
		if err := s.DB.Create(&account).Error; err != nil {
			return nil, err
		}
		logger.Info("account created from google login: id=%d role=%s", account.ID, account.Role)
	default:
		return nil, err
	}

	if account.PendingApproval() {
		return nil, ErrPendingApproval
	}
	return s.issue(&account)
}

// OnboardAdmin creates the caller's property and turns the account into an
// onboarded, approved admin. It succeeds at most once per account.
func (s *AuthService) OnboardAdmin(accountID uint, input AdminOnboardingInput) (*AdminOnboardingResult, error) {
	name := strings.TrimSpace(input.PropertyName)
	address := strings.TrimSpace(input.PropertyAddress)
	propertyType := strings.TrimSpace(input.PropertyType)
	if name == "" || address == "" || propertyType == "" {
		return nil, invalid("property name, address and type are required")
	}

	var account *models.Account
	var property models.Property
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if account, err = loadAccount(tx, accountID); err != nil {
			return err
		}
		if account.Onboarded {
			return ErrAlreadyOnboarded
		}
		if account.Role == models.RoleSecurityStaff {
			return ErrRoleTransition
		}

		var owned int64
		if err := tx.Model(&models.Property{}).Where("admin_id = ?", account.ID).Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOnboarded
		}

		property = models.Property{Name: name, Address: address, PropertyType: propertyType, AdminID: account.ID}
		if err := tx.Create(&property).Error; err != nil {
			return err
		}

		if err := tx.Model(account).Updates(map[string]interface{}{
			"role":        models.RoleAdmin,
			"onboarded":   true,
			"approved":    true,
			"property_id": property.ID,
		}).Error; err != nil {
			return err
		}
		account.Role = models.RoleAdmin
		account.Onboarded = true
		account.Approved = true
		account.PropertyID = &property.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.JWT.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	logger.Info("admin %d onboarded with property %d", account.ID, property.ID)
	return &AdminOnboardingResult{
		Message:     "Admin onboarding completed successfully",
		PropertyID:  property.ID,
		IsOnboarded: true,
		Token:       token,
	}, nil
}

// OnboardResident creates the resident profile for the caller. The account
// stays unapproved until the property admin approves it.
func (s *AuthService) OnboardResident(accountID uint, input ResidentOnboardingInput) (*models.ResidentProfile, error) {
	if input.PropertyID == nil || *input.PropertyID == 0 {
		return nil, ErrPropertyRequired
	}

	var profile *models.ResidentProfile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		account, err := loadAccount(tx, accountID)
		if err != nil {
			return err
		}
		if account.Onboarded {
			return ErrAlreadyOnboarded
		}
		if _, err := findProperty(tx, *input.PropertyID); err != nil {
			return err
		}
		profile, err = createResidentProfile(tx, account, *input.PropertyID, input.Profile, input.Room, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("resident %d onboarded into property %d, awaiting approval", profile.ID, profile.PropertyID)
	return profile, nil
}

// ListProperties returns every property for the onboarding picker.
func (s *AuthService) ListProperties() ([]models.Property, error) {
	var properties []models.Property
	if err := s.DB.Order("name asc").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}
