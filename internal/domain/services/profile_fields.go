package services

import (
	"errors"
	"strings"

	"hostel-http-service/internal/domain/models"

	"gorm.io/gorm"
)

// ProfileFields are the personal details shared by resident and staff profiles.
type ProfileFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	IC      string `json:"ic"`
	Gender  string `json:"gender"`
	Address string `json:"address"`
}

func (f *ProfileFields) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = normalizeEmail(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.IC = strings.TrimSpace(f.IC)
	f.Gender = strings.TrimSpace(f.Gender)
	f.Address = strings.TrimSpace(f.Address)
	if f.Address == "" {
		f.Address = models.DefaultProfileAddress
	}
}

func (f *ProfileFields) validate() error {
	switch {
	case f.Name == "":
		return invalid("name is required")
	case f.Phone == "":
		return invalid("phone is required")
	case f.IC == "":
		return invalid("IC is required")
	case f.Gender == "":
		return invalid("gender is required")
	}
	return nil
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	IC      *string `json:"ic"`
	Gender  *string `json:"gender"`
	Address *string `json:"address"`
}

// columns returns the changed profile columns with empty strings rejected.
func (u *ProfileUpdate) columns() (map[string]interface{}, error) {
	cols := map[string]interface{}{}
	set := func(col string, v *string, required bool) error {
		if v == nil {
			return nil
		}
		val := strings.TrimSpace(*v)
		if col == "email" {
			val = normalizeEmail(val)
		}
		if required && val == "" {
			return invalid("%s cannot be empty", col)
		}
		cols[col] = val
		return nil
	}
	for _, f := range []struct {
		col      string
		v        *string
		required bool
	}{
		{"name", u.Name, true},
		{"email", u.Email, true},
		{"phone", u.Phone, true},
		{"ic", u.IC, true},
		{"gender", u.Gender, true},
		{"address", u.Address, false},
	} {
		if err := set(f.col, f.v, f.required); err != nil {
			return nil, err
		}
	}
	return cols, nil
}

// ensureUnique checks email, phone and ic against every row of model except
// the one with id exclude. Only the columns present in cols are checked.
func ensureUnique(tx *gorm.DB, model interface{}, cols map[string]interface{}, exclude uint, sentinel error) error {
	for _, col := range []string{"email", "phone", "ic"} {
		val, ok := cols[col]
		if !ok || val == "" {
			continue
		}
		var count int64
		q := tx.Model(model).Where(col+" = ?", val)
		if exclude != 0 {
			q = q.Where("id <> ?", exclude)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Err: sentinel, Field: col}
		}
	}
	return nil
}

func (f *ProfileFields) uniqueColumns() map[string]interface{} {
	return map[string]interface{}{"email": f.Email, "phone": f.Phone, "ic": f.IC}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// loadAccount reads an account inside tx, mapping a missing row to ErrAccountNotFound.
func loadAccount(tx *gorm.DB, id uint) (*models.Account, error) {
	var account models.Account
	if err := tx.First(&account, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// createResidentProfile inserts the profile for account and marks the account
// onboarded into propertyID. The caller owns the transaction.
func createResidentProfile(tx *gorm.DB, account *models.Account, propertyID uint, fields ProfileFields, room string, approved bool) (*models.ResidentProfile, error) {
	if account.Role != models.RoleResident {
		return nil, ErrRoleTransition
	}
	fields.normalize()
	if fields.Email == "" {
		fields.Email = account.Email
	}
	if err := fields.validate(); err != nil {
		return nil, err
	}
	room = strings.TrimSpace(room)
	if room == "" {
		return nil, invalid("room is required")
	}

	var existing int64
	if err := tx.Model(&models.ResidentProfile{}).Where("id = ?", account.ID).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrResidentExists
	}
	if err := ensureUnique(tx, &models.ResidentProfile{}, fields.uniqueColumns(), 0, ErrResidentExists); err != nil {
		return nil, err
	}

	profile := &models.ResidentProfile{
		ID:         account.ID,
		Name:       fields.Name,
		Email:      fields.Email,
		Phone:      fields.Phone,
		IC:         fields.IC,
		Gender:     fields.Gender,
		Address:    fields.Address,
		Room:       room,
		Approved:   approved,
		PropertyID: propertyID,
	}
	if err := tx.Create(profile).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(account).Updates(map[string]interface{}{
		"onboarded":   true,
		"approved":    approved,
		"property_id": propertyID,
		"full_name":   fields.Name,
		"phone":       fields.Phone,
	}).Error; err != nil {
		return nil, err
	}
	account.Onboarded = true
	account.Approved = approved
	account.PropertyID = &propertyID
	account.FullName = fields.Name
	account.Phone = fields.Phone
	return profile, nil
}

// findProperty loads a property, mapping a missing row to ErrPropertyNotFound.
func findProperty(tx *gorm.DB, id uint) (*models.Property, error) {
	var property models.Property
	if err := tx.First(&property, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}
