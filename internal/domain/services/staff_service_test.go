package services

import (
	"testing"

	"hostel-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStaff(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	id := f.guard(t, propertyID, "g@x.com", "0900", "G1")

	profile, err := f.staff.GetStaffByID(propertyID, id)
	require.NoError(t, err)
	assert.True(t, profile.Approved)
	assert.Equal(t, "g@x.com", profile.Email)

	var account models.Account
	require.NoError(t, f.db.First(&account, id).Error)
	assert.True(t, account.Onboarded)
	assert.True(t, account.Approved)
	require.NotNil(t, account.PropertyID)
	assert.Equal(t, propertyID, *account.PropertyID)
}

func TestRegisterStaffRejects(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	f.guard(t, propertyID, "g@x.com", "0900", "G1")

	resident, err := f.auth.Register(RegisterInput{Email: "r@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = f.staff.RegisterStaff(propertyID, RegisterStaffInput{
		AccountID: resident.ID,
		Profile:   ProfileFields{Name: "R", Phone: "1", IC: "2", Gender: "F"},
	})
	assert.ErrorIs(t, err, ErrRoleTransition)

	other, err := f.auth.Register(RegisterInput{Email: "g2@x.com", Password: "pw", Role: "Security Staff"})
	require.NoError(t, err)
	_, err = f.staff.RegisterStaff(propertyID, RegisterStaffInput{
		AccountID: other.ID,
		Profile:   ProfileFields{Name: "G2", Phone: "0900", IC: "G2", Gender: "M"},
	})
	assert.ErrorIs(t, err, ErrStaffExists)

	_, err = f.staff.RegisterStaff(propertyID, RegisterStaffInput{AccountID: 999})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateAndDeleteStaff(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	id := f.guard(t, propertyID, "g@x.com", "0900", "G1")

	updated, err := f.staff.UpdateStaff(propertyID, id, ProfileUpdate{Address: strPtr("Gate 2")})
	require.NoError(t, err)
	assert.Equal(t, "Gate 2", updated.Address)
	assert.Equal(t, "0900", updated.Phone)

	list, err := f.staff.SearchStaff(propertyID, "name", "guard")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.staff.DeleteStaff(propertyID, id))
	_, err = f.staff.GetStaffByID(propertyID, id)
	assert.ErrorIs(t, err, ErrStaffNotFound)

	var n int64
	require.NoError(t, f.db.Model(&models.Account{}).Where("id = ?", id).Count(&n).Error)
	assert.Zero(t, n)
}
