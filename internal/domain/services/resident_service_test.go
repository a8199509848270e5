package services

import (
	"testing"

	"hostel-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateResidentIsPartial(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	id := f.resident(t, propertyID, "r@x.com", "Ann", "0100", "IC1", false)

	updated, err := f.residents.UpdateResident(propertyID, id, ResidentUpdate{Room: strPtr("Z-9")})
	require.NoError(t, err)
	assert.Equal(t, "Z-9", updated.Room)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, "0100", updated.Phone)
	assert.Equal(t, "IC1", updated.IC)

	updated, err = f.residents.UpdateResident(propertyID, id, ResidentUpdate{
		ProfileUpdate: ProfileUpdate{Name: strPtr("Annie")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.Equal(t, "Z-9", updated.Room)

	_, err = f.residents.UpdateResident(propertyID, id, ResidentUpdate{
		ProfileUpdate: ProfileUpdate{Phone: strPtr("  ")},
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateResidentUniqueness(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	f.resident(t, propertyID, "a@x.com", "Ann", "0100", "IC1", true)
	ben := f.resident(t, propertyID, "b@x.com", "Ben", "0200", "IC2", true)

	_, err := f.residents.UpdateResident(propertyID, ben, ResidentUpdate{
		ProfileUpdate: ProfileUpdate{Phone: strPtr("0100")},
	})
	assert.ErrorIs(t, err, ErrResidentExists)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "phone", conflict.Field)

	// keeping your own value is not a conflict
	_, err = f.residents.UpdateResident(propertyID, ben, ResidentUpdate{
		ProfileUpdate: ProfileUpdate{Phone: strPtr("0200")},
	})
	assert.NoError(t, err)
}

func TestApprovalMirrorsOntoAccount(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	id := f.resident(t, propertyID, "r@x.com", "Ann", "0100", "IC1", false)

	for _, approved := range []bool{true, false} {
		profile, err := f.residents.SetApproval(propertyID, id, approved)
		require.NoError(t, err)
		assert.Equal(t, approved, profile.Approved)

		var account models.Account
		require.NoError(t, f.db.First(&account, id).Error)
		assert.Equal(t, approved, account.Approved)
	}
}

func TestApprovalRollsBackWhenAccountUpdateFails(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	id := f.resident(t, propertyID, "r@x.com", "Ann", "0100", "IC1", false)
	failWritesOf(t, f.db, &models.Account{})

	_, err := f.residents.SetApproval(propertyID, id, true)
	assert.ErrorIs(t, err, errWriteFailed)

	var profile models.ResidentProfile
	require.NoError(t, f.db.First(&profile, id).Error)
	assert.False(t, profile.Approved)

	var account models.Account
	require.NoError(t, f.db.First(&account, id).Error)
	assert.False(t, account.Approved)
}

func TestResidentScopedToProperty(t *testing.T) {
	f := newFixture(t)
	_, p1 := f.adminWithProperty(t, "a1@x.com")
	_, p2 := f.adminWithProperty(t, "a2@x.com")
	id := f.resident(t, p1, "r@x.com", "Ann", "0100", "IC1", false)

	_, err := f.residents.GetResidentByID(p2, id)
	assert.ErrorIs(t, err, ErrResidentNotFound)
	_, err = f.residents.SetApproval(p2, id, true)
	assert.ErrorIs(t, err, ErrResidentNotFound)
	assert.ErrorIs(t, f.residents.DeleteResident(p2, id), ErrResidentNotFound)
}

func TestDeleteResidentCascadesToAccount(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	id := f.resident(t, propertyID, "r@x.com", "Ann", "0100", "IC1", true)

	require.NoError(t, f.residents.DeleteResident(propertyID, id))

	var n int64
	require.NoError(t, f.db.Model(&models.ResidentProfile{}).Where("id = ?", id).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&models.Account{}).Where("id = ?", id).Count(&n).Error)
	assert.Zero(t, n)

	_, err := f.auth.Login("r@x.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateResidentLinksAccount(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	reg, err := f.auth.Register(RegisterInput{Email: "r@x.com", Password: "pw"})
	require.NoError(t, err)

	profile, err := f.residents.CreateResident(propertyID, CreateResidentInput{
		AccountID: reg.ID,
		Profile:   ProfileFields{Name: "Ann", Phone: "0100", IC: "IC1", Gender: "Female", Address: "Home"},
		Room:      "R1",
		Approved:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Home", profile.Address)

	res, err := f.auth.Login("r@x.com", "pw")
	require.NoError(t, err)
	assert.True(t, res.IsOnboarded)
	assert.True(t, res.IsApproved)

	_, err = f.residents.CreateResident(propertyID, CreateResidentInput{
		AccountID: reg.ID,
		Profile:   ProfileFields{Name: "Ann", Phone: "0101", IC: "IC9", Gender: "Female"},
		Room:      "R1",
	})
	assert.ErrorIs(t, err, ErrResidentExists)

	staffAccount, err := f.auth.Register(RegisterInput{Email: "g@x.com", Password: "pw", Role: "Security Staff"})
	require.NoError(t, err)
	_, err = f.residents.CreateResident(propertyID, CreateResidentInput{
		AccountID: staffAccount.ID,
		Profile:   ProfileFields{Name: "G", Phone: "0300", IC: "IC3", Gender: "Male"},
		Room:      "R2",
	})
	assert.ErrorIs(t, err, ErrRoleTransition)
}

func TestSearchResidents(t *testing.T) {
	f := newFixture(t)
	_, propertyID := f.adminWithProperty(t, "admin@x.com")
	f.resident(t, propertyID, "ann@x.com", "Ann Lee", "0100", "IC1", true)
	f.resident(t, propertyID, "ben@y.com", "Ben Tan", "0200", "IC2", true)

	all, err := f.residents.SearchResidents(propertyID, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := f.residents.SearchResidents(propertyID, "name", "ann")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Ann Lee", byName[0].Name)

	byEmail, err := f.residents.SearchResidents(propertyID, "email", "@y.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Ben Tan", byEmail[0].Name)

	_, err = f.residents.SearchResidents(propertyID, "room", "1")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
